/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package usatt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/ttleague-tdbot/internal"
)

type MemID int

// Player holds information about a USATT member scraped from their public
// profile page.
type Player struct {
	MemberID         MemID
	Name             string
	TournamentRating int
	LeagueRating     int
	// 0 when the profile lists no rating of either kind
}

// Rating returns the member's league rating, falling back to the tournament
// rating for members who have only played sanctioned tournaments.
func (p *Player) Rating() int {
	if p.LeagueRating != 0 {
		return p.LeagueRating
	}
	return p.TournamentRating
}

// FetchPlayer retrieves a member's name and current ratings from their USATT
// profile page.
func (client *Client) FetchPlayer(ctx context.Context,
	memberID MemID) (*Player, error) {

	profileURL := fmt.Sprintf("%v/userAccount/up/%v", client.base, memberID)
	req, err := http.NewRequestWithContext(ctx, "GET", profileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating profile request: %w", err)
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.httpClient1day.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing profile HTTP GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected profile status %d: %s",
			resp.StatusCode, string(body))
	}

	return parsePlayer(memberID, resp.Body)
}

// FetchPlayers retrieves multiple member profiles concurrently. Members whose
// profiles cannot be fetched or parsed are omitted from the result rather
// than failing the whole lookup.
func (client *Client) FetchPlayers(ctx context.Context,
	memberIDs []MemID) map[MemID]*Player {

	var (
		mu      sync.Mutex
		players = make(map[MemID]*Player)
	)
	g, ctx := errgroup.WithContext(ctx)

	for _, initID := range memberIDs {
		id := initID
		g.Go(func() error {
			p, err := client.FetchPlayer(ctx, id)
			if err != nil {
				// caller falls back to locally stored values
				return nil
			}

			mu.Lock()
			players[id] = p
			mu.Unlock()

			return nil
		})
	}

	_ = g.Wait()
	return players
}

// parsePlayer parses a profile page and extracts the member's name and
// current ratings.
func parsePlayer(memberID MemID, body io.Reader) (*Player, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	player := Player{MemberID: memberID}
	player.Name = parsePlayerName(doc)
	if player.Name == "" {
		return nil, fmt.Errorf("player name not found in page for %v", memberID)
	}

	if err := parseRatings(&player, doc); err != nil {
		return nil, err
	}
	return &player, nil
}

// parsePlayerName finds the member's name in the profile header.
func parsePlayerName(doc *goquery.Document) string {
	name := strings.TrimSpace(doc.Find("div.profile-header h2").First().Text())
	return internal.NormalizeName(name)
}

// parseRatings fills the Player's tournament and league ratings from the
// profile's rating boxes. Profiles render "N/A" for members without a rating
// of a given kind.
func parseRatings(player *Player, doc *goquery.Document) error {
	boxes := doc.Find("div.rating-box")
	if boxes.Length() == 0 {
		return fmt.Errorf("rating boxes not found for player %v", player.MemberID)
	}

	var parseErr error
	boxes.Each(func(_ int, box *goquery.Selection) {
		title := strings.TrimSpace(box.Find("span.title").Text())
		value := strings.TrimSpace(box.Find("span.rating-value").Text())
		if value == "" || strings.EqualFold(value, "N/A") {
			return
		}

		r, err := strconv.Atoi(value)
		if err != nil {
			// skip provisional markers like "1850*"
			digits := strings.TrimRight(value, "*")
			if r, err = strconv.Atoi(digits); err != nil {
				return
			}
		}
		if r < internal.MinValidRating || r > internal.MaxValidRating {
			parseErr = fmt.Errorf("implausible %v of %v for player %v",
				strings.ToLower(title), r, player.MemberID)
			return
		}

		switch {
		case strings.HasPrefix(title, "Tournament"):
			player.TournamentRating = r
		case strings.HasPrefix(title, "League"):
			player.LeagueRating = r
		}
	})

	return parseErr
}
