/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package usatt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const profilePage = `<html><body>
<div class="profile-header"><h2>WEI DING</h2></div>
<div class="rating-box">
  <span class="title">Tournament Rating</span>
  <span class="rating-value">1912</span>
</div>
<div class="rating-box">
  <span class="title">League Rating</span>
  <span class="rating-value">1875</span>
</div>
</body></html>`

const unratedProfilePage = `<html><body>
<div class="profile-header"><h2>Jane Doe</h2></div>
<div class="rating-box">
  <span class="title">Tournament Rating</span>
  <span class="rating-value">N/A</span>
</div>
<div class="rating-box">
  <span class="title">League Rating</span>
  <span class="rating-value">N/A</span>
</div>
</body></html>`

func TestParsePlayer(t *testing.T) {
	player, err := parsePlayer(221538, strings.NewReader(profilePage))
	if err != nil {
		t.Fatalf("parsePlayer returned error: %v", err)
	}

	if player.MemberID != 221538 {
		t.Errorf("expected MemberID 221538, got %v", player.MemberID)
	}
	if player.Name != "Wei Ding" {
		t.Errorf("expected name 'Wei Ding' but got '%v'", player.Name)
	}
	if player.TournamentRating != 1912 {
		t.Errorf("expected tournament rating 1912, got %v", player.TournamentRating)
	}
	if player.LeagueRating != 1875 {
		t.Errorf("expected league rating 1875, got %v", player.LeagueRating)
	}
	if player.Rating() != 1875 {
		t.Errorf("Rating() should prefer the league rating, got %v", player.Rating())
	}
}

func TestParsePlayerUnrated(t *testing.T) {
	player, err := parsePlayer(900001, strings.NewReader(unratedProfilePage))
	if err != nil {
		t.Fatalf("parsePlayer returned error: %v", err)
	}
	if player.Rating() != 0 {
		t.Errorf("unrated member should report 0, got %v", player.Rating())
	}
}

func TestParsePlayerImplausibleRating(t *testing.T) {
	page := strings.Replace(profilePage, "1875", "9875", 1)
	_, err := parsePlayer(221538, strings.NewReader(page))
	if err == nil {
		t.Errorf("expected error for out-of-band rating")
	}
}

func TestParsePlayerMissingName(t *testing.T) {
	_, err := parsePlayer(221538, strings.NewReader("<html><body></body></html>"))
	if err == nil {
		t.Errorf("expected error for page without a profile header")
	}
}

func TestFetchPlayers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/userAccount/up/221538":
				w.Write([]byte(profilePage))
			case "/userAccount/up/900001":
				w.Write([]byte(unratedProfilePage))
			default:
				http.NotFound(w, r)
			}
		}))
	defer srv.Close()

	client := &Client{
		httpClient30day: srv.Client(),
		httpClient1day:  srv.Client(),
		base:            srv.URL,
	}

	players := client.FetchPlayers(context.Background(),
		[]MemID{221538, 900001, 555555})

	// the unknown member is omitted, not fatal
	if len(players) != 2 {
		t.Fatalf("expected 2 resolved players, got %d", len(players))
	}
	if players[221538].Rating() != 1875 {
		t.Errorf("member 221538 rating = %v; want 1875", players[221538].Rating())
	}
	if players[900001].Name != "Jane Doe" {
		t.Errorf("member 900001 name = %v; want Jane Doe", players[900001].Name)
	}
}
