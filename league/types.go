/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import "sort"

// Player represents a league member. Rating is the player's current rating;
// it is only mutated at session close. WonGroup marks the player as the
// winner of their most recent group and biases the display rating only, it
// is never fed into the grouping or rating math.
type Player struct {
	ID       int64
	Name     string
	Rating   int
	WonGroup bool
}

// AdjustedRating returns the display rating: the winner of a group is shown
// with a 200 point bump until the next session.
func (p Player) AdjustedRating() int {
	if p.WonGroup {
		return p.Rating + 200
	}
	return p.Rating
}

// Group is an ordered set of players bracketed together for one session.
// Numbers are 1-based and unique within a session.
type Group struct {
	Number  int
	Players []Player
}

func (g Group) Size() int {
	return len(g.Players)
}

func (g *Group) AddPlayer(p Player) {
	g.Players = append(g.Players, p)
}

func (g *Group) RemovePlayer(playerID int64) {
	kept := g.Players[:0]
	for _, p := range g.Players {
		if p.ID != playerID {
			kept = append(kept, p)
		}
	}
	g.Players = kept
}

// HighestRated returns the strongest player in the group, or false for an
// empty group.
func (g Group) HighestRated() (Player, bool) {
	return g.extremeRated(func(a, b int) bool { return a > b })
}

// LowestRated returns the weakest player in the group, or false for an
// empty group.
func (g Group) LowestRated() (Player, bool) {
	return g.extremeRated(func(a, b int) bool { return a < b })
}

func (g Group) extremeRated(better func(a, b int) bool) (Player, bool) {
	if len(g.Players) == 0 {
		return Player{}, false
	}
	best := g.Players[0]
	for _, p := range g.Players[1:] {
		if better(p.Rating, best.Rating) {
			best = p
		}
	}
	return best, true
}

// Pairing is one scheduled head-to-head matchup within a group.
type Pairing struct {
	Player1 Player
	Player2 Player
}

// Match is a completed or in-progress matchup along with the independent win
// counts for each side. The pair is logically unordered; which side is
// Player1 is a presentation detail. Both win counts are zero before play.
type Match struct {
	Player1     Player
	Player2     Player
	P1Wins      int
	P2Wins      int
	GroupNumber int
}

// Played reports whether any result has been recorded for the match.
func (m Match) Played() bool {
	return m.P1Wins != 0 || m.P2Wins != 0
}

// GroupResult aggregates all matches for one group together with the group's
// player list. It is derived on read from match and player data, never
// persisted on its own.
type GroupResult struct {
	Number  int
	Matches []Match
	Players []Player
}

// SessionRating is the durable per-session rating snapshot for one player:
// the rating they entered the session with and the rating the session left
// them at. Created exactly once per (player, session) at session close.
type SessionRating struct {
	PlayerID       int64
	SessionID      int64
	PreviousRating int
	Rating         int
	WonGroup       bool
}

// RatingChange is one player's net outcome from a session aggregation pass.
type RatingChange struct {
	PreviousRating int
	NewRating      int
}

// Delta returns the signed net adjustment for the session.
func (rc RatingChange) Delta() int {
	return rc.NewRating - rc.PreviousRating
}

// sortPlayersByRating stable-sorts players by rating descending; ties keep
// their original input order, which in turn keeps the grouping walk
// reproducible.
func sortPlayersByRating(players []Player) []Player {
	sorted := make([]Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})
	return sorted
}
