/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import "sort"

// OpponentStats is one player's head-to-head record versus a single
// opponent: whole matches won/lost plus individual games won/lost.
type OpponentStats struct {
	Opponent     Player
	MatchWins    int
	MatchLosses  int
	GameWins     int
	GameLosses   int
	TotalMatches int
	TotalGames   int
}

// MatchWinPct returns the percentage of matches won, 0 when no matches have
// been played.
func (s OpponentStats) MatchWinPct() float64 {
	return pct(s.MatchWins, s.TotalMatches)
}

// GameWinPct returns the percentage of games won, 0 when no games have been
// played.
func (s OpponentStats) GameWinPct() float64 {
	return pct(s.GameWins, s.TotalGames)
}

func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100.0
}

// MatchStats rolls a player's match history up into per-opponent records.
// Matches must be oriented with the subject player as Player1. A drawn match
// score counts as neither a match win nor a match loss, though its games
// still count.
func MatchStats(matches []Match) []OpponentStats {
	byOpp := make(map[int64]*OpponentStats)
	var order []int64

	for _, m := range matches {
		stats, ok := byOpp[m.Player2.ID]
		if !ok {
			stats = &OpponentStats{Opponent: m.Player2}
			byOpp[m.Player2.ID] = stats
			order = append(order, m.Player2.ID)
		}

		if m.P1Wins > m.P2Wins {
			stats.MatchWins++
		} else if m.P2Wins > m.P1Wins {
			stats.MatchLosses++
		}
		stats.GameWins += m.P1Wins
		stats.GameLosses += m.P2Wins
		stats.TotalMatches++
		stats.TotalGames += m.P1Wins + m.P2Wins
	}

	out := make([]OpponentStats, 0, len(order))
	for _, id := range order {
		out = append(out, *byOpp[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalMatches > out[j].TotalMatches
	})

	return out
}

// PlayerStanding is one player's rank line within a group.
type PlayerStanding struct {
	Player Player
	Wins   int
	Losses int
}

// Standings ranks the group's players by matches won, ties broken by rating
// descending then by group order. The first entry is the group winner.
func (gr GroupResult) Standings() []PlayerStanding {
	byID := make(map[int64]*PlayerStanding)
	standings := make([]PlayerStanding, len(gr.Players))
	for i, p := range gr.Players {
		standings[i] = PlayerStanding{Player: p}
		byID[p.ID] = &standings[i]
	}

	for _, m := range gr.Matches {
		if !m.Played() || m.P1Wins == m.P2Wins {
			continue
		}
		winID, loseID := m.Player1.ID, m.Player2.ID
		if m.P2Wins > m.P1Wins {
			winID, loseID = loseID, winID
		}
		if s, ok := byID[winID]; ok {
			s.Wins++
		}
		if s, ok := byID[loseID]; ok {
			s.Losses++
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].Player.Rating > standings[j].Player.Rating
	})

	return standings
}
