/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"fmt"
	"strings"
)

// BuildGroupsOutput formats session groups into aligned string output.
func BuildGroupsOutput(groups []Group) string {
	var sb strings.Builder

	for _, g := range groups {
		type row struct{ player, rating string }
		var rows []row
		for _, p := range g.Players {
			r := fmt.Sprintf("%v", p.AdjustedRating())
			if p.WonGroup {
				r += "*"
			}
			rows = append(rows, row{player: p.Name, rating: r})
		}

		maxP, maxR := len("Player"), len("Rating")
		for _, r := range rows {
			if l := len(r.player); l > maxP {
				maxP = l
			}
			if l := len(r.rating); l > maxR {
				maxR = l
			}
		}

		sb.WriteString(fmt.Sprintf("Group %v\n", g.Number))
		sb.WriteString(fmt.Sprintf("%-*s  %-*s\n", maxP, "Player", maxR, "Rating"))
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s\n", maxP, r.player, maxR, r.rating))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// BuildScheduleOutput formats each group's interleaved round-robin schedule
// into aligned string output.
func BuildScheduleOutput(groups []Group) string {
	var sb strings.Builder

	for _, g := range groups {
		pairings := g.MakeMatches()
		if len(pairings) == 0 {
			continue
		}

		type row struct{ num, p1, p2 string }
		var rows []row
		for i, pr := range pairings {
			rows = append(rows, row{
				num: fmt.Sprintf("%v.", i+1),
				p1:  fmt.Sprintf("%s(%d)", pr.Player1.Name, pr.Player1.Rating),
				p2:  fmt.Sprintf("%s(%d)", pr.Player2.Name, pr.Player2.Rating),
			})
		}

		maxN, maxA, maxB := len("Match"), len("Player 1"), len("Player 2")
		for _, r := range rows {
			if l := len(r.num); l > maxN {
				maxN = l
			}
			if l := len(r.p1); l > maxA {
				maxA = l
			}
			if l := len(r.p2); l > maxB {
				maxB = l
			}
		}

		sb.WriteString(fmt.Sprintf("Group %v\n", g.Number))
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxN, "Match", maxA,
			"Player 1", maxB, "Player 2"))
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxN, r.num,
				maxA, r.p1, maxB, r.p2))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// BuildStandingsOutput formats per-group standings into aligned string
// output.
func BuildStandingsOutput(results []GroupResult) string {
	var sb strings.Builder

	for _, gr := range results {
		standings := gr.Standings()

		type row struct{ place, player, record string }
		var rows []row
		priorWins := -1
		place := 0
		for idx, s := range standings {
			var rank string
			if idx != 0 && s.Wins == priorWins {
				rank = ""
			} else {
				place = idx + 1
				rank = fmt.Sprintf("%v.", place)
				priorWins = s.Wins
			}
			rows = append(rows, row{
				place:  rank,
				player: s.Player.Name,
				record: fmt.Sprintf("%d-%d", s.Wins, s.Losses),
			})
		}

		maxP, maxN, maxR := len("Place"), len("Player"), len("Record")
		for _, r := range rows {
			if l := len(r.place); l > maxP {
				maxP = l
			}
			if l := len(r.player); l > maxN {
				maxN = l
			}
			if l := len(r.record); l > maxR {
				maxR = l
			}
		}

		sb.WriteString(fmt.Sprintf("Group %v\n", gr.Number))
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxP, "Place", maxN,
			"Player", maxR, "Record"))
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s\n", maxP, r.place,
				maxN, r.player, maxR, r.record))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// BuildResultsOutput formats session-close rating changes per group into
// aligned string output.
func BuildResultsOutput(results []GroupResult, changes map[int64]RatingChange) string {
	var sb strings.Builder

	for _, gr := range results {
		type row struct{ player, prev, next, delta string }
		var rows []row
		for _, s := range gr.Standings() {
			rc, ok := changes[s.Player.ID]
			if !ok {
				continue
			}
			rows = append(rows, row{
				player: s.Player.Name,
				prev:   fmt.Sprintf("%d", rc.PreviousRating),
				next:   fmt.Sprintf("%d", rc.NewRating),
				delta:  fmt.Sprintf("%+d", rc.Delta()),
			})
		}

		maxN, maxP, maxW, maxD := len("Player"), len("Prev"), len("New"), len("Change")
		for _, r := range rows {
			if l := len(r.player); l > maxN {
				maxN = l
			}
			if l := len(r.prev); l > maxP {
				maxP = l
			}
			if l := len(r.next); l > maxW {
				maxW = l
			}
			if l := len(r.delta); l > maxD {
				maxD = l
			}
		}

		sb.WriteString(fmt.Sprintf("Group %v\n", gr.Number))
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s\n", maxN, "Player",
			maxP, "Prev", maxW, "New", maxD, "Change"))
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s\n", maxN, r.player,
				maxP, r.prev, maxW, r.next, maxD, r.delta))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// HistoryEntry is one point in a player's rating-over-time series.
type HistoryEntry struct {
	SessionDate string
	Rating      int
}

// BuildHistoryOutput formats a player's rating history into aligned string
// output.
func BuildHistoryOutput(name string, entries []HistoryEntry) string {
	if len(entries) == 0 {
		return fmt.Sprintf("No rating history for %s\n", name)
	}

	maxD, maxR := len("Session"), len("Rating")
	for _, e := range entries {
		if l := len(e.SessionDate); l > maxD {
			maxD = l
		}
		if l := len(fmt.Sprintf("%d", e.Rating)); l > maxR {
			maxR = l
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rating history for %s:\n\n", name))
	sb.WriteString(fmt.Sprintf("%-*s  %-*s\n", maxD, "Session", maxR, "Rating"))
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%-*s  %-*d\n", maxD, e.SessionDate, maxR,
			e.Rating))
	}

	return sb.String()
}

// BuildStatsOutput formats per-opponent match statistics into aligned string
// output.
func BuildStatsOutput(name string, stats []OpponentStats) string {
	if len(stats) == 0 {
		return fmt.Sprintf("No recorded matches for %s\n", name)
	}

	type row struct{ opp, record, mpct, games, gpct string }
	var rows []row
	for _, s := range stats {
		rows = append(rows, row{
			opp:    s.Opponent.Name,
			record: fmt.Sprintf("%d-%d", s.MatchWins, s.MatchLosses),
			mpct:   fmt.Sprintf("%.1f%%", s.MatchWinPct()),
			games:  fmt.Sprintf("%d-%d", s.GameWins, s.GameLosses),
			gpct:   fmt.Sprintf("%.1f%%", s.GameWinPct()),
		})
	}

	maxO, maxR, maxMP, maxG, maxGP := len("Opponent"), len("Matches"),
		len("Match%"), len("Games"), len("Game%")
	for _, r := range rows {
		if l := len(r.opp); l > maxO {
			maxO = l
		}
		if l := len(r.record); l > maxR {
			maxR = l
		}
		if l := len(r.mpct); l > maxMP {
			maxMP = l
		}
		if l := len(r.games); l > maxG {
			maxG = l
		}
		if l := len(r.gpct); l > maxGP {
			maxGP = l
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match record for %s:\n\n", name))
	sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %-*s\n", maxO,
		"Opponent", maxR, "Matches", maxMP, "Match%", maxG, "Games", maxGP,
		"Game%"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %-*s\n", maxO,
			r.opp, maxR, r.record, maxMP, r.mpct, maxG, r.games, maxGP, r.gpct))
	}

	return sb.String()
}
