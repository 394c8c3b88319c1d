/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnresolvedPlayer indicates a match referenced a player for whom no
// entering rating could be determined. Session aggregation is all or
// nothing, so a single unresolved player fails the whole pass.
var ErrUnresolvedPlayer = errors.New("no resolvable rating for player")

// Adjust computes side A's signed rating delta for one match under the BTTC
// methodology: a 3-0 win over an equally rated opponent is worth 16 points,
// modified up or down by 4% of the rating difference. The call is evaluated
// independently per side; invoke it again with the arguments swapped to get
// side B's delta. The two deltas are not required to sum to zero.
//
// Rules, in order:
//   - 0-0 (unplayed) adjusts nothing.
//   - A "win" requires strictly more games than the opponent; a tied score
//     such as 1-1 counts as not-won for both sides.
//   - Expected results (favorite wins, underdog loses) are worth
//     max(16-factor, 0), so a favorite 400 or more points up gains nothing.
//   - Upsets are worth 16+factor.
//
// The 4% factor is rounded half away from zero; an exact .5 cannot occur
// since 4% of an integer difference is never a half point.
func Adjust(ratingA, winsA, ratingB, winsB int) int {
	if winsA == 0 && winsB == 0 {
		return 0
	}

	diff := ratingA - ratingB
	if diff < 0 {
		diff = -diff
	}
	factor := int(math.Round(0.04 * float64(diff)))

	if winsA > winsB {
		if ratingA > ratingB {
			// expected result
			return max(16-factor, 0)
		}
		// upset
		return 16 + factor
	}

	if ratingB > ratingA {
		// lost as the underdog; expected
		return -max(16-factor, 0)
	}
	// lost as the favorite; upset
	return -(16 + factor)
}

// ApplySession aggregates all of one session's matches into a per-player net
// rating change. Matches are processed strictly in the order supplied; the
// running accumulation is order dependent whenever a player appears in more
// than one match, so callers must pass a fixed, reproducible order.
//
// Each player's running rating is seeded the first time they appear: from an
// existing SessionRating's PreviousRating when the session has already been
// (partially) closed before, otherwise from the player's current rating.
// Every match is scored against both sides' running ratings, so a player's
// second match of the evening is adjusted relative to where their first
// match left them.
func ApplySession(matches []Match, existing map[int64]SessionRating) (map[int64]RatingChange, error) {
	previous := make(map[int64]int)
	running := make(map[int64]int)

	seed := func(p Player) error {
		if _, ok := running[p.ID]; ok {
			return nil
		}
		if sr, ok := existing[p.ID]; ok {
			previous[p.ID] = sr.PreviousRating
			running[p.ID] = sr.PreviousRating
			return nil
		}
		if p.ID == 0 || p.Rating == 0 {
			return fmt.Errorf("apply session: player %q (id %d): %w",
				p.Name, p.ID, ErrUnresolvedPlayer)
		}
		previous[p.ID] = p.Rating
		running[p.ID] = p.Rating
		return nil
	}

	for _, m := range matches {
		if err := seed(m.Player1); err != nil {
			return nil, err
		}
		if err := seed(m.Player2); err != nil {
			return nil, err
		}

		r1 := running[m.Player1.ID]
		r2 := running[m.Player2.ID]
		running[m.Player1.ID] = r1 + Adjust(r1, m.P1Wins, r2, m.P2Wins)
		running[m.Player2.ID] = r2 + Adjust(r2, m.P2Wins, r1, m.P1Wins)
	}

	changes := make(map[int64]RatingChange, len(running))
	for id, r := range running {
		changes[id] = RatingChange{PreviousRating: previous[id], NewRating: r}
	}

	return changes, nil
}
