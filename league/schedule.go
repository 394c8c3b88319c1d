/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

// MakeMatches returns the group's full round-robin schedule: every unordered
// pair of group members exactly once, ordered so that no player has to play
// many matches back to back. Groups of size 0 or 1 yield an empty schedule.
func (g Group) MakeMatches() []Pairing {
	var raw []Pairing
	for i := 0; i < len(g.Players); i++ {
		for j := i + 1; j < len(g.Players); j++ {
			raw = append(raw, Pairing{Player1: g.Players[i], Player2: g.Players[j]})
		}
	}
	return interleavePairings(raw)
}

// interleavePairings reorders a lexicographic combination sequence with a
// zig-zag permutation: first element, last, second, second to last, and so
// on. Raw combinations list every match involving the group's first player
// consecutively; pulling alternately from both ends spreads each player's
// matches out so nobody plays with minimal rest. The mapping is a fixed
// tie-break rule, not a tuned optimum.
func interleavePairings(raw []Pairing) []Pairing {
	out := make([]Pairing, len(raw))
	for i := range out {
		idx := flipIndex(i + 1)
		if idx < 0 {
			idx += len(raw)
		}
		out[i] = raw[idx]
	}
	return out
}

// flipIndex maps 1-based output position n to a source index:
// floor((-1 + (-1)^n - 2*(-1)^n*n)/4), which reduces to (n-1)/2 for odd n
// and -n/2 for even n. Negative results index from the end of the list.
func flipIndex(n int) int {
	if n%2 == 1 {
		return (n - 1) / 2
	}
	return -n / 2
}
