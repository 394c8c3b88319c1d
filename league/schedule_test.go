/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"fmt"
	"testing"
)

func TestMakeMatchesCoversAllPairsOnce(t *testing.T) {
	for n := 0; n <= 7; n++ {
		t.Run(fmt.Sprintf("size %d", n), func(t *testing.T) {
			g := Group{Number: 1}
			for i := 0; i < n; i++ {
				g.AddPlayer(Player{ID: int64(i + 1), Rating: 1500})
			}

			pairings := g.MakeMatches()
			want := n * (n - 1) / 2
			if len(pairings) != want {
				t.Fatalf("expected %d pairings, got %d", want, len(pairings))
			}

			seen := make(map[[2]int64]bool)
			for _, p := range pairings {
				a, b := p.Player1.ID, p.Player2.ID
				if a == b {
					t.Fatalf("player %d paired against themselves", a)
				}
				if b < a {
					a, b = b, a
				}
				key := [2]int64{a, b}
				if seen[key] {
					t.Fatalf("pair %v scheduled twice", key)
				}
				seen[key] = true
			}
		})
	}
}

func TestMakeMatchesZigZagOrder(t *testing.T) {
	g := Group{Number: 1, Players: []Player{
		{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4},
	}}

	// raw combination order is 12,13,14,23,24,34; the zig-zag pulls
	// alternately from the front and the back
	want := [][2]int64{{1, 2}, {3, 4}, {1, 3}, {2, 4}, {1, 4}, {2, 3}}

	pairings := g.MakeMatches()
	if len(pairings) != len(want) {
		t.Fatalf("expected %d pairings, got %d", len(want), len(pairings))
	}
	for i, p := range pairings {
		if p.Player1.ID != want[i][0] || p.Player2.ID != want[i][1] {
			t.Errorf("pairing %d: got (%d,%d) want (%d,%d)", i,
				p.Player1.ID, p.Player2.ID, want[i][0], want[i][1])
		}
	}
}

func TestMakeMatchesBreaksUpOpeningRun(t *testing.T) {
	// raw combinations schedule the first player's matches consecutively at
	// the front; the zig-zag must not leave any such opening run
	for n := 4; n <= 8; n++ {
		g := Group{Number: 1}
		for i := 0; i < n; i++ {
			g.AddPlayer(Player{ID: int64(i + 1)})
		}

		pairings := g.MakeMatches()
		if pairings[0].Player1.ID != 1 {
			t.Fatalf("n=%d: schedule should open with the first player's match", n)
		}
		if pairings[1].Player1.ID == 1 || pairings[1].Player2.ID == 1 {
			t.Errorf("n=%d: first player scheduled in the opening two matches back to back", n)
		}
	}
}

func TestFlipIndex(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{n: 1, want: 0},
		{n: 2, want: -1},
		{n: 3, want: 1},
		{n: 4, want: -2},
		{n: 5, want: 2},
		{n: 6, want: -3},
	}
	for _, c := range cases {
		if got := flipIndex(c.n); got != c.want {
			t.Errorf("flipIndex(%d) = %d; want %d", c.n, got, c.want)
		}
	}
}
