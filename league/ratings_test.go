/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package league

import (
	"errors"
	"testing"
)

func TestAdjust(t *testing.T) {
	cases := []struct {
		name    string
		ratingA int
		winsA   int
		ratingB int
		winsB   int
		want    int
	}{
		{name: "unplayed match adjusts nothing", ratingA: 1600, winsA: 0, ratingB: 1200, winsB: 0, want: 0},
		{name: "equal ratings win", ratingA: 1600, winsA: 3, ratingB: 1600, winsB: 0, want: 16},
		{name: "equal ratings loss", ratingA: 1600, winsA: 0, ratingB: 1600, winsB: 3, want: -16},
		{name: "underdog expected loss", ratingA: 1400, winsA: 1, ratingB: 1600, winsB: 3, want: -8},
		{name: "favorite expected win", ratingA: 1600, winsA: 3, ratingB: 1400, winsB: 1, want: 8},
		{name: "underdog upset win", ratingA: 1400, winsA: 3, ratingB: 1600, winsB: 1, want: 24},
		{name: "favorite upset loss", ratingA: 1600, winsA: 1, ratingB: 1400, winsB: 3, want: -24},
		{name: "400 point favorite win floors at zero", ratingA: 1800, winsA: 3, ratingB: 1400, winsB: 0, want: 0},
		{name: "beyond 400 point favorite win stays zero", ratingA: 1950, winsA: 3, ratingB: 1400, winsB: 0, want: 0},
		{name: "beyond 400 point underdog loss stays zero", ratingA: 1400, winsA: 0, ratingB: 1950, winsB: 3, want: 0},
		{name: "400 point underdog upset win", ratingA: 1400, winsA: 3, ratingB: 1800, winsB: 2, want: 32},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Adjust(c.ratingA, c.winsA, c.ratingB, c.winsB)
			if got != c.want {
				t.Errorf("Adjust(%d,%d,%d,%d) = %d; want %d",
					c.ratingA, c.winsA, c.ratingB, c.winsB, got, c.want)
			}
		})
	}
}

func TestAdjustTreatsTieAsNotWon(t *testing.T) {
	// 1-1 with play recorded: neither side has strictly more wins, so both
	// take the loss-shaped adjustment
	if got := Adjust(1500, 1, 1500, 1); got != -16 {
		t.Errorf("tie at equal ratings: got %d; want -16", got)
	}
	if got := Adjust(1400, 1, 1600, 1); got != -8 {
		t.Errorf("tie as underdog: got %d; want -8", got)
	}
	if got := Adjust(1600, 1, 1400, 1); got != -24 {
		t.Errorf("tie as favorite: got %d; want -24", got)
	}
}

func TestApplySessionAccumulatesAcrossMatches(t *testing.T) {
	a := Player{ID: 1, Name: "A", Rating: 1500}
	b := Player{ID: 2, Name: "B", Rating: 1500}
	c := Player{ID: 3, Name: "C", Rating: 1500}

	matches := []Match{
		{Player1: a, Player2: b, P1Wins: 3, P2Wins: 0},
		{Player1: a, Player2: c, P1Wins: 3, P2Wins: 0},
	}

	changes, err := ApplySession(matches, nil)
	if err != nil {
		t.Fatalf("ApplySession returned error: %v", err)
	}

	// after the first match A runs at 1516; the second win is then worth
	// max(16-round(0.04*16), 0) = 15, not another 16
	got := changes[a.ID]
	if got.PreviousRating != 1500 {
		t.Errorf("A previous rating = %d; want 1500", got.PreviousRating)
	}
	if got.NewRating != 1531 {
		t.Errorf("A new rating = %d; want 1531", got.NewRating)
	}

	if changes[b.ID].NewRating != 1484 {
		t.Errorf("B new rating = %d; want 1484", changes[b.ID].NewRating)
	}
	// C's loss is scored against A's running 1516, an expected loss for the
	// now-underdog C: -max(16-1,0)
	if changes[c.ID].NewRating != 1485 {
		t.Errorf("C new rating = %d; want 1485", changes[c.ID].NewRating)
	}
}

func TestApplySessionSeedsFromExistingSessionRating(t *testing.T) {
	a := Player{ID: 1, Name: "A", Rating: 1500}
	b := Player{ID: 2, Name: "B", Rating: 1500}

	existing := map[int64]SessionRating{
		a.ID: {PlayerID: a.ID, SessionID: 7, PreviousRating: 1450, Rating: 1466},
	}
	matches := []Match{
		{Player1: a, Player2: b, P1Wins: 3, P2Wins: 0},
	}

	changes, err := ApplySession(matches, existing)
	if err != nil {
		t.Fatalf("ApplySession returned error: %v", err)
	}

	got := changes[a.ID]
	if got.PreviousRating != 1450 {
		t.Errorf("A previous rating = %d; want 1450 from the existing snapshot",
			got.PreviousRating)
	}
	// upset win from 1450 vs 1500: 16 + round(0.04*50) = 18
	if got.NewRating != 1468 {
		t.Errorf("A new rating = %d; want 1468", got.NewRating)
	}
}

func TestApplySessionUnresolvedPlayer(t *testing.T) {
	a := Player{ID: 1, Name: "A", Rating: 1500}
	ghost := Player{Name: "Ghost"}

	_, err := ApplySession([]Match{
		{Player1: a, Player2: ghost, P1Wins: 3, P2Wins: 1},
	}, nil)
	if !errors.Is(err, ErrUnresolvedPlayer) {
		t.Errorf("expected ErrUnresolvedPlayer, got %v", err)
	}
}

func TestApplySessionUnplayedMatchesAreNeutral(t *testing.T) {
	a := Player{ID: 1, Name: "A", Rating: 1700}
	b := Player{ID: 2, Name: "B", Rating: 1300}

	changes, err := ApplySession([]Match{
		{Player1: a, Player2: b},
	}, nil)
	if err != nil {
		t.Fatalf("ApplySession returned error: %v", err)
	}
	if changes[a.ID].Delta() != 0 || changes[b.ID].Delta() != 0 {
		t.Errorf("unplayed match moved ratings: %+v", changes)
	}
}
