/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"testing"
)

func TestParseDateOrZero(t *testing.T) {
	tm, err := ParseDateOrZero("")
	if err != nil || !tm.IsZero() {
		t.Errorf("empty input: got (%v, %v); want zero time", tm, err)
	}
	tm, err = ParseDateOrZero("null")
	if err != nil || !tm.IsZero() {
		t.Errorf("null input: got (%v, %v); want zero time", tm, err)
	}
	tm, err = ParseDateOrZero("June 12, 2025")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if tm.Year() != 2025 || tm.Month() != 6 || tm.Day() != 12 {
		t.Errorf("parsed %v; want 2025-06-12", tm)
	}
}

func TestNormalizeSessionDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "2025-06-12", want: "2025-06-12"},
		{in: "06/12/2025", want: "2025-06-12"},
		{in: "June 12, 2025", want: "2025-06-12"},
	}
	for _, c := range cases {
		got, err := NormalizeSessionDate(c.in)
		if err != nil {
			t.Errorf("NormalizeSessionDate(%q) failed: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("NormalizeSessionDate(%q) = %q; want %q", c.in, got, c.want)
		}
	}

	if _, err := NormalizeSessionDate("not a date"); err == nil {
		t.Errorf("expected error for unparseable date")
	}
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "JANE Q DOE", want: "Jane Doe"},
		{in: "doe", want: "Doe"},
		{in: "  wei   ding  ", want: "Wei Ding"},
		{in: "", want: ""},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}
