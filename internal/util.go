/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// SessionDateFormat is the canonical on-disk form for session dates.
const SessionDateFormat = "2006-01-02"

// ParseDateOrZero returns a parsed time or zero if input is empty or "null".
func ParseDateOrZero(s string) (time.Time, error) {
	if s == "" || s == "null" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// NormalizeName reduces a scraped name to title-cased "First Last" form.
func NormalizeName(s string) string {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return ""
	}
	first := parts[0]
	last := first
	if len(parts) > 1 {
		last = parts[len(parts)-1]
	}
	firstTitle := titleWord(first)
	lastTitle := titleWord(last)
	if firstTitle == lastTitle {
		return firstTitle
	}
	return firstTitle + " " + lastTitle
}

func titleWord(s string) string {
	r := []rune(strings.ToLower(s))
	return string(unicode.ToUpper(r[0])) + string(r[1:])
}

// NormalizeSessionDate accepts any parseable date string and returns it in
// SessionDateFormat. An empty input means today.
func NormalizeSessionDate(s string) (string, error) {
	if s == "" {
		return time.Now().Format(SessionDateFormat), nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return "", err
	}
	return t.Format(SessionDateFormat), nil
}
