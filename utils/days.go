package utils

import (
	"fmt"
	"strings"
	"time"
)

// dayOrder fixes the canonical calendar order used for stored day lists.
var dayOrder = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// ValidStartTime reports whether s is a zero-padded 24h "HH:MM" string.
func ValidStartTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	return hour <= 23 && minute <= 59
}

// NormalizeDays canonicalizes a days-of-week expression: "*" (or blank) means
// every day, otherwise a comma list of three-letter names is lowercased,
// deduplicated and reordered mon..sun. Unknown names are rejected.
func NormalizeDays(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return "*", nil
	}
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !validDay(name) {
			return "", fmt.Errorf("unknown day %q", name)
		}
		seen[name] = true
	}
	if len(seen) == 0 {
		return "", fmt.Errorf("days_of_week must name at least one day")
	}
	var out []string
	for _, name := range dayOrder {
		if seen[name] {
			out = append(out, name)
		}
	}
	return strings.Join(out, ","), nil
}

// DayMatches reports whether the stored days expression covers the weekday.
// The expression is assumed normalized, so a plain substring set test works.
func DayMatches(days string, weekday time.Weekday) bool {
	if days == "*" {
		return true
	}
	name := strings.ToLower(weekday.String()[:3])
	for _, part := range strings.Split(days, ",") {
		if part == name {
			return true
		}
	}
	return false
}

func validDay(name string) bool {
	for _, d := range dayOrder {
		if d == name {
			return true
		}
	}
	return false
}
