package source

import (
	"regexp"
	"strconv"
	"strings"
)

// UnknownAge is the sentinel for ages that could not be parsed: old
// enough to never count as active.
const UnknownAge = 9999

var ageRe = regexp.MustCompile(`^(\d+)\s*([mhd])(?:\s+ago)?$`)

// ParseAge converts a free-text age string ("just now", "5m", "2h ago",
// "1d ago") to integer minutes. Unrecognized input yields UnknownAge,
// never an error.
func ParseAge(text string) int {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "just now" || s == "now" {
		return 0
	}

	m := ageRe.FindStringSubmatch(s)
	if m == nil {
		return UnknownAge
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return UnknownAge
	}

	switch m[2] {
	case "m":
		return n
	case "h":
		return n * 60
	case "d":
		return n * 1440
	}
	return UnknownAge
}
