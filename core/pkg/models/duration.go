package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var leadingLongUnit = regexp.MustCompile(`^(\d+)([ywd])`)

var longUnits = map[string]time.Duration{
	"y": 52 * 7 * 24 * time.Hour,
	"w": 7 * 24 * time.Hour,
	"d": 24 * time.Hour,
}

// ParseDuration extends time.ParseDuration with the y, w and d units.
// Long units must precede the standard ones ("1w2d3h").
func ParseDuration(s string) (time.Duration, error) {
	rest := s
	neg := strings.HasPrefix(rest, "-")
	rest = strings.TrimPrefix(rest, "-")

	var total time.Duration
	consumed := false
	for {
		m := leadingLongUnit.FindStringSubmatch(rest)
		if m == nil {
			break
		}

		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("time: invalid duration %q", s)
		}

		total += time.Duration(n) * longUnits[m[2]]
		rest = rest[len(m[0]):]
		consumed = true
	}

	if !consumed {
		return time.ParseDuration(s)
	}

	if rest != "" {
		d, err := time.ParseDuration(rest)
		if err != nil {
			return 0, fmt.Errorf("time: invalid duration %q", s)
		}
		total += d
	}

	if neg {
		total = -total
	}

	return total, nil
}
