package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDuration converts a short human duration like "2h 30m" or "45m"
// into whole seconds. Accepted units are h, m and s; whitespace between
// parts is optional. The parsed value must come out positive.
func ParseDuration(s string) (int, error) {
	total := 0
	num := ""
	sawUnit := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
		case r == ' ' || r == '\t':
			if num != "" {
				return 0, fmt.Errorf("invalid duration %q: number %q has no unit", s, num)
			}
		case r == 'h' || r == 'm' || r == 's':
			if num == "" {
				return 0, fmt.Errorf("invalid duration %q: unit %q has no number", s, string(r))
			}
			n, err := strconv.Atoi(num)
			if err != nil {
				return 0, fmt.Errorf("invalid duration %q: %v", s, err)
			}
			switch r {
			case 'h':
				total += n * 3600
			case 'm':
				total += n * 60
			case 's':
				total += n
			}
			num = ""
			sawUnit = true
		default:
			return 0, fmt.Errorf("invalid duration %q: unexpected character %q", s, string(r))
		}
	}
	if num != "" {
		return 0, fmt.Errorf("invalid duration %q: trailing number %q has no unit", s, num)
	}
	if !sawUnit || total <= 0 {
		return 0, fmt.Errorf("invalid duration %q: use a format like \"2h 30m\"", s)
	}
	return total, nil
}

// FormatSeconds renders a second count in the same short form ParseDuration
// accepts, e.g. 9000 -> "2h 30m".
func FormatSeconds(seconds int) string {
	if seconds <= 0 {
		return "0h"
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
