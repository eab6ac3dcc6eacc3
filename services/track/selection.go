package track

import (
	"fmt"
	"strconv"
	"strings"

	"tra2kml/models"
)

// Selector describes which records end up in the selected polyline.
// Include and Exclude are 1-based range lists such as "1-20,25,30-";
// an empty Include selects everything. The station window, when set,
// narrows the include set before exclusions are applied.
type Selector struct {
	Include     string
	Exclude     string
	StationFrom *float64
	StationTo   *float64
}

// Flags evaluates the selector against records and returns one flag per
// record, in file order.
func (s Selector) Flags(records []models.TrackRecord) ([]bool, error) {
	n := len(records)

	flags := AllSelected(n)
	if strings.TrimSpace(s.Include) != "" {
		inc, err := ParseRanges(s.Include, n)
		if err != nil {
			return nil, fmt.Errorf("include: %w", err)
		}
		flags = inc
	}

	for i, rec := range records {
		if s.StationFrom != nil && rec.Station < *s.StationFrom {
			flags[i] = false
		}
		if s.StationTo != nil && rec.Station > *s.StationTo {
			flags[i] = false
		}
	}

	if strings.TrimSpace(s.Exclude) != "" {
		exc, err := ParseRanges(s.Exclude, n)
		if err != nil {
			return nil, fmt.Errorf("exclude: %w", err)
		}
		for i := range flags {
			if exc[i] {
				flags[i] = false
			}
		}
	}
	return flags, nil
}

// ParseRanges turns a comma separated list of 1-based positions and
// ranges into n flags. "a-b" is inclusive, "a-" runs to the last record
// and "-b" starts at the first. Positions past n are ignored.
func ParseRanges(list string, n int) ([]bool, error) {
	flags := make([]bool, n)
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, err := parseRange(part, n)
		if err != nil {
			return nil, err
		}
		for i := lo; i <= hi && i <= n; i++ {
			flags[i-1] = true
		}
	}
	return flags, nil
}

func parseRange(part string, n int) (lo, hi int, err error) {
	from, to, isRange := strings.Cut(part, "-")
	if !isRange {
		v, err := parsePosition(part)
		return v, v, err
	}

	lo, hi = 1, n
	if s := strings.TrimSpace(from); s != "" {
		if lo, err = parsePosition(s); err != nil {
			return 0, 0, err
		}
	}
	if s := strings.TrimSpace(to); s != "" {
		if hi, err = parsePosition(s); err != nil {
			return 0, 0, err
		}
	}
	if strings.TrimSpace(from) == "" && strings.TrimSpace(to) == "" {
		return 0, 0, fmt.Errorf("empty range %q", part)
	}
	if lo > hi && strings.TrimSpace(to) != "" {
		return 0, 0, fmt.Errorf("descending range %q", part)
	}
	return lo, hi, nil
}

func parsePosition(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q", s)
	}
	if v < 1 {
		return 0, fmt.Errorf("position %d out of range (positions start at 1)", v)
	}
	return v, nil
}
