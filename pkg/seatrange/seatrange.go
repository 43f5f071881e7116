// Package seatrange parses seat number lists like "1-50, 55, 60-62".
package seatrange

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrEmpty     = errors.New("seatrange: empty input")
	ErrSegment   = errors.New("seatrange: malformed segment")
	ErrNotNumber = errors.New("seatrange: not a positive number")
	ErrReversed  = errors.New("seatrange: range end is before start")
	ErrOverlap   = errors.New("seatrange: ranges overlap")
)

// Range is an inclusive range of seat numbers.
type Range struct {
	From int
	To   int
}

// Len returns how many seat numbers the range covers.
func (r Range) Len() int {
	return r.To - r.From + 1
}

// Parse splits s on commas and parses every segment as either "N" or "N-M".
// Any malformed segment fails the whole input; nothing is silently dropped.
// Returned ranges are sorted by From.
func Parse(s string) ([]Range, error) {
	if strings.TrimSpace(s) == "" {
		return nil, ErrEmpty
	}

	parts := strings.Split(s, ",")
	ranges := make([]Range, 0, len(parts))
	for i, part := range parts {
		r, err := parseSegment(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("segment %d %q: %w", i+1, strings.TrimSpace(part), err)
		}
		ranges = append(ranges, r)
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].From < ranges[j].From })
	for i := 1; i < len(ranges); i++ {
		if ranges[i].From <= ranges[i-1].To {
			return nil, fmt.Errorf("%w: %d-%d and %d-%d", ErrOverlap,
				ranges[i-1].From, ranges[i-1].To, ranges[i].From, ranges[i].To)
		}
	}

	return ranges, nil
}

// Expand returns every seat number covered by ranges in ascending order.
func Expand(ranges []Range) []int {
	total := 0
	for _, r := range ranges {
		total += r.Len()
	}

	numbers := make([]int, 0, total)
	for _, r := range ranges {
		for n := r.From; n <= r.To; n++ {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)
	return numbers
}

func parseSegment(seg string) (Range, error) {
	if seg == "" {
		return Range{}, ErrSegment
	}

	bounds := strings.Split(seg, "-")
	switch len(bounds) {
	case 1:
		n, err := parseNumber(bounds[0])
		if err != nil {
			return Range{}, err
		}
		return Range{From: n, To: n}, nil
	case 2:
		from, err := parseNumber(bounds[0])
		if err != nil {
			return Range{}, err
		}
		to, err := parseNumber(bounds[1])
		if err != nil {
			return Range{}, err
		}
		if to < from {
			return Range{}, ErrReversed
		}
		return Range{From: from, To: to}, nil
	default:
		return Range{}, ErrSegment
	}
}

func parseNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrSegment
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, ErrNotNumber
	}
	return n, nil
}
