package seatrange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	ranges, err := Parse("60-62, 1-3,55")
	require.NoError(t, err)

	assert.Equal(t, []Range{{1, 3}, {55, 55}, {60, 62}}, ranges)
	assert.Equal(t, []int{1, 2, 3, 55, 60, 61, 62}, Expand(ranges))
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"empty", "  ", ErrEmpty},
		{"empty segment", "1-3,,5", ErrSegment},
		{"trailing comma", "1-3,", ErrSegment},
		{"letters", "1-a", ErrNotNumber},
		{"zero", "0-5", ErrNotNumber},
		{"negative", "-3", ErrSegment},
		{"reversed", "10-2", ErrReversed},
		{"too many dashes", "1-2-3", ErrSegment},
		{"overlap", "1-10, 5", ErrOverlap},
		{"duplicate", "7,7", ErrOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
