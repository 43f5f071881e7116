package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationHours(t *testing.T) {
	tests := []struct {
		name  string
		start TimeString
		end   TimeString
		want  float64
	}{
		{name: "same day", start: "09:00", end: "17:00", want: 8},
		{name: "fractional", start: "06:15", end: "10:00", want: 3.75},
		{name: "overnight", start: "22:00", end: "06:00", want: 8},
		{name: "end at midnight", start: "18:00", end: "00:00", want: 6},
		{name: "equal wraps to full day", start: "08:00", end: "08:00", want: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DurationHours(tt.start, tt.end)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestDurationHours_InvalidInput(t *testing.T) {
	_, err := DurationHours("9:00", "17:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = DurationHours("09:00", "25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "3.75", FormatHours(3.75))
	assert.Equal(t, "8.00", FormatHours(8))
	assert.Equal(t, "0.33", FormatHours(20.0/60))
}

func TestAddMinutes(t *testing.T) {
	got, err := TimeString("10:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), got)

	_, err = TimeString("23:50").AddMinutes(15)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestScan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("07:30:00")))
	assert.Equal(t, TimeString("07:30"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestCompare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("21:00").IsAfter("09:59"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
}
