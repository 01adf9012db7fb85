package timeline

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		hour   int
		minute int
	}{
		{name: "zero padded morning", input: "09:15 AM", hour: 9, minute: 15},
		{name: "single digit hour", input: "2:30 PM", hour: 14, minute: 30},
		{name: "midnight", input: "12:00 AM", hour: 0, minute: 0},
		{name: "noon", input: "12:00 PM", hour: 12, minute: 0},
		{name: "last minute of day", input: "11:59 PM", hour: 23, minute: 59},
		{name: "lowercase meridiem", input: "07:05 pm", hour: 19, minute: 5},
		{name: "surrounding spaces", input: "  10:45 AM ", hour: 10, minute: 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tod, err := ParseTimeOfDay(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.hour, tod.Hour)
			assert.Equal(t, tt.minute, tod.Minute)
		})
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	inputs := []string{
		"25:99 XM",
		"13:00 PM",
		"00:30 AM",
		"0:30 AM",
		"09:15",
		"14:30",
		"9.15 AM",
		"09:15 AM extra",
		"",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseTimeOfDay(input)
			assert.Error(t, err)
		})
	}
}

func TestTimeOfDay_RoundTrip(t *testing.T) {
	for _, meridiem := range []string{"AM", "PM"} {
		for hour := 1; hour <= 12; hour++ {
			for _, minute := range []int{0, 1, 15, 30, 59} {
				input := formatClock(hour, minute, meridiem)
				tod, err := ParseTimeOfDay(input)
				require.NoError(t, err, input)

				gotHour, gotMinute, gotMeridiem := tod.Clock()
				assert.Equal(t, hour, gotHour, input)
				assert.Equal(t, minute, gotMinute, input)
				assert.Equal(t, meridiem, gotMeridiem, input)
				assert.Equal(t, input, tod.String())
			}
		}
	}
}

func formatClock(hour, minute int, meridiem string) string {
	return TimeOfDay{Hour: to24(hour, meridiem), Minute: minute}.String()
}

func to24(hour int, meridiem string) int {
	hour %= 12
	if meridiem == "PM" {
		hour += 12
	}
	return hour
}

func TestNewRecord(t *testing.T) {
	rec, err := NewRecord(RawRow{Name: "LoadOrders", Start: "09:00 AM", End: "10:30 AM"})
	require.NoError(t, err)

	assert.Equal(t, "LoadOrders", rec.Name)
	assert.Equal(t, time.Date(1900, 1, 1, 9, 0, 0, 0, time.UTC), rec.StartTimestamp)
	assert.Equal(t, time.Date(1900, 1, 1, 10, 30, 0, 0, time.UTC), rec.EndTimestamp)
	assert.Equal(t, 90*time.Minute, rec.Duration())
}

func TestNewRecord_EndBeforeStart(t *testing.T) {
	rec, err := NewRecord(RawRow{Name: "Nightly", Start: "11:00 PM", End: "01:00 AM"})
	require.NoError(t, err)

	assert.True(t, rec.EndTimestamp.Before(rec.StartTimestamp))
	assert.Equal(t, -22*time.Hour, rec.Duration())
}

func TestNewRecord_ParseError(t *testing.T) {
	t.Run("bad start", func(t *testing.T) {
		_, err := NewRecord(RawRow{Name: "x", Start: "25:99 XM", End: "10:00 AM"})

		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, ColumnStart, perr.Column)
		assert.Equal(t, "25:99 XM", perr.Value)
	})

	t.Run("bad end", func(t *testing.T) {
		_, err := NewRecord(RawRow{Name: "x", Start: "10:00 AM", End: "noon"})

		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, ColumnEnd, perr.Column)
		assert.NotNil(t, perr.Unwrap())
	})
}
