// Package timeline defines the ETL run record model and the immutable dataset
// that backs the timeline view. It contains time-of-day parsing, reference-date
// anchoring, and the case-insensitive name filter.
package timeline

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ColumnName  = "ETL"
	ColumnStart = "Start Time"
	ColumnEnd   = "End Time"

	clockLayout = "3:04 PM"
)

// ReferenceDate is the shared day every time of day is anchored to.
var ReferenceDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

var RequiredColumns = []string{ColumnName, ColumnStart, ColumnEnd}

var errHourZero = errors.New("hour must be between 1 and 12")

type (
	TimeOfDay struct {
		Hour   int `json:"hour"`
		Minute int `json:"minute"`
	}

	RawRow struct {
		Name  string `json:"etl"`
		Start string `json:"start_time"`
		End   string `json:"end_time"`
	}

	Record struct {
		Name           string    `json:"name"`
		StartTimeOfDay TimeOfDay `json:"start_time_of_day"`
		EndTimeOfDay   TimeOfDay `json:"end_time_of_day"`
		StartTimestamp time.Time `json:"start_timestamp"`
		EndTimestamp   time.Time `json:"end_timestamp"`
	}
)

// ParseTimeOfDay parses 12-hour clock text such as "09:15 AM" or "2:30 pm".
func ParseTimeOfDay(text string) (TimeOfDay, error) {
	text = strings.ToUpper(strings.TrimSpace(text))
	t, err := time.Parse(clockLayout, text)
	if err != nil {
		return TimeOfDay{}, err
	}

	// time.Parse accepts "0" for a 12-hour clock hour.
	if strings.HasPrefix(text, "0:") || strings.HasPrefix(text, "00:") {
		return TimeOfDay{}, errHourZero
	}

	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Clock returns the 12-hour hour, the minute and the AM/PM marker.
func (t TimeOfDay) Clock() (int, int, string) {
	meridiem := "AM"
	if t.Hour >= 12 {
		meridiem = "PM"
	}

	hour := t.Hour % 12
	if hour == 0 {
		hour = 12
	}

	return hour, t.Minute, meridiem
}

func (t TimeOfDay) String() string {
	hour, minute, meridiem := t.Clock()
	return fmt.Sprintf("%02d:%02d %s", hour, minute, meridiem)
}

func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

// NewRecord parses both time texts of a raw row. Records whose end precedes
// their start are kept as they are.
func NewRecord(row RawRow) (Record, error) {
	start, err := ParseTimeOfDay(row.Start)
	if err != nil {
		return Record{}, &ParseError{Column: ColumnStart, Value: row.Start, Err: err}
	}

	end, err := ParseTimeOfDay(row.End)
	if err != nil {
		return Record{}, &ParseError{Column: ColumnEnd, Value: row.End, Err: err}
	}

	return Record{
		Name:           row.Name,
		StartTimeOfDay: start,
		EndTimeOfDay:   end,
		StartTimestamp: start.On(ReferenceDate),
		EndTimestamp:   end.On(ReferenceDate),
	}, nil
}

func (r Record) Duration() time.Duration {
	return r.EndTimestamp.Sub(r.StartTimestamp)
}
