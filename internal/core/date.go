package core

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateFormat is the canonical textual form for persisted dates (ISO-8601,
// year-month-day). Display formats are a presentation concern and never
// persisted.
const DateFormat = "2006-01-02"

// Date is a calendar date with day-level granularity, anchored at
// midnight UTC so comparisons ignore time of day.
type Date struct {
	time.Time
}

// NewDate creates a normalized Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date.
func Today() Date {
	return NewDate(time.Now().Date())
}

// ParseDate parses a date in the canonical YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want format %q: %w", s, DateFormat, err)
	}
	return NewDate(t.Date()), nil
}

// Add returns a new Date with the given number of days added.
func (d Date) Add(days int) Date {
	return NewDate(d.Year(), d.Month(), d.Day()+days)
}

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.Time.After(x.Time) }

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d.Time.Before(x.Time) }

// Equal reports whether d and x are the same calendar date.
func (d Date) Equal(x Date) bool { return d.Time.Equal(x.Time) }

// String formats the date in its canonical form.
func (d Date) String() string { return d.Format(DateFormat) }

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	s := d.String()
	return json.Marshal(&s)
}

// UnmarshalJSON decodes a YYYY-MM-DD string. Parsing is strict since it
// guards data files.
func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
