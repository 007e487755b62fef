package model

import (
	"fmt"
	"strings"
	"time"
)

// dateFormat is the wire format for calendar dates.
const dateFormat = "2006-01-02"

// Date is a calendar date without a time component. The server accepts and
// returns either "2006-01-02" or full RFC 3339; everything past the date is
// discarded.
type Date time.Time

// NewDate returns the Date for a year/month/day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

// Today returns the current date in UTC.
func Today() Date {
	return DateOf(time.Now().UTC())
}

// Time returns the underlying time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// String returns the date formatted as "2006-01-02".
func (d Date) String() string {
	return time.Time(d).Format(dateFormat)
}

// ParseDate parses a "2006-01-02" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface. Accepts either
// "2006-01-02" or RFC 3339 strings; null leaves the date untouched.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	t, err := time.Parse(dateFormat, value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
	}
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", value, err)
	}

	*d = DateOf(t)
	return nil
}
