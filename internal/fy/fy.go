// Package fy implements financial-year calendar math. A financial year runs
// April 1 through March 31 and is labeled by its starting calendar year.
package fy

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fintrail-dev/fintrail/internal/model"
)

// Year is a financial year, identified by the calendar year it starts in.
// FY 2024 covers 2024-04-01 through 2025-03-31.
type Year int

// Current returns the financial year containing now.
func Current(now time.Time) Year {
	if now.Month() < time.April {
		return Year(now.Year() - 1)
	}
	return Year(now.Year())
}

// Parse parses a starting calendar year like "2024".
func Parse(s string) (Year, error) {
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parsing financial year %q: %w", s, err)
	}
	if y < 1900 || y > 9999 {
		return 0, fmt.Errorf("financial year %d out of range", y)
	}
	return Year(y), nil
}

// Label returns the display label, e.g. "FY 2024-25".
func (y Year) Label() string {
	return fmt.Sprintf("FY %04d-%02d", int(y), (int(y)+1)%100)
}

// Range returns the inclusive start and end dates of the financial year:
// April 1 of the starting year through March 31 of the next.
func (y Year) Range() (start, end model.Date) {
	start = model.NewDate(int(y), time.April, 1)
	end = model.NewDate(int(y)+1, time.March, 31)
	return start, end
}

// Months is the number of months in a financial year.
const Months = 12

// MonthRange returns the half-open calendar range [first, firstOfNext) for a
// month index within the financial year. Index 0 is April; index 10 of FY
// 2024 is January 2025.
func (y Year) MonthRange(index int) (start, next model.Date, err error) {
	if index < 0 || index >= Months {
		return model.Date{}, model.Date{}, fmt.Errorf("month index %d out of range 0..%d", index, Months-1)
	}

	first := time.Date(int(y), time.April, 1, 0, 0, 0, 0, time.UTC).AddDate(0, index, 0)
	return model.DateOf(first), model.DateOf(first.AddDate(0, 1, 0)), nil
}

// MonthLabel returns the display name of a month index, e.g. "Jan 2025" for
// index 10 of FY 2024.
func (y Year) MonthLabel(index int) string {
	first := time.Date(int(y), time.April, 1, 0, 0, 0, 0, time.UTC).AddDate(0, index, 0)
	return first.Format("Jan 2006")
}

// Contains reports whether a date falls inside the financial year.
func (y Year) Contains(d model.Date) bool {
	start, end := y.Range()
	t := d.Time()
	return !t.Before(start.Time()) && !t.After(end.Time())
}
