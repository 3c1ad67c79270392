package valueobject

import (
	"fmt"
	"time"
)

// DateLayout is the wire and storage layout for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component, in YYYY-MM-DD form.
// The string representation orders lexicographically in chronological
// order, so range predicates and descending sorts work on the raw value.
type Date string

// NewDate validates s and returns it as a Date
func NewDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(s), nil
}

// DateOf converts a time.Time to a Date, dropping the time component
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the current calendar date
func Today() Date {
	return DateOf(time.Now())
}

// String returns the YYYY-MM-DD representation
func (d Date) String() string {
	return string(d)
}

// IsZero reports whether the date is unset
func (d Date) IsZero() bool {
	return d == ""
}

// Month returns the YYYY-MM prefix of the date
func (d Date) Month() string {
	if len(d) < 7 {
		return string(d)
	}
	return string(d[:7])
}

// Time parses the date back into a time.Time at midnight UTC
func (d Date) Time() (time.Time, error) {
	return time.Parse(DateLayout, string(d))
}

// MonthBounds returns the first and last day of the month containing t.
func MonthBounds(t time.Time) (Date, Date) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return DateOf(first), DateOf(last)
}
