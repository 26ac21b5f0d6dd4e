package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO date format used at every report boundary.
const DateLayout = "2006-01-02"

// DateRange is an inclusive [Start, End] range of calendar dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange normalizes both ends to UTC midnight.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: TruncateDate(start), End: TruncateDate(end)}
}

// ParseDateRange parses two ISO dates into a range. It does not validate order.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return NewDateRange(s, e), nil
}

// TruncateDate drops the clock part of t, keeping its calendar date.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsValid reports whether Start is not after End.
func (r DateRange) IsValid() bool {
	return !r.Start.After(r.End)
}

// Contains reports whether the calendar date of t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	d := TruncateDate(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Before reports whether the calendar date of t is strictly before Start.
func (r DateRange) Before(t time.Time) bool {
	return TruncateDate(t).Before(r.Start)
}

func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}
