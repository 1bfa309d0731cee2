package models

import "time"

// DateLayout is the wire form of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar day without time of day. The empty value means unset.
type Date string

func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func (d Date) IsZero() bool { return d == "" }

// Time parses the date as midnight in loc. ok is false for empty or
// malformed values, which callers treat as "no due date".
func (d Date) Time(loc *time.Location) (t time.Time, ok bool) {
	if d == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	// Accept full timestamps too; only the day part matters.
	s := string(d)
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
