// Package views turns role-filtered entities into the lists, boards and
// report aggregates the dashboard renders. Every function is pure; the
// current time is always passed in.
package views

import (
	"slices"
	"time"

	"github.com/huangang/teamboard/internal/models"
)

// DueBucket selects entities by how close their due date is.
type DueBucket string

const (
	DueAll     DueBucket = "all"
	DueOverdue DueBucket = "overdue"
	Due7       DueBucket = "due_7"
	Due30      DueBucket = "due_30"
)

func (b DueBucket) Valid() bool {
	switch b {
	case "", DueAll, DueOverdue, Due7, Due30:
		return true
	}
	return false
}

// DayDiff returns the number of calendar days from now's date to d.
// ok is false when d is unset or unparseable.
func DayDiff(d models.Date, now time.Time) (diff int, ok bool) {
	due, ok := d.Time(now.Location())
	if !ok {
		return 0, false
	}
	// compare as UTC midnights so DST shifts cannot skew the count
	a := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24), true
}

// Match reports whether a due date falls in the bucket. Entities without
// a due date match every bucket.
func (b DueBucket) Match(d models.Date, now time.Time) bool {
	if b == "" || b == DueAll {
		return true
	}
	diff, ok := DayDiff(d, now)
	if !ok {
		return true
	}
	switch b {
	case DueOverdue:
		return diff < 0
	case Due7:
		return diff >= 0 && diff <= 7
	case Due30:
		return diff >= 0 && diff <= 30
	}
	return true
}

// SortByDueDate orders items ascending by due date in place. Items
// without a date go last; ties keep their current order.
func SortByDueDate[T any](items []T, due func(T) models.Date) {
	slices.SortStableFunc(items, func(a, b T) int {
		ta, okA := due(a).Time(time.UTC)
		tb, okB := due(b).Time(time.UTC)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		return ta.Compare(tb)
	})
}
