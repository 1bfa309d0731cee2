package views

import (
	"testing"
	"time"

	"github.com/huangang/teamboard/internal/models"
)

var now = time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)

func daysFromNow(n int) models.Date {
	return models.NewDate(now.AddDate(0, 0, n))
}

func TestDayDiff(t *testing.T) {
	tests := []struct {
		date models.Date
		want int
		ok   bool
	}{
		{daysFromNow(0), 0, true},
		{daysFromNow(-5), -5, true},
		{daysFromNow(31), 31, true},
		{"2026-10-19T23:59:00Z", 0, true},
		{"", 0, false},
		{"garbage", 0, false},
	}

	for _, tt := range tests {
		got, ok := DayDiff(tt.date, now)
		if ok != tt.ok || got != tt.want {
			t.Errorf("DayDiff(%q) = %d, %v, expected %d, %v", tt.date, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDayDiff_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// DST ends on 2026-11-01 in New York
	before := time.Date(2026, 10, 31, 23, 0, 0, 0, loc)
	got, _ := DayDiff("2026-11-02", before)
	if got != 2 {
		t.Errorf("DayDiff across DST = %d, expected 2", got)
	}
}

func TestDueBucket_Match(t *testing.T) {
	offsets := []int{-5, 0, 3, 10}

	tests := []struct {
		bucket DueBucket
		want   []bool // per offset, then the dateless entry
	}{
		{DueAll, []bool{true, true, true, true, true}},
		{DueOverdue, []bool{true, false, false, false, true}},
		{Due7, []bool{false, true, true, false, true}},
		{Due30, []bool{false, true, true, true, true}},
	}

	for _, tt := range tests {
		for i, off := range offsets {
			if got := tt.bucket.Match(daysFromNow(off), now); got != tt.want[i] {
				t.Errorf("%s.Match(%+d days) = %v, expected %v", tt.bucket, off, got, tt.want[i])
			}
		}
		if got := tt.bucket.Match("", now); got != tt.want[4] {
			t.Errorf("%s.Match(no date) = %v, expected %v", tt.bucket, got, tt.want[4])
		}
	}
}

func TestDue7_FiltersTaskList(t *testing.T) {
	tasks := []models.Task{
		{ID: "minus5", DueDate: daysFromNow(-5)},
		{ID: "zero", DueDate: daysFromNow(0)},
		{ID: "three", DueDate: daysFromNow(3)},
		{ID: "ten", DueDate: daysFromNow(10)},
		{ID: "none"},
	}
	var got []string
	for _, task := range tasks {
		if Due7.Match(task.DueDate, now) {
			got = append(got, task.ID)
		}
	}

	want := []string{"zero", "three", "none"}
	if len(got) != len(want) {
		t.Fatalf("due_7 = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("due_7[%d] = %q, expected %q", i, got[i], want[i])
		}
	}
}

func TestSortByDueDate_MissingLastAndStable(t *testing.T) {
	tasks := []models.Task{
		{ID: "none-a"},
		{ID: "late", DueDate: "2026-12-01"},
		{ID: "early-a", DueDate: "2026-10-01"},
		{ID: "none-b"},
		{ID: "early-b", DueDate: "2026-10-01"},
	}
	SortByDueDate(tasks, func(t models.Task) models.Date { return t.DueDate })

	want := []string{"early-a", "early-b", "late", "none-a", "none-b"}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Errorf("position %d = %q, expected %q", i, tasks[i].ID, id)
		}
	}
}
