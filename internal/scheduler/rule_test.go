package scheduler_test

import (
	"testing"
	"time"

	"github.com/techreviewhub/automation/internal/scheduler"
)

func at(day, hour, min int) time.Time {
	return time.Date(2026, time.June, day, hour, min, 0, 0, time.UTC)
}

func TestDailyAt(t *testing.T) {
	rule := scheduler.DailyAt(9, 0)

	tests := []struct {
		name    string
		now     time.Time
		lastRun time.Time
		want    bool
	}{
		{"exactly at fire time", at(10, 9, 0), at(9, 9, 0), true},
		{"shortly after fire time", at(10, 9, 1), at(10, 8, 59), true},
		{"already ran today", at(10, 10, 0), at(10, 9, 30), false},
		{"before today's occurrence", at(10, 8, 59), at(9, 9, 30), false},
		{"missed yesterday entirely", at(10, 8, 0), at(8, 9, 30), true},
		{"same instant as last run", at(10, 9, 0), at(10, 9, 0), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := rule.Due(tc.now, tc.lastRun); got != tc.want {
				t.Fatalf("Due(%v, %v) = %v, want %v", tc.now, tc.lastRun, got, tc.want)
			}
		})
	}
}

func TestWeeklyOn(t *testing.T) {
	// 2026-06-01 is a Monday.
	rule := scheduler.WeeklyOn(time.Monday, 10, 0)

	tests := []struct {
		name    string
		now     time.Time
		lastRun time.Time
		want    bool
	}{
		{"monday at fire time", at(1, 10, 0), at(1, 9, 0), true},
		{"monday already fired", at(1, 11, 0), at(1, 10, 30), false},
		{"midweek after monday run", at(3, 12, 0), at(1, 10, 30), false},
		{"midweek, monday was missed", at(3, 12, 0), time.Date(2026, time.May, 30, 12, 0, 0, 0, time.UTC), true},
		{"next monday rolls over", at(8, 10, 0), at(1, 10, 30), true},
		{"monday before fire time", at(1, 9, 59), time.Date(2026, time.May, 25, 10, 30, 0, 0, time.UTC), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := rule.Due(tc.now, tc.lastRun); got != tc.want {
				t.Fatalf("Due(%v, %v) = %v, want %v", tc.now, tc.lastRun, got, tc.want)
			}
		})
	}
}

func TestBiweeklyAt(t *testing.T) {
	rule := scheduler.BiweeklyAt(9, 0)

	tests := []struct {
		name    string
		now     time.Time
		lastRun time.Time
		want    bool
	}{
		{"thirteen days later", at(14, 9, 0), at(1, 9, 0), false},
		{"fourteen days later at fire time", at(15, 9, 0), at(1, 9, 0), true},
		{"fourteen days later before fire time", at(15, 8, 59), at(1, 9, 0), false},
		{"well past the next occurrence", at(20, 12, 0), at(1, 9, 0), true},
		{"anchored on last run day, not its time", at(15, 9, 0), at(1, 16, 45), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := rule.Due(tc.now, tc.lastRun); got != tc.want {
				t.Fatalf("Due(%v, %v) = %v, want %v", tc.now, tc.lastRun, got, tc.want)
			}
		})
	}
}
