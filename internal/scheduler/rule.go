package scheduler

import (
	"fmt"
	"time"
)

// Rule is a calendar rule. Due reports whether the rule's most recent
// scheduled occurrence at or before now falls after lastRun, i.e. whether
// the trigger should fire this tick. Evaluation is a pure function of the
// two instants, so rules need no internal state and no wall clock.
type Rule interface {
	Due(now, lastRun time.Time) bool
	String() string
}

// DailyAt fires once per day at the given local time.
func DailyAt(hour, min int) Rule {
	return dailyRule{hour: hour, min: min}
}

type dailyRule struct {
	hour, min int
}

func (r dailyRule) Due(now, lastRun time.Time) bool {
	occ := time.Date(now.Year(), now.Month(), now.Day(), r.hour, r.min, 0, 0, now.Location())
	if occ.After(now) {
		occ = occ.AddDate(0, 0, -1)
	}
	return occ.After(lastRun)
}

func (r dailyRule) String() string {
	return fmt.Sprintf("daily at %02d:%02d", r.hour, r.min)
}

// WeeklyOn fires once per week on the given weekday at the given local time.
func WeeklyOn(day time.Weekday, hour, min int) Rule {
	return weeklyRule{day: day, hour: hour, min: min}
}

type weeklyRule struct {
	day       time.Weekday
	hour, min int
}

func (r weeklyRule) Due(now, lastRun time.Time) bool {
	occ := time.Date(now.Year(), now.Month(), now.Day(), r.hour, r.min, 0, 0, now.Location())
	occ = occ.AddDate(0, 0, -int((now.Weekday()-r.day+7)%7))
	if occ.After(now) {
		occ = occ.AddDate(0, 0, -7)
	}
	return occ.After(lastRun)
}

func (r weeklyRule) String() string {
	return fmt.Sprintf("weekly on %s at %02d:%02d", r.day, r.hour, r.min)
}

// BiweeklyAt fires every fourteen days at the given local time, anchored on
// the trigger's last run: the next occurrence is fourteen days after the
// day of the previous one.
func BiweeklyAt(hour, min int) Rule {
	return biweeklyRule{hour: hour, min: min}
}

type biweeklyRule struct {
	hour, min int
}

func (r biweeklyRule) Due(now, lastRun time.Time) bool {
	next := time.Date(lastRun.Year(), lastRun.Month(), lastRun.Day(), r.hour, r.min, 0, 0, lastRun.Location())
	next = next.AddDate(0, 0, 14)
	return !now.Before(next)
}

func (r biweeklyRule) String() string {
	return fmt.Sprintf("every 2 weeks at %02d:%02d", r.hour, r.min)
}
