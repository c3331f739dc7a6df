// Package duedate computes when a fixed account (recurring monthly
// bill) next falls due, given its due-day-of-month.
package duedate

import (
	"fmt"
	"sort"
	"time"

	"github.com/dukerupert/centavo/internal/model"
)

// DaysUntilDue returns the whole number of days from today until the
// next occurrence of dueDay. 0 means the bill is due today.
//
// The candidate due date is built with time.Date, so a dueDay larger
// than the current month's length rolls into the following month
// (day 31 in a 30-day month becomes the 1st); that overflow is kept,
// not clamped to month-end. When today's day-of-month is already past
// dueDay the candidate moves to next month's dueDay instead.
//
// Dates are reduced to civil dates at UTC midnight before subtraction,
// so every day is exactly 24h and the result is never negative for
// any dueDay in [1, 31].
func DaysUntilDue(today time.Time, dueDay int) int {
	t := civilDate(today)

	due := time.Date(t.Year(), t.Month(), dueDay, 0, 0, 0, 0, time.UTC)
	if t.Day() > dueDay {
		due = time.Date(t.Year(), t.Month()+1, dueDay, 0, 0, 0, 0, time.UTC)
	}

	return int(due.Sub(t) / (24 * time.Hour))
}

// BadgeText maps a days-until-due count to its display badge. The
// second return is false for counts of four or more, where callers
// fall back to showing the raw due day.
func BadgeText(days int) (string, bool) {
	switch days {
	case 0:
		return "Due today", true
	case 1:
		return "Due tomorrow", true
	case 2:
		return "Due in 2 days", true
	case 3:
		return "Due in 3 days", true
	}
	return "", false
}

// ReminderMessage is the push notification body for a bill that is due
// in the given number of days.
func ReminderMessage(name string, days int) string {
	switch days {
	case 0:
		return fmt.Sprintf("Your %s bill is due today!", name)
	case 1:
		return fmt.Sprintf("Your %s bill is due tomorrow", name)
	}
	return fmt.Sprintf("Your %s bill is due in %d days", name, days)
}

// SortByDueDate sorts accounts in place by ascending days-until-due as
// of today. Ties keep their original order.
func SortByDueDate(accounts []model.FixedAccount, today time.Time) {
	sort.SliceStable(accounts, func(i, j int) bool {
		return DaysUntilDue(today, accounts[i].DueDay) < DaysUntilDue(today, accounts[j].DueDay)
	})
}

// civilDate drops the time-of-day and timezone, keeping only the
// calendar date at UTC midnight.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
