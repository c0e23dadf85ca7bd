package assignment

import (
	"math"
	"time"

	"github.com/trezcool/kazi/core"
)

// DaysLeft returns ceil((due - today) in days).
// Both times are compared by wall clock so DST transitions do not shift the count.
func DaysLeft(due, today time.Time) int {
	diff := wallClock(due).Sub(wallClock(today))
	return int(math.Ceil(diff.Hours() / 24))
}

// Classify buckets a days-left value: <2 urgent, 2-5 warning, >5 normal.
func Classify(days int) Status {
	switch {
	case days < 2:
		return StatusUrgent
	case days <= 5:
		return StatusWarning
	default:
		return StatusNormal
	}
}

// DueStatus is the derived due-date state of an Assignment.
type DueStatus struct {
	DaysLeft int
	Status   Status
}

// DueStatus derives days-left and status against today (local midnight).
func (a Assignment) DueStatus(today time.Time) DueStatus {
	due, err := core.ParseDate(a.DueDate, today.Location())
	if err != nil {
		return DueStatus{Status: StatusUnknown}
	}
	days := DaysLeft(due, today)
	return DueStatus{DaysLeft: days, Status: Classify(days)}
}

func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, m, d, h, mi, s, t.Nanosecond(), time.UTC)
}
