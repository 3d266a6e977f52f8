package schedule

import (
	"errors"
	"time"
)

var ErrInvalidInterval = errors.New("invalid interval")

// IntervalPolicy decides how the next due date is derived from the applied
// date: a month count (automatic) or an explicitly chosen date (manual).
type IntervalPolicy struct {
	Months int
	Manual time.Time // used when Months == 0
}

func MonthsPolicy(months int) IntervalPolicy {
	return IntervalPolicy{Months: months}
}

func ManualPolicy(due time.Time) IntervalPolicy {
	return IntervalPolicy{Manual: due}
}

// NextDueDate computes when the next application is due.
//
// Month-based intervals are months*30 days, uniformly. This is intentionally
// NOT calendar-month arithmetic: every row ever written used the 30-day
// approximation, and recomputing with real months would shift existing dates.
func NextDueDate(applied time.Time, p IntervalPolicy) (time.Time, error) {
	if applied.IsZero() {
		return time.Time{}, ErrInvalidInterval
	}
	if p.Months != 0 {
		if p.Months < 1 || p.Months > 12 {
			return time.Time{}, ErrInvalidInterval
		}
		return applied.AddDate(0, 0, p.Months*30), nil
	}
	if p.Manual.IsZero() {
		return time.Time{}, ErrInvalidInterval
	}
	// manual >= applied is checked at the entry form boundary, not here
	return p.Manual, nil
}
