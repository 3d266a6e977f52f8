package schedule

import (
	"errors"
	"strings"
	"time"
)

const (
	// ISODate is how the store writes dates.
	ISODate = "2006-01-02"
	// DisplayDate is the localized format shown to users and accepted on read.
	DisplayDate = "02.01.2006"
)

var ErrUnparseableDate = errors.New("unparseable date")

// ParseDate reads a calendar date as stored in the sheet: ISO first,
// then the localized DD.MM.YYYY form that older rows carry.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnparseableDate
	}
	if t, err := time.Parse(ISODate, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(DisplayDate, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrUnparseableDate
}

// DaysBetween returns to - from in whole calendar days, ignoring time-of-day.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
