package schedule

import "time"

// DefaultLookaheadDays is how far ahead of today a due date triggers a
// reminder.
const DefaultLookaheadDays = 7

// Entry is the slice of a store row the selector cares about. NextDue is the
// raw cell value; rows written by the entry form are ISO, older hand-edited
// rows may be DD.MM.YYYY or garbage.
type Entry struct {
	PetName   string
	Treatment string
	NextDue   string
}

// Reminder is derived fresh on every run and never persisted.
type Reminder struct {
	PetName   string
	Treatment string
	DueDate   time.Time
	DaysLeft  int // 0 = due today; never negative in a selection
	Identity  string
}

// Skipped reports a row that was left out of a selection, for logging.
type Skipped struct {
	Row    int
	Reason string
}

// SelectDue picks the entries whose due date falls inside
// [today, today+lookaheadDays], both ends inclusive: due today counts, due
// exactly at the window edge counts, overdue does not. Entries with a
// missing or unparseable due date are skipped, never fatal. Output keeps the
// store's row order and keeps duplicates; identity downstream makes repeated
// rows idempotent in calendars, which is all we need.
func SelectDue(entries []Entry, today time.Time, lookaheadDays int) ([]Reminder, []Skipped) {
	if lookaheadDays < 0 {
		lookaheadDays = DefaultLookaheadDays
	}

	out := make([]Reminder, 0)
	var skipped []Skipped

	for i, e := range entries {
		due, err := ParseDate(e.NextDue)
		if err != nil {
			skipped = append(skipped, Skipped{Row: i, Reason: "unparseable next due date"})
			continue
		}

		daysLeft := DaysBetween(today, due)
		if daysLeft < 0 || daysLeft > lookaheadDays {
			continue
		}

		out = append(out, Reminder{
			PetName:   e.PetName,
			Treatment: e.Treatment,
			DueDate:   due,
			DaysLeft:  daysLeft,
			Identity:  Identity(e.PetName, e.Treatment, due),
		})
	}

	return out, skipped
}
