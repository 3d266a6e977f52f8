package records

import (
	"time"

	"patilog/internal/domain/schedule"
)

// TreatmentRecord is one row of the backing store. Dates stay as the raw cell
// strings; parse where they are consumed, because a row with a broken date is
// still a row the owner wants to see in the overview.
type TreatmentRecord struct {
	PetName   string
	Treatment string
	Applied   string  // ISO date written by the entry form
	NextDue   string  // ISO, DD.MM.YYYY, or empty for one-off check-ups
	WeightKg  float64 // 0 = not recorded; one decimal, kg
}

// AppliedDate parses the applied-date cell.
func (r TreatmentRecord) AppliedDate() (time.Time, error) {
	return schedule.ParseDate(r.Applied)
}

// NextDueDate parses the next-due cell.
func (r TreatmentRecord) NextDueDate() (time.Time, error) {
	return schedule.ParseDate(r.NextDue)
}

// Entry projects the row for reminder selection.
func (r TreatmentRecord) Entry() schedule.Entry {
	return schedule.Entry{
		PetName:   r.PetName,
		Treatment: r.Treatment,
		NextDue:   r.NextDue,
	}
}

// Entries projects a full record set, keeping row order.
func Entries(recs []TreatmentRecord) []schedule.Entry {
	out := make([]schedule.Entry, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Entry())
	}
	return out
}

// TreatmentCatalogue is what the entry form offers in the selector.
// Free text is accepted too; these are just the common choices.
var TreatmentCatalogue = []string{
	"Karma (DHPP)",
	"Kuduz",
	"Bronşin",
	"Lösemi",
	"İç Parazit",
	"Dış Parazit",
	"Lyme",
	"Muayene/Kontrol",
}
