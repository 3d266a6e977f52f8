package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Namespace for reminder identities. Changing it invalidates every UID
// already sitting in subscribers' calendars, so don't.
var reminderNamespace = uuid.MustParse("5a1cb0aa-97d3-4e6f-8f21-0c44b6ac1d7e")

// Identity derives the stable key for a reminder from the fields that define
// it. Repeated runs over the same row must yield the same value so calendar
// clients update the existing event instead of duplicating it.
//
// Known limitation: editing a pet name or treatment label after creation
// changes the identity, and the old calendar entry is orphaned. Accepted.
func Identity(petName, treatment string, due time.Time) string {
	seed := petName + "|" + treatment + "|" + due.Format(ISODate)
	return uuid.NewSHA1(reminderNamespace, []byte(seed)).String()
}
