package notify

import (
	"strings"
	"time"

	"patilog/internal/domain/schedule"
)

const (
	icsProdID      = "-//PatiLog//Vaccine Check//TR"
	eventDuration  = 15 * time.Minute
	uidDomain      = "patilog"
	dtstampLayout  = "20060102T150405Z"
	dateTimeLayout = "20060102T150405"
)

// BuildICS renders one reminder as a strict RFC 5545 VCALENDAR.
//
// The UID is the reminder identity, so a calendar client that already holds
// the event from yesterday's run updates it instead of duplicating it.
// METHOD:PUBLISH and TRANSP:TRANSPARENT make it an informational snapshot,
// not a meeting invitation: no organizer, no attendees, no busy time.
// DTSTART is floating local time at the configured reminder hour.
func BuildICS(rem schedule.Reminder, reminderHour int, now time.Time) []byte {
	start := time.Date(rem.DueDate.Year(), rem.DueDate.Month(), rem.DueDate.Day(),
		reminderHour, 0, 0, 0, time.UTC)
	end := start.Add(eventDuration)

	title := cleanText(rem.PetName) + " - " + cleanText(rem.Treatment)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + icsProdID,
		"METHOD:PUBLISH",
		"CALSCALE:GREGORIAN",
		"BEGIN:VEVENT",
		"UID:" + rem.Identity + "@" + uidDomain,
		"DTSTAMP:" + now.UTC().Format(dtstampLayout),
		"DTSTART:" + start.Format(dateTimeLayout),
		"DTEND:" + end.Format(dateTimeLayout),
		"SUMMARY:" + title,
		"DESCRIPTION:Hatırlatma: PatiLog",
		"TRANSP:TRANSPARENT",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}
