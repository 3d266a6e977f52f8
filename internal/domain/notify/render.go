package notify

import (
	"fmt"
	"html"
	"time"

	"patilog/internal/domain/schedule"
	"patilog/internal/ports/mail"
)

// Urgency marks how soon a reminder is due.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyNormal Urgency = "normal"

	// a due date within this many days is high urgency
	highUrgencyDays = 3
)

func urgencyOf(rem schedule.Reminder) Urgency {
	if rem.DaysLeft <= highUrgencyDays {
		return UrgencyHigh
	}
	return UrgencyNormal
}

func daysLeftLabel(days int) string {
	if days == 0 {
		return "bugün"
	}
	return fmt.Sprintf("%d gün kaldı", days)
}

// Render turns one reminder into one outbound message: Turkish HTML body with
// the add-to-calendar link, plus the ICS attachment. One message per event;
// the old single-digest shape was dropped.
func Render(rem schedule.Reminder, to []string, reminderHour int, now time.Time) mail.Message {
	title := rem.PetName + " - " + rem.Treatment
	due := rem.DueDate.Format(schedule.DisplayDate)
	urgency := urgencyOf(rem)

	marker := ""
	if urgency == UrgencyHigh {
		marker = " ⚠️"
	}

	body := fmt.Sprintf(`<h3>🐾 PatiLog Aşı Hatırlatması</h3>
<p><b>%s</b> — %s%s</p>
<p>Sonraki tarih: <b>%s</b> (%s)</p>
<p>Öncelik: %s</p>
<p><a href="%s">📅 Google Takvim'e ekle</a></p>`,
		html.EscapeString(rem.PetName),
		html.EscapeString(rem.Treatment),
		marker,
		due,
		daysLeftLabel(rem.DaysLeft),
		urgency,
		GCalLink(title, rem.DueDate),
	)

	return mail.Message{
		Subject:     fmt.Sprintf("🐾 PatiLog Hatırlatma: %s (%s)", title, due),
		To:          to,
		HTMLBody:    body,
		ICS:         BuildICS(rem, reminderHour, now),
		ICSFilename: "patilog-reminder.ics",
	}
}
