package notify

import (
	"net/url"
	"time"
)

const gcalBase = "https://www.google.com/calendar/render?action=TEMPLATE"

// GCalLink builds a clickable add-to-Google-Calendar link for an all-day
// event on the due date. Pure URL construction, no API call; it is the
// fallback path when a mail client refuses to render the ICS attachment.
func GCalLink(title string, due time.Time) string {
	params := url.Values{}
	params.Set("text", title)
	params.Set("dates", due.Format("20060102")+"/"+due.AddDate(0, 0, 1).Format("20060102"))
	params.Set("details", "Hatırlatma: PatiLog")
	params.Set("sf", "true")
	params.Set("output", "xml")
	return gcalBase + "&" + params.Encode()
}
