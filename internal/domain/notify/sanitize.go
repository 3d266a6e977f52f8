package notify

import "strings"

var icsSanitizer = strings.NewReplacer(
	"\n", " ",
	"\r", " ",
	";", "",
	",", " ",
)

// cleanText strips the characters that break ICS property values. Same rules
// the store's existing calendar entries were generated with.
func cleanText(s string) string {
	return icsSanitizer.Replace(strings.TrimSpace(s))
}
