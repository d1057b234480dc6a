package util

import (
	"regexp"
	"strings"
)

var nonPhone = regexp.MustCompile(`[^\d\+]+`)

// NormalizePhone tries to normalize user input into E.164-like format.
// Local Kenyan forms (07xx..., 7xx...) are mapped onto +254.
func NormalizePhone(raw string) string {
	s := strings.TrimSpace(raw)
	s = nonPhone.ReplaceAllString(s, "")

	if strings.HasPrefix(s, "00") {
		s = "+" + s[2:]
	} else if strings.HasPrefix(s, "0") && len(s) == 10 {
		s = "+254" + s[1:]
	} else if (strings.HasPrefix(s, "7") || strings.HasPrefix(s, "1")) && len(s) == 9 {
		s = "+254" + s
	} else if strings.HasPrefix(s, "254") {
		s = "+" + s
	}

	return s
}
