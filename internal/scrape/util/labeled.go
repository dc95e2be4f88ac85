package util

import (
	"regexp"
	"strings"
)

// ExtractLabeledText returns the value following the first of labels found in
// s ("Gaji: Rp 5 - 6 Juta" -> "Rp 5 - 6 Juta"). Labels are matched
// case-insensitively and values longer than maxLen are rejected as noise.
func ExtractLabeledText(s string, labels []string, maxLen int) string {
	for _, lab := range labels {
		if lab == "" {
			continue
		}
		// (?i) matches on the original bytes, so offsets stay valid even
		// where lowercasing would change the string's length
		loc := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(lab)).FindStringIndex(s)
		if loc == nil {
			continue
		}
		rest := s[loc[1]:]
		rest = strings.TrimLeft(rest, " :\t\n\r-")

		// stop at newline-ish boundaries if present
		for _, cut := range []string{"\n", "\r", " | ", " · "} {
			if j := strings.Index(rest, cut); j >= 0 {
				rest = rest[:j]
			}
		}

		rest = CleanText(rest)
		if rest != "" && len([]rune(rest)) <= maxLen {
			return rest
		}
	}
	return ""
}
