// Package normalize turns free-text location, salary and education strings
// into the canonical values stored on a listing.
package normalize

import (
	"strings"

	"lokerit-engine/internal/domain"
	"lokerit-engine/internal/vocab"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Normalizer struct {
	rules *vocab.Rules
}

func New(rules *vocab.Rules) *Normalizer {
	if rules == nil {
		rules = vocab.Default()
	}
	return &Normalizer{rules: rules}
}

// Province maps a raw city string to its province. Unknown or empty input
// yields the configured catch-all.
func (n *Normalizer) Province(city string) string {
	// Casers carry state; one per call keeps this safe for concurrent workers.
	title := cases.Title(language.Indonesian)
	name := strings.TrimSpace(title.String(strings.TrimSpace(city)))
	if name == "" {
		return n.rules.ProvinceFallback
	}

	if p, ok := n.rules.Cities[name]; ok {
		return p
	}
	// "Jakarta Selatan, DKI Jakarta" style values: try each segment.
	if strings.Contains(name, ",") {
		for _, part := range strings.Split(name, ",") {
			if p, ok := n.rules.Cities[strings.TrimSpace(part)]; ok {
				return p
			}
		}
	}

	low := strings.ToLower(name)
	for _, h := range n.rules.Heuristics {
		for _, needle := range h.Needles {
			if strings.Contains(low, strings.ToLower(needle)) {
				return h.Province
			}
		}
	}
	return n.rules.ProvinceFallback
}

// Education buckets a free-text requirement. Empty or unrecognized text is
// reported as not mentioned.
func (n *Normalizer) Education(text string) string {
	up := strings.ToUpper(strings.TrimSpace(text))
	if up == "" || up == strings.ToUpper(HiddenSentinel) {
		return domain.EducationUnknown
	}
	for _, b := range n.rules.Education {
		for _, kw := range b.Any {
			if strings.Contains(up, strings.ToUpper(kw)) {
				return b.Label
			}
		}
	}
	return domain.EducationUnknown
}
