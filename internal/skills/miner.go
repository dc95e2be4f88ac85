// Package skills finds vocabulary skills mentioned in free text.
package skills

import (
	"log"
	"regexp"
	"sort"
	"strings"

	"lokerit-engine/internal/vocab"
)

type matcher struct {
	skill string
	re    *regexp.Regexp
}

// Miner is safe for concurrent use; all patterns are compiled up front.
type Miner struct {
	matchers []matcher
}

func New(rules *vocab.Rules) *Miner {
	if rules == nil {
		rules = vocab.Default()
	}

	special := make(map[string]bool, len(rules.Special))
	var ms []matcher
	for _, sp := range rules.Special {
		skill := strings.ToLower(strings.TrimSpace(sp.Skill))
		re, err := regexp.Compile(sp.Pattern)
		if err != nil {
			log.Printf("[skills] skip special=%q err=%v", skill, err)
			continue
		}
		special[skill] = true
		ms = append(ms, matcher{skill: skill, re: re})
	}

	for _, s := range rules.Skills {
		// Two-letter entries are too ambiguous to match as words.
		if len(s) <= 2 || special[s] {
			continue
		}
		ms = append(ms, matcher{skill: s, re: wordPattern(s)})
	}

	return &Miner{matchers: ms}
}

// wordPattern behaves like \b...\b for ordinary words but also accepts
// entries that begin or end with punctuation ("comptia network+").
func wordPattern(skill string) *regexp.Regexp {
	return regexp.MustCompile(`(^|[^a-z0-9_])` + regexp.QuoteMeta(skill) + `($|[^a-z0-9_])`)
}

// Mine returns the sorted, de-duplicated skills present in text.
func (m *Miner) Mine(text string) []string {
	low := strings.ToLower(text)
	if strings.TrimSpace(low) == "" {
		return []string{}
	}

	found := map[string]bool{}
	for _, mt := range m.matchers {
		if found[mt.skill] {
			continue
		}
		if mt.re.MatchString(low) {
			found[mt.skill] = true
		}
	}

	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
