package category

import (
	"strings"

	"lokerit-engine/internal/domain"
	"lokerit-engine/internal/vocab"
)

// Classifier assigns a position title to the first keyword group it matches.
type Classifier struct {
	groups []vocab.CategoryGroup
}

func New(rules *vocab.Rules) *Classifier {
	if rules == nil {
		rules = vocab.Default()
	}
	groups := make([]vocab.CategoryGroup, 0, len(rules.Categories))
	for _, g := range rules.Categories {
		kws := make([]string, 0, len(g.Keywords))
		for _, k := range g.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				kws = append(kws, k)
			}
		}
		groups = append(groups, vocab.CategoryGroup{Category: g.Category, Keywords: kws})
	}
	return &Classifier{groups: groups}
}

// Classify matches keywords as substrings of the lowercased title, so short
// keywords such as "ai" also fire inside longer words.
func (c *Classifier) Classify(title string) domain.Category {
	t := strings.ToLower(title)
	if strings.TrimSpace(t) == "" {
		return domain.CategoryOther
	}
	for _, g := range c.groups {
		for _, k := range g.Keywords {
			if strings.Contains(t, k) {
				return g.Category
			}
		}
	}
	return domain.CategoryOther
}
