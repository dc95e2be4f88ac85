// Package vocab holds the read-only lookup tables the normalizers, the category
// classifier and the skill miner are built from.
package vocab

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"lokerit-engine/internal/domain"

	"gopkg.in/yaml.v3"
)

type SkillPattern struct {
	Skill   string `yaml:"skill"`
	Pattern string `yaml:"pattern"`
}

type CategoryGroup struct {
	Category domain.Category `yaml:"category"`
	Keywords []string        `yaml:"keywords"`
}

type ProvinceGroup struct {
	Province string   `yaml:"province"`
	Needles  []string `yaml:"needles"`
}

type EducationBucket struct {
	Label string   `yaml:"label"`
	Any   []string `yaml:"any"`
}

// Rules is shared by every worker of a run and must not be mutated once built.
type Rules struct {
	Skills           []string          `yaml:"skills"`
	Special          []SkillPattern    `yaml:"special"`
	Categories       []CategoryGroup   `yaml:"categories"`
	Cities           map[string]string `yaml:"cities"`
	Heuristics       []ProvinceGroup   `yaml:"heuristics"`
	ProvinceFallback string            `yaml:"province_fallback"`
	Education        []EducationBucket `yaml:"education"`
}

var defaultRules = sync.OnceValue(func() *Rules {
	r := &Rules{
		Skills:           lowerAll(defaultSkills),
		Special:          append([]SkillPattern(nil), defaultSpecial...),
		Categories:       append([]CategoryGroup(nil), defaultCategories...),
		Cities:           make(map[string]string, len(defaultCities)),
		Heuristics:       append([]ProvinceGroup(nil), defaultHeuristics...),
		ProvinceFallback: domain.ProvinceOther,
		Education:        append([]EducationBucket(nil), defaultEducation...),
	}
	for k, v := range defaultCities {
		r.Cities[k] = v
	}
	return r
})

// Default returns the built-in tables, loaded once per process.
func Default() *Rules { return defaultRules() }

// Load reads a YAML override file. Any table present in the file replaces the
// built-in one as a whole; absent tables keep their defaults.
func Load(path string) (*Rules, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}

	var over Rules
	if err := yaml.Unmarshal(b, &over); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}

	base := Default()
	out := *base
	if len(over.Skills) > 0 {
		out.Skills = lowerAll(over.Skills)
	}
	if len(over.Special) > 0 {
		out.Special = over.Special
	}
	if len(over.Categories) > 0 {
		out.Categories = over.Categories
	}
	if len(over.Cities) > 0 {
		out.Cities = over.Cities
	}
	if len(over.Heuristics) > 0 {
		out.Heuristics = over.Heuristics
	}
	if strings.TrimSpace(over.ProvinceFallback) != "" {
		out.ProvinceFallback = over.ProvinceFallback
	}
	if len(over.Education) > 0 {
		out.Education = over.Education
	}

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("rules %s: %w", path, err)
	}
	return &out, nil
}

// LoadOrDefault returns Default for an empty path.
func LoadOrDefault(path string) (*Rules, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return Load(path)
}

func (r *Rules) Validate() error {
	var errs []error

	if len(r.Skills) == 0 && len(r.Special) == 0 {
		errs = append(errs, errors.New("skill vocabulary is empty"))
	}
	for i, sp := range r.Special {
		if strings.TrimSpace(sp.Skill) == "" {
			errs = append(errs, fmt.Errorf("special[%d].skill is required", i))
		}
		if _, err := regexp.Compile(sp.Pattern); err != nil {
			errs = append(errs, fmt.Errorf("special[%d] (%s): %w", i, sp.Skill, err))
		}
	}
	for i, g := range r.Categories {
		if !g.Category.Valid() || g.Category == domain.CategoryOther {
			errs = append(errs, fmt.Errorf("categories[%d]: unknown category %q", i, g.Category))
		}
		if len(g.Keywords) == 0 {
			errs = append(errs, fmt.Errorf("categories[%d].keywords must have at least 1 term", i))
		}
	}
	for i, h := range r.Heuristics {
		if h.Province == "" || len(h.Needles) == 0 {
			errs = append(errs, fmt.Errorf("heuristics[%d] needs a province and needles", i))
		}
	}
	for i, e := range r.Education {
		if e.Label == "" || len(e.Any) == 0 {
			errs = append(errs, fmt.Errorf("education[%d] needs a label and keywords", i))
		}
	}
	if strings.TrimSpace(r.ProvinceFallback) == "" {
		errs = append(errs, errors.New("province_fallback is required"))
	}
	return errors.Join(errs...)
}

// Vocabulary lists every skill the miner can ever report.
func (r *Rules) Vocabulary() map[string]bool {
	out := make(map[string]bool, len(r.Skills)+len(r.Special))
	for _, s := range r.Skills {
		out[s] = true
	}
	for _, sp := range r.Special {
		out[strings.ToLower(sp.Skill)] = true
	}
	return out
}

func lowerAll(xs []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		x = strings.ToLower(strings.TrimSpace(x))
		if x == "" || seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}
	return out
}
