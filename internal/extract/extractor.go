// Package extract turns a harvested stub plus its detail page into a
// normalized listing record.
package extract

import (
	"strings"

	"lokerit-engine/internal/category"
	"lokerit-engine/internal/domain"
	"lokerit-engine/internal/normalize"
	"lokerit-engine/internal/skills"
	"lokerit-engine/internal/vocab"

	"github.com/PuerkitoBio/goquery"
)

type Extractor struct {
	locator    Locator
	norm       *normalize.Normalizer
	classifier *category.Classifier
	miner      *skills.Miner
}

// New wires an extractor for one site. A nil locator falls back to Generic and
// nil rules to the built-in vocabulary.
func New(locator Locator, rules *vocab.Rules) *Extractor {
	if locator == nil {
		locator = Generic
	}
	if rules == nil {
		rules = vocab.Default()
	}
	return &Extractor{
		locator:    locator,
		norm:       normalize.New(rules),
		classifier: category.New(rules),
		miner:      skills.New(rules),
	}
}

// Extract never fails: a nil document or a field that cannot be located
// leaves the corresponding default in place.
func (e *Extractor) Extract(stub domain.ListingStub, doc *goquery.Document) domain.ListingRecord {
	rec := domain.NewRecord(stub)
	rec.Category = e.classifier.Classify(rec.Position)
	rec.Province = e.norm.Province(rec.City)

	if doc == nil {
		return rec
	}

	f := e.locator.Locate(doc)

	switch {
	case f.Salary.Valid:
		rec.Salary = f.Salary
	case f.SalaryText != "":
		rec.Salary = normalize.SalaryOf(f.SalaryText)
	}

	if f.Education != "" {
		rec.Education = e.norm.Education(f.Education)
	}
	if t := strings.TrimSpace(f.EmploymentType); t != "" && t != normalize.HiddenSentinel {
		rec.EmploymentType = t
	}

	rec.Skills = e.miner.Mine(joinNonEmpty(f.Description, f.Qualifications))
	return rec
}
