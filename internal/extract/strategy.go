package extract

import (
	"log"
	"strings"

	"lokerit-engine/internal/domain"
	"lokerit-engine/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

// Fields are the raw values a Locator found on a detail page. Empty strings
// mean "not found".
type Fields struct {
	Description    string
	Qualifications string
	SalaryText     string
	Salary         domain.Salary // structured salary embedded in the page, if any
	Education      string
	EmploymentType string
}

// Locator finds detail fields on one site's page layout.
type Locator interface {
	Locate(doc *goquery.Document) Fields
}

const (
	maxLabelLen      = 100
	maxEmploymentLen = 40
	minBlockLen      = 200
)

var (
	SalaryLabels     = []string{"Gaji", "Salary", "IDR", "Rp"}
	EducationLabels  = []string{"Pendidikan", "Education", "Degree"}
	EmploymentLabels = []string{"Tipe Pekerjaan", "Job Type", "Status"}
	QualHeadings     = []string{"Kualifikasi", "Qualification", "Requirement"}
)

// SelectorStrategy is a Locator driven by per-site selector lists, with the
// generic page-wide fallbacks applied to whatever the selectors miss.
type SelectorStrategy struct {
	Name string

	DescriptionSelectors   []string
	QualificationSelectors []string
	QualificationHeadings  []string

	// <dt>/<dd> terms, tried before the label scan
	EducationTerms  []string
	EmploymentTerms []string

	SalaryLabels     []string
	EducationLabels  []string
	EmploymentLabels []string

	// read script#__NEXT_DATA__ for a structured salary
	NextData bool
}

// Generic works on pages with no site-specific knowledge.
var Generic = SelectorStrategy{
	Name:                   "generic",
	DescriptionSelectors:   []string{"[itemprop=description]", "#description", ".job-description", "article"},
	QualificationSelectors: []string{"[itemprop=qualifications]"},
	QualificationHeadings:  QualHeadings,
	EducationTerms:         []string{"pendidikan", "education"},
	EmploymentTerms:        []string{"tipe pekerjaan", "job type"},
	SalaryLabels:           SalaryLabels,
	EducationLabels:        EducationLabels,
	EmploymentLabels:       EmploymentLabels,
	NextData:               true,
}

func (st SelectorStrategy) Locate(doc *goquery.Document) Fields {
	var f Fields
	if doc == nil {
		return f
	}

	guard(st.Name, "description", func() {
		f.Description = firstText(doc, st.DescriptionSelectors)
	})
	guard(st.Name, "qualifications", func() {
		f.Qualifications = firstText(doc, st.QualificationSelectors)
		if f.Qualifications == "" {
			f.Qualifications = ListAfterHeading(doc, st.QualificationHeadings)
		}
	})
	if f.Description == "" && f.Qualifications == "" {
		guard(st.Name, "largest_block", func() {
			f.Description = LargestTextBlock(doc, minBlockLen)
		})
	}

	guard(st.Name, "salary", func() {
		if st.NextData {
			f.Salary = NextDataSalary(doc)
		}
		if !f.Salary.Valid {
			f.SalaryText = labeled(doc, st.SalaryLabels, maxLabelLen, util.HasDigit)
		}
	})
	guard(st.Name, "education", func() {
		f.Education = DefinitionValue(doc, st.EducationTerms)
		if f.Education == "" {
			f.Education = labeled(doc, st.EducationLabels, maxLabelLen, nil)
		}
	})
	guard(st.Name, "employment", func() {
		f.EmploymentType = DefinitionValue(doc, st.EmploymentTerms)
		if f.EmploymentType == "" {
			f.EmploymentType = labeled(doc, st.EmploymentLabels, maxEmploymentLen, nil)
		}
		if len([]rune(f.EmploymentType)) > maxEmploymentLen {
			f.EmploymentType = ""
		}
	})
	return f
}

// labeled tries the DOM-aware scan first, then plain body text.
func labeled(doc *goquery.Document, labels []string, maxLen int, accept func(string) bool) string {
	if len(labels) == 0 {
		return ""
	}
	if v := LabeledValue(doc, labels, maxLen, accept); v != "" {
		return v
	}
	v := util.ExtractLabeledText(doc.Find("body").Text(), labels, maxLen)
	if v != "" && accept != nil && !accept(v) {
		return ""
	}
	return v
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if t := util.CleanText(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

// guard runs one field locator; a panic is logged and leaves that field empty.
func guard(source, field string, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[extract:%s] field=%s panic=%v", source, field, rec)
		}
	}()
	fn()
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}
