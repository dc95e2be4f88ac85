package domain

import "strings"

// Sentinels used when a field could not be determined.
const (
	CompanyUnknown    = "N/A"
	TitleUnknown      = "Tanpa Judul"
	ProvinceOther     = "Lainnya"
	EducationUnknown  = "Tidak Disebutkan"
	EmploymentDefault = "Full Time"
)

// ListingStub is the summary harvested from an index card, before the detail page is visited.
type ListingStub struct {
	Link        string
	Title       string
	Company     string
	RawLocation string
	Source      string // kalibrr/lokerid/etc.
}

// ListingRecord is one normalized posting. Every field carries a defined default.
type ListingRecord struct {
	Company        string   `json:"company"`
	Position       string   `json:"position"`
	Category       Category `json:"category"`
	City           string   `json:"city"`
	Province       string   `json:"province"`
	Salary         Salary   `json:"salary"`
	Skills         []string `json:"skills"`
	Education      string   `json:"education"`
	EmploymentType string   `json:"employment_type"`
	SourceLink     string   `json:"source_link"`
	Source         string   `json:"source"`
}

// NewRecord builds the fully defaulted record for a stub. Detail extraction only
// ever overwrites fields of this value.
func NewRecord(stub ListingStub) ListingRecord {
	company := strings.TrimSpace(stub.Company)
	if company == "" {
		company = CompanyUnknown
	}
	title := strings.TrimSpace(stub.Title)
	if title == "" {
		title = TitleUnknown
	}
	return ListingRecord{
		Company:        company,
		Position:       title,
		Category:       CategoryOther,
		City:           strings.TrimSpace(stub.RawLocation),
		Province:       ProvinceOther,
		Salary:         NoSalary(),
		Skills:         []string{},
		Education:      EducationUnknown,
		EmploymentType: EmploymentDefault,
		SourceLink:     stub.Link,
		Source:         stub.Source,
	}
}
