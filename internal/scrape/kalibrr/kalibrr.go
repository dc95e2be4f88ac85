package kalibrr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lokerit-engine/internal/domain"
	"lokerit-engine/internal/extract"
	"lokerit-engine/internal/harvest"
	"lokerit-engine/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

const (
	Name           = "kalibrr"
	DefaultBaseURL = "https://www.kalibrr.id"
	// LocationUnknown is what a card without a location shows.
	LocationUnknown = "Lokasi Lain"

	cardSelector = "div.k-bg-white.k-border-solid.k-rounded-lg"
)

type Config struct {
	BaseURL     string
	Interactive bool // use the browser "Load more" surface
	MaxPages    int
	PageTimeout time.Duration
}

type Source struct {
	cfg     Config
	fetcher harvest.DocumentFetcher
	launch  func() (harvest.Browser, error)
}

// New builds the Kalibrr source. launch is only called in interactive mode.
func New(cfg Config, f harvest.DocumentFetcher, launch func() (harvest.Browser, error)) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Source{cfg: cfg, fetcher: f, launch: launch}
}

func (s *Source) Name() string { return Name }

// IndexURL is the board page for query; searches have a single result page.
func (s *Source) IndexURL(query string, page int) string {
	q := strings.Join(strings.Fields(query), "-")
	if q != "" {
		return fmt.Sprintf("%s/id-ID/home/i/it-and-software/te/%s", s.cfg.BaseURL, q)
	}
	return fmt.Sprintf("%s/job-board/te/it/%d", s.cfg.BaseURL, page)
}

func (s *Source) Pager(ctx context.Context, query string, target int) (harvest.Pager, harvest.Options, error) {
	opts := harvest.Options{Name: Name, PageTimeout: s.cfg.PageTimeout, MaxPages: s.cfg.MaxPages}

	if s.cfg.Interactive {
		if s.launch == nil {
			return nil, opts, fmt.Errorf("kalibrr: interactive mode needs a browser")
		}
		b, err := s.launch()
		if err != nil {
			return nil, opts, fmt.Errorf("kalibrr: %w", err)
		}
		return harvest.NewLoadMorePager(b, s.IndexURL(query, 1), CountCards), opts, nil
	}

	maxPages := s.cfg.MaxPages
	if strings.TrimSpace(query) != "" {
		maxPages = 1
	}
	return harvest.NewNumberedPager(s.fetcher, func(p int) string { return s.IndexURL(query, p) }, maxPages), opts, nil
}

func CountCards(doc *goquery.Document) int {
	return doc.Find(cardSelector).Length()
}

func (s *Source) ParseCards(doc *goquery.Document) []domain.ListingStub {
	var out []domain.ListingStub
	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		title := card.Find("a[itemprop=name]").First()
		href, ok := title.Attr("href")
		if !ok || !strings.Contains(href, "/jobs/") {
			return
		}
		link := util.Absolute(s.cfg.BaseURL+"/", href)
		if link == "" {
			return
		}

		company := util.CleanText(card.Find("a.k-text-subdued.k-font-bold").First().Text())
		if company == "" {
			company = domain.CompanyUnknown
		}
		loc := util.CleanText(card.Find("span.k-text-gray-500.k-block.k-pointer-events-none").First().Text())
		if loc == "" {
			loc = LocationUnknown
		}

		out = append(out, domain.ListingStub{
			Link:        link,
			Title:       util.CleanText(title.Text()),
			Company:     company,
			RawLocation: loc,
			Source:      Name,
		})
	})
	return out
}

func (s *Source) Locator() extract.Locator {
	return extract.SelectorStrategy{
		Name:                   Name,
		DescriptionSelectors:   []string{"div[itemprop=description]"},
		QualificationSelectors: []string{"div[itemprop=qualifications]"},
		QualificationHeadings:  extract.QualHeadings,
		EducationTerms:         []string{"pendidikan", "education"},
		EmploymentTerms:        []string{"tipe pekerjaan", "jenis pekerjaan", "job type", "employment type"},
		SalaryLabels:           extract.SalaryLabels,
		EducationLabels:        extract.EducationLabels,
		EmploymentLabels:       extract.EmploymentLabels,
		NextData:               true,
	}
}
