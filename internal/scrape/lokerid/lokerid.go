package lokerid

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"lokerit-engine/internal/domain"
	"lokerit-engine/internal/extract"
	"lokerit-engine/internal/harvest"
	"lokerit-engine/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

const (
	Name           = "lokerid"
	DefaultBaseURL = "https://www.loker.id"
	// PerPage is how many cards one index page usually carries.
	PerPage         = 15
	LocationUnknown = "Indonesia"
	category        = "information-technology"
)

type Config struct {
	BaseURL     string
	MaxPages    int
	PageTimeout time.Duration
}

type Source struct {
	cfg     Config
	fetcher harvest.DocumentFetcher
}

func New(cfg Config, f harvest.DocumentFetcher) *Source {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Source{cfg: cfg, fetcher: f}
}

func (s *Source) Name() string { return Name }

func (s *Source) IndexURL(query string, page int) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Sprintf("%s/lowongan-kerja/%s/page/%d", s.cfg.BaseURL, category, page)
	}
	v := url.Values{}
	v.Set("q", query)
	v.Set("category", category)
	return fmt.Sprintf("%s/cari-lowongan-kerja/page/%d?%s", s.cfg.BaseURL, page, v.Encode())
}

// PagesFor estimates how many index pages cover target cards.
func PagesFor(target int) int {
	return max(1, (target+PerPage-1)/PerPage)
}

func (s *Source) Pager(ctx context.Context, query string, target int) (harvest.Pager, harvest.Options, error) {
	pages := PagesFor(target)
	if s.cfg.MaxPages > 0 && pages > s.cfg.MaxPages {
		pages = s.cfg.MaxPages
	}
	opts := harvest.Options{Name: Name, PageTimeout: s.cfg.PageTimeout, MaxPages: pages}
	return harvest.NewNumberedPager(s.fetcher, func(p int) string { return s.IndexURL(query, p) }, pages), opts, nil
}

func (s *Source) ParseCards(doc *goquery.Document) []domain.ListingStub {
	var out []domain.ListingStub
	doc.Find("article.card").Each(func(_ int, card *goquery.Selection) {
		href, ok := card.Find("a[href]").First().Attr("href")
		if !ok {
			return
		}
		link := util.Absolute(s.cfg.BaseURL+"/", href)
		if link == "" {
			return
		}

		title := util.CleanText(card.Find("h3").First().Text())
		if title == "" {
			title = domain.TitleUnknown
		}
		company := util.CleanText(card.Find("span.text-secondary-500").First().Text())
		if company == "" {
			company = domain.CompanyUnknown
		}
		loc := util.CleanText(card.Find("span[translate=no]").First().Text())
		if loc == "" {
			loc = LocationUnknown
		}

		out = append(out, domain.ListingStub{
			Link:        link,
			Title:       title,
			Company:     company,
			RawLocation: loc,
			Source:      Name,
		})
	})
	return out
}

// ValidLink accepts detail pages on the board's host. Loker.id links are
// slugs, so the numeric-id rule does not apply; index and category pages
// are rejected.
func (s *Source) ValidLink(link string) bool {
	u, err := url.Parse(link)
	if err != nil || util.Host(link) != util.Host(s.cfg.BaseURL) {
		return false
	}
	path := strings.Trim(u.Path, "/")
	if path == "" || strings.Contains(path, "/page/") || path == "lowongan-kerja/"+category {
		return false
	}
	return strings.Count(path, "/") >= 1 || util.HasDigit(path)
}

func (s *Source) Locator() extract.Locator {
	return extract.SelectorStrategy{
		Name:                  Name,
		DescriptionSelectors:  []string{"div#description"},
		QualificationHeadings: extract.QualHeadings,
		SalaryLabels:          extract.SalaryLabels,
		EducationLabels:       extract.EducationLabels,
		EmploymentLabels:      extract.EmploymentLabels,
	}
}
