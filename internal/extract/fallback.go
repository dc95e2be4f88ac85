package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"lokerit-engine/internal/domain"
	"lokerit-engine/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

var skipTags = map[string]bool{"script": true, "style": true, "head": true, "title": true, "noscript": true}

// LargestTextBlock returns the text of the class-less div with the most text,
// provided it exceeds minLen characters.
func LargestTextBlock(doc *goquery.Document, minLen int) string {
	best := ""
	doc.Find("div:not([class])").Each(func(_ int, s *goquery.Selection) {
		t := util.CleanText(s.Text())
		if len(t) > minLen && len(t) > len(best) {
			best = t
		}
	})
	return best
}

// ownText concatenates the direct text children of s.
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
			b.WriteByte(' ')
		}
	})
	return util.CleanText(b.String())
}

// LabeledValue scans for the first element whose own text mentions a label
// and reads the value from the surrounding container: "Gaji" inside
// <div><span>Gaji</span><span>Rp 5 - 6 Juta</span></div> yields "Rp 5 - 6 Juta".
// Labels are tried in order; accept filters out unusable candidates.
func LabeledValue(doc *goquery.Document, labels []string, maxLen int, accept func(string) bool) string {
	for _, lab := range labels {
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(lab))
		if err != nil {
			continue
		}

		val := ""
		doc.Find("body *").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if skipTags[goquery.NodeName(s)] {
				return true
			}
			if !re.MatchString(ownText(s)) {
				return true
			}

			full := util.CleanText(s.Parent().Text())
			locs := re.FindAllStringIndex(full, -1)
			if len(locs) == 0 {
				return true
			}
			v := strings.TrimSpace(strings.Trim(full[locs[len(locs)-1][1]:], ": "))
			if v == "" || len([]rune(v)) > maxLen {
				return true
			}
			if accept != nil && !accept(v) {
				return true
			}
			val = v
			return false
		})
		if val != "" {
			return val
		}
	}
	return ""
}

// DefinitionValue reads the <dd> that follows a <dt> mentioning one of terms.
func DefinitionValue(doc *goquery.Document, terms []string) string {
	val := ""
	doc.Find("dt").EachWithBreak(func(_ int, dt *goquery.Selection) bool {
		label := strings.ToLower(dt.Text())
		for _, term := range terms {
			if !strings.Contains(label, strings.ToLower(term)) {
				continue
			}
			dd := dt.NextAllFiltered("dd").First()
			if dd.Length() == 0 {
				dd = dt.Parent().NextAll().Find("dd").First()
			}
			if v := util.CleanText(dd.Text()); v != "" {
				val = v
				return false
			}
		}
		return true
	})
	return val
}

// ListAfterHeading finds a heading such as "Kualifikasi" and joins the items
// of the first list that follows it with " | ".
func ListAfterHeading(doc *goquery.Document, headings []string) string {
	if len(headings) == 0 {
		return ""
	}
	quoted := make([]string, len(headings))
	for i, h := range headings {
		quoted[i] = regexp.QuoteMeta(h)
	}
	re := regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))

	out := ""
	doc.Find("body *").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if skipTags[goquery.NodeName(s)] || !re.MatchString(ownText(s)) {
			return true
		}
		list := listFollowing(s)
		if list == nil {
			// <p><strong>Kualifikasi</strong></p><ul>...
			list = listFollowing(s.Parent())
		}
		if list == nil {
			return true
		}

		var items []string
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			t := util.CleanText(li.Text())
			if t == "" || strings.Contains(t, "Beranda") || strings.Contains(t, "Loker") {
				return
			}
			items = append(items, t)
		})
		if len(items) == 0 {
			return true
		}
		out = strings.Join(items, " | ")
		return false
	})
	return out
}

func listFollowing(s *goquery.Selection) *goquery.Selection {
	next := s.Next()
	for next.Length() > 0 && util.CleanText(next.Text()) == "" {
		next = next.Next()
	}
	if next.Length() == 0 {
		return nil
	}
	switch goquery.NodeName(next) {
	case "ul", "ol":
		return next
	case "div", "section":
		if l := next.Find("ul, ol").First(); l.Length() > 0 {
			return l
		}
	}
	return nil
}

type nextData struct {
	Props struct {
		PageProps struct {
			Job struct {
				MinimumSalary *float64 `json:"minimum_salary"`
				MaximumSalary *float64 `json:"maximum_salary"`
			} `json:"job"`
		} `json:"pageProps"`
	} `json:"props"`
}

// NextDataSalary reads the salary range embedded in a Next.js page payload
// and averages the bounds that are present.
func NextDataSalary(doc *goquery.Document) domain.Salary {
	raw := strings.TrimSpace(doc.Find("script#__NEXT_DATA__").First().Text())
	if raw == "" {
		return domain.NoSalary()
	}
	var nd nextData
	if err := json.Unmarshal([]byte(raw), &nd); err != nil {
		return domain.NoSalary()
	}

	job := nd.Props.PageProps.Job
	var sum float64
	n := 0
	for _, v := range []*float64{job.MinimumSalary, job.MaximumSalary} {
		if v != nil && *v > 0 {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return domain.NoSalary()
	}
	return domain.SalaryOf(int64(sum/float64(n) + 0.5))
}
