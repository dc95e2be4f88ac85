// Package harvest walks a source's listing index and collects job stubs.
package harvest

import (
	"context"
	"errors"
	"log"
	"time"

	"lokerit-engine/internal/domain"
	"lokerit-engine/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

// CardParser reads the candidate cards on one index document. Cards may be
// incomplete; the harvester validates them.
type CardParser interface {
	ParseCards(doc *goquery.Document) []domain.ListingStub
}

// LinkValidator lets a parser replace the default "path carries a numeric
// job identifier" check for boards whose links are slugs.
type LinkValidator interface {
	ValidLink(link string) bool
}

type Options struct {
	Name        string
	PageTimeout time.Duration
	MaxPages    int
}

type Harvester struct {
	pager  Pager
	parser CardParser
	valid  func(string) bool
	opts   Options
}

func New(pager Pager, parser CardParser, opts Options) *Harvester {
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = 30 * time.Second
	}
	if opts.Name == "" {
		opts.Name = "source"
	}
	valid := util.HasNumericID
	if lv, ok := parser.(LinkValidator); ok {
		valid = lv.ValidLink
	}
	return &Harvester{pager: pager, parser: parser, valid: valid, opts: opts}
}

// Harvest returns at most target unique, structurally valid stubs. Fetch
// failures and cancellation end the harvest early with what was collected.
func (h *Harvester) Harvest(ctx context.Context, target int) []domain.ListingStub {
	defer func() {
		if err := h.pager.Close(); err != nil {
			log.Printf("[harvest:%s] close err=%v", h.opts.Name, err)
		}
	}()

	if target <= 0 {
		return []domain.ListingStub{}
	}

	out := make([]domain.ListingStub, 0, target)
	seen := map[string]bool{}

	for page := 1; len(out) < target; page++ {
		if h.opts.MaxPages > 0 && page > h.opts.MaxPages {
			log.Printf("[harvest:%s] page ceiling=%d reached", h.opts.Name, h.opts.MaxPages)
			break
		}
		if err := ctx.Err(); err != nil {
			log.Printf("[harvest:%s] stopped err=%v", h.opts.Name, err)
			break
		}

		pctx, cancel := context.WithTimeout(ctx, h.opts.PageTimeout)
		doc, err := h.pager.Next(pctx)
		cancel()
		if errors.Is(err, ErrExhausted) {
			log.Printf("[harvest:%s] exhausted page=%d", h.opts.Name, page)
			break
		}
		if err != nil {
			log.Printf("[harvest:%s] page=%d err=%v", h.opts.Name, page, err)
			break
		}

		cards := h.parser.ParseCards(doc)
		if len(cards) == 0 {
			log.Printf("[harvest:%s] page=%d has no cards", h.opts.Name, page)
			break
		}

		added := 0
		for _, c := range cards {
			if len(out) >= target {
				break
			}
			if c.Link == "" || !h.valid(c.Link) || seen[c.Link] {
				continue
			}
			seen[c.Link] = true
			out = append(out, c)
			added++
		}
		log.Printf("[harvest:%s] page=%d cards=%d added=%d total=%d", h.opts.Name, page, len(cards), added, len(out))
	}

	return out
}
