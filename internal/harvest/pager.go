package harvest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrExhausted is the normal end of a source: no further pages exist.
var ErrExhausted = errors.New("source exhausted")

// Pager yields successive index documents of one source.
type Pager interface {
	Next(ctx context.Context) (*goquery.Document, error)
	Close() error
}

// DocumentFetcher is satisfied by *fetch.Client.
type DocumentFetcher interface {
	Document(ctx context.Context, url string) (*goquery.Document, error)
}

// NumberedPager walks statically numbered pages: page 1, 2, 3...
type NumberedPager struct {
	fetcher DocumentFetcher
	urlFor  func(page int) string
	max     int
	page    int
}

func NewNumberedPager(f DocumentFetcher, urlFor func(page int) string, maxPages int) *NumberedPager {
	return &NumberedPager{fetcher: f, urlFor: urlFor, max: maxPages}
}

func (p *NumberedPager) Next(ctx context.Context) (*goquery.Document, error) {
	if p.max > 0 && p.page >= p.max {
		return nil, ErrExhausted
	}
	p.page++
	return p.fetcher.Document(ctx, p.urlFor(p.page))
}

func (p *NumberedPager) Close() error { return nil }

// Browser is the slice of page automation the load-more surface needs.
type Browser interface {
	Goto(ctx context.Context, url string) error
	Content(ctx context.Context) (string, error)
	// ClickLoadMore reports false when the page shows no "load more" control.
	ClickLoadMore(ctx context.Context) (bool, error)
	ScrollToBottom(ctx context.Context) error
	Close() error
}

// LoadMorePager drives an interactive listing that grows in place. Each call
// returns the whole page; the caller's seen-set filters repeats. The source
// is exhausted when neither clicking nor scrolling adds cards.
type LoadMorePager struct {
	browser   Browser
	url       string
	countFunc func(*goquery.Document) int

	opened bool
	last   int
}

func NewLoadMorePager(b Browser, url string, countCards func(*goquery.Document) int) *LoadMorePager {
	return &LoadMorePager{browser: b, url: url, countFunc: countCards}
}

func (p *LoadMorePager) Next(ctx context.Context) (*goquery.Document, error) {
	if !p.opened {
		if err := p.browser.Goto(ctx, p.url); err != nil {
			return nil, fmt.Errorf("open %s: %w", p.url, err)
		}
		p.opened = true
		doc, err := p.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		p.last = p.countFunc(doc)
		return doc, nil
	}

	clicked, err := p.browser.ClickLoadMore(ctx)
	if err != nil {
		return nil, fmt.Errorf("load more: %w", err)
	}
	if !clicked {
		if err := p.browser.ScrollToBottom(ctx); err != nil {
			return nil, fmt.Errorf("scroll: %w", err)
		}
	}

	doc, err := p.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	n := p.countFunc(doc)
	if n <= p.last && clicked {
		// the click landed but nothing rendered yet; a scroll may still
		// trigger the lazy loader
		if err := p.browser.ScrollToBottom(ctx); err != nil {
			return nil, fmt.Errorf("scroll: %w", err)
		}
		if doc, err = p.snapshot(ctx); err != nil {
			return nil, err
		}
		n = p.countFunc(doc)
	}
	if n <= p.last {
		return nil, ErrExhausted
	}
	p.last = n
	return doc, nil
}

func (p *LoadMorePager) snapshot(ctx context.Context) (*goquery.Document, error) {
	html, err := p.browser.Content(ctx)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func (p *LoadMorePager) Close() error { return p.browser.Close() }
