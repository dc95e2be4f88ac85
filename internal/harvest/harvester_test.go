package harvest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"lokerit-engine/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cardParser struct{}

func (cardParser) ParseCards(doc *goquery.Document) []domain.ListingStub {
	var out []domain.ListingStub
	doc.Find("a.card").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		out = append(out, domain.ListingStub{Link: href, Title: s.Text(), Source: "test"})
	})
	return out
}

func page(links ...string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, l := range links {
		fmt.Fprintf(&b, `<a class="card" href="%s">job</a>`, l)
	}
	b.WriteString("</body></html>")
	return b.String()
}

type fakePager struct {
	pages  []string
	errAt  int // 1-based page that fails, 0 for none
	i      int
	closed bool
}

func (p *fakePager) Next(ctx context.Context) (*goquery.Document, error) {
	if p.i >= len(p.pages) {
		return nil, ErrExhausted
	}
	p.i++
	if p.i == p.errAt {
		return nil, errors.New("connection reset")
	}
	return goquery.NewDocumentFromReader(strings.NewReader(p.pages[p.i-1]))
}

func (p *fakePager) Close() error { p.closed = true; return nil }

func links(stubs []domain.ListingStub) []string {
	out := make([]string, len(stubs))
	for i, s := range stubs {
		out[i] = s.Link
	}
	return out
}

func TestHarvestDedupsAndTruncates(t *testing.T) {
	p := &fakePager{pages: []string{
		page("https://x.id/jobs/1", "https://x.id/jobs/2", "https://x.id/jobs/2"),
		page("https://x.id/jobs/2", "https://x.id/jobs/3", "https://x.id/jobs/4"),
	}}
	got := New(p, cardParser{}, Options{Name: "test"}).Harvest(context.Background(), 3)

	assert.Equal(t, []string{"https://x.id/jobs/1", "https://x.id/jobs/2", "https://x.id/jobs/3"}, links(got))
	assert.True(t, p.closed)
}

func TestHarvestSkipsCardsWithoutNumericID(t *testing.T) {
	p := &fakePager{pages: []string{
		page("https://x.id/jobs/", "", "https://x.id/jobs/77/backend"),
	}}
	got := New(p, cardParser{}, Options{}).Harvest(context.Background(), 10)

	assert.Equal(t, []string{"https://x.id/jobs/77/backend"}, links(got))
}

func TestHarvestStopsOnExhaustionAndEmptyPage(t *testing.T) {
	p := &fakePager{pages: []string{page("https://x.id/jobs/1")}}
	got := New(p, cardParser{}, Options{}).Harvest(context.Background(), 50)
	assert.Len(t, got, 1)

	p = &fakePager{pages: []string{page("https://x.id/jobs/1"), page(), page("https://x.id/jobs/9")}}
	got = New(p, cardParser{}, Options{}).Harvest(context.Background(), 50)
	assert.Len(t, got, 1, "an empty page ends the harvest")
}

func TestHarvestReturnsPartialOnPageError(t *testing.T) {
	p := &fakePager{
		pages: []string{page("https://x.id/jobs/1", "https://x.id/jobs/2"), page("https://x.id/jobs/3"), page("https://x.id/jobs/4")},
		errAt: 2,
	}
	got := New(p, cardParser{}, Options{}).Harvest(context.Background(), 10)
	assert.Equal(t, []string{"https://x.id/jobs/1", "https://x.id/jobs/2"}, links(got))
}

func TestHarvestRespectsPageCeilingAndCancel(t *testing.T) {
	p := &fakePager{pages: []string{page("https://x.id/jobs/1"), page("https://x.id/jobs/2"), page("https://x.id/jobs/3")}}
	got := New(p, cardParser{}, Options{MaxPages: 2}).Harvest(context.Background(), 10)
	assert.Len(t, got, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p = &fakePager{pages: []string{page("https://x.id/jobs/1")}}
	assert.Empty(t, New(p, cardParser{}, Options{}).Harvest(ctx, 10))

	assert.Empty(t, New(&fakePager{}, cardParser{}, Options{}).Harvest(context.Background(), 0))
}

type fakeFetcher struct{ urls []string }

func (f *fakeFetcher) Document(ctx context.Context, url string) (*goquery.Document, error) {
	f.urls = append(f.urls, url)
	return goquery.NewDocumentFromReader(strings.NewReader(page(url + "/1")))
}

func TestNumberedPager(t *testing.T) {
	f := &fakeFetcher{}
	p := NewNumberedPager(f, func(n int) string { return fmt.Sprintf("https://x.id/page/%d", n) }, 2)

	_, err := p.Next(context.Background())
	require.NoError(t, err)
	_, err = p.Next(context.Background())
	require.NoError(t, err)
	_, err = p.Next(context.Background())
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, []string{"https://x.id/page/1", "https://x.id/page/2"}, f.urls)
}

// fakeBrowser grows by one card per click until clicks run out, then one
// scroll may add cards once more. Idle clicks succeed without adding cards.
type fakeBrowser struct {
	cards      int
	idleClicks int
	clicksLeft int
	scrollAdds int
	scrolls    int
	closed     bool
}

func (b *fakeBrowser) Goto(ctx context.Context, url string) error { return nil }

func (b *fakeBrowser) Content(ctx context.Context) (string, error) {
	var ls []string
	for i := 1; i <= b.cards; i++ {
		ls = append(ls, fmt.Sprintf("https://x.id/jobs/%d", i))
	}
	return page(ls...), nil
}

func (b *fakeBrowser) ClickLoadMore(ctx context.Context) (bool, error) {
	if b.idleClicks > 0 {
		b.idleClicks--
		return true, nil
	}
	if b.clicksLeft == 0 {
		return false, nil
	}
	b.clicksLeft--
	b.cards++
	return true, nil
}

func (b *fakeBrowser) ScrollToBottom(ctx context.Context) error {
	b.scrolls++
	b.cards += b.scrollAdds
	b.scrollAdds = 0
	return nil
}

func (b *fakeBrowser) Close() error { b.closed = true; return nil }

func countCards(doc *goquery.Document) int { return doc.Find("a.card").Length() }

func TestLoadMorePagerExhaustsWhenNothingNew(t *testing.T) {
	b := &fakeBrowser{cards: 2, clicksLeft: 2, scrollAdds: 3}
	p := NewLoadMorePager(b, "https://x.id/board", countCards)

	got := New(p, cardParser{}, Options{Name: "loadmore"}).Harvest(context.Background(), 100)

	// 2 initial + 2 clicks + 3 from one productive scroll
	assert.Len(t, got, 7)
	assert.Equal(t, 2, b.scrolls)
	assert.True(t, b.closed)
}

func TestLoadMorePagerScrollsAfterIdleClick(t *testing.T) {
	b := &fakeBrowser{cards: 2, idleClicks: 1, scrollAdds: 2}
	p := NewLoadMorePager(b, "https://x.id/board", countCards)

	got := New(p, cardParser{}, Options{}).Harvest(context.Background(), 100)

	assert.Len(t, got, 4)
	assert.Equal(t, 2, b.scrolls)
}

func TestLoadMorePagerStopsAtTarget(t *testing.T) {
	b := &fakeBrowser{cards: 3, clicksLeft: 100}
	p := NewLoadMorePager(b, "https://x.id/board", countCards)

	got := New(p, cardParser{}, Options{}).Harvest(context.Background(), 5)
	assert.Len(t, got, 5)
	assert.Equal(t, 98, b.clicksLeft, "two clicks then the target is met")
}

type slugParser struct{ cardParser }

func (slugParser) ValidLink(link string) bool { return strings.Contains(link, "/lowongan/") }

func TestHarvestUsesParserLinkValidator(t *testing.T) {
	p := &fakePager{pages: []string{
		page("https://x.id/lowongan/backend-go", "https://x.id/jobs/12", "https://x.id/lowongan/qa-engineer"),
	}}
	got := New(p, slugParser{}, Options{}).Harvest(context.Background(), 10)
	assert.Equal(t, []string{"https://x.id/lowongan/backend-go", "https://x.id/lowongan/qa-engineer"}, links(got))
}
