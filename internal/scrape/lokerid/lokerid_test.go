package lokerid

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"lokerit-engine/internal/domain"
	"lokerit-engine/internal/extract"
	"lokerit-engine/internal/harvest"
	"lokerit-engine/internal/scrape/fetch"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, s string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	require.NoError(t, err)
	return d
}

func indexPage(from, n int) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := from; i < from+n; i++ {
		fmt.Fprintf(&b, `<article class="card"><a href="/lowongan-kerja/it-programmer-%d"><h3>IT Programmer %d</h3></a>`+
			`<span class="text-secondary-500">PT Lokal %d</span><span translate="no">Bandung</span></article>`, i, i, i)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func TestIndexURL(t *testing.T) {
	src := New(Config{}, nil)
	assert.Equal(t, "https://www.loker.id/lowongan-kerja/information-technology/page/3", src.IndexURL("", 3))
	assert.Equal(t,
		"https://www.loker.id/cari-lowongan-kerja/page/1?category=information-technology&q=data+analyst",
		src.IndexURL("data analyst", 1))
}

func TestPagesFor(t *testing.T) {
	assert.Equal(t, 1, PagesFor(0))
	assert.Equal(t, 1, PagesFor(15))
	assert.Equal(t, 2, PagesFor(16))
	assert.Equal(t, 4, PagesFor(50))
}

func TestParseCardsDefaults(t *testing.T) {
	src := New(Config{}, nil)
	cards := src.ParseCards(doc(t, `<html><body>
<article class="card"><a href="https://www.loker.id/lowongan-kerja/qa-tester"></a></article>
<article class="card"><h3>No link</h3></article>
</body></html>`))

	require.Len(t, cards, 1)
	assert.Equal(t, domain.TitleUnknown, cards[0].Title)
	assert.Equal(t, domain.CompanyUnknown, cards[0].Company)
	assert.Equal(t, LocationUnknown, cards[0].RawLocation)
}

func TestValidLink(t *testing.T) {
	src := New(Config{}, nil)
	assert.True(t, src.ValidLink("https://www.loker.id/lowongan-kerja/it-programmer-pt-abc"))
	assert.False(t, src.ValidLink("https://www.loker.id/lowongan-kerja/information-technology"))
	assert.False(t, src.ValidLink("https://www.loker.id/lowongan-kerja/information-technology/page/2"))
	assert.False(t, src.ValidLink("https://ads.example.com/lowongan-kerja/x-1"))
}

func TestHarvestWalksPagesUntilTarget(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		var n int
		_, _ = fmt.Sscanf(r.URL.Path, "/lowongan-kerja/information-technology/page/%d", &n)
		_, _ = w.Write([]byte(indexPage((n-1)*PerPage, PerPage)))
	}))
	defer srv.Close()

	src := New(Config{BaseURL: srv.URL, MaxPages: 10}, fetch.New(fetch.Options{}))
	pager, opts, err := src.Pager(context.Background(), "", 20)
	require.NoError(t, err)
	assert.Equal(t, 2, opts.MaxPages)

	stubs := harvest.New(pager, src, opts).Harvest(context.Background(), 20)
	require.Len(t, stubs, 20)
	assert.EqualValues(t, 2, hits.Load())
	assert.Equal(t, "IT Programmer 0", stubs[0].Title)
	assert.Equal(t, "Bandung", stubs[19].RawLocation)
}

const detail = `<html><body>
<nav><a href="/">Beranda</a></nav>
<div class="info">
  <div class="item"><i class="icon-money"></i><span>Gaji</span> <span>Rp 4 - 6 Juta</span></div>
  <div class="item"><span>Tipe Pekerjaan</span> <span>Full Time</span></div>
  <div class="item"><span>Pendidikan</span> <span>SMA/SMK/D3</span></div>
</div>
<div id="description"><p>Kami membutuhkan IT Support yang memahami jaringan, Linux dan Mikrotik.</p></div>
<h4>Kualifikasi</h4>
<ul><li>Menguasai troubleshooting Windows</li><li>Memahami CCNA</li></ul>
</body></html>`

func TestDetailLocator(t *testing.T) {
	src := New(Config{}, nil)
	stub := domain.ListingStub{Link: "https://www.loker.id/lowongan-kerja/it-support", Title: "IT Support", RawLocation: "Bekasi", Source: Name}

	rec := extract.New(src.Locator(), nil).Extract(stub, doc(t, detail))

	assert.Equal(t, "Jawa Barat", rec.Province)
	require.True(t, rec.Salary.Valid)
	assert.EqualValues(t, 5_000_000, rec.Salary.Amount)
	assert.Equal(t, "Full Time", rec.EmploymentType)
	assert.Equal(t, "SMA/SMK", rec.Education)
	assert.Equal(t, []string{"ccna", "linux", "mikrotik"}, rec.Skills)
}
