package extract

import (
	"strings"
	"testing"

	"lokerit-engine/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, body string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	return doc
}

var stub = domain.ListingStub{
	Link:        "https://www.loker.id/lowongan-kerja/backend-developer-123",
	Title:       "Backend Developer",
	Company:     "PT Maju Jaya",
	RawLocation: "Jakarta Selatan",
	Source:      "lokerid",
}

func TestExtractWithoutDocument(t *testing.T) {
	rec := New(nil, nil).Extract(stub, nil)

	assert.Equal(t, "PT Maju Jaya", rec.Company)
	assert.Equal(t, "Backend Developer", rec.Position)
	assert.Equal(t, domain.CategorySoftwareEngineering, rec.Category)
	assert.Equal(t, "Jakarta Selatan", rec.City)
	assert.Equal(t, "DKI Jakarta", rec.Province)
	assert.False(t, rec.Salary.Valid)
	assert.Equal(t, []string{}, rec.Skills)
	assert.Equal(t, domain.EducationUnknown, rec.Education)
	assert.Equal(t, domain.EmploymentDefault, rec.EmploymentType)
	assert.Equal(t, stub.Link, rec.SourceLink)
}

func TestExtractEmptyStubUsesSentinels(t *testing.T) {
	rec := New(nil, nil).Extract(domain.ListingStub{Link: "https://x/1"}, nil)

	assert.Equal(t, domain.CompanyUnknown, rec.Company)
	assert.Equal(t, domain.TitleUnknown, rec.Position)
	assert.Equal(t, domain.CategoryOther, rec.Category)
	assert.Equal(t, domain.ProvinceOther, rec.Province)
}

const labeledPage = `<html><head><title>Gaji Backend Developer</title></head><body>
<nav><a href="/">Beranda</a> <a href="/gaji">Info Gaji</a></nav>
<div class="meta">
  <div class="row"><span class="icon">Gaji</span><span>Rp 5.5 - 6 Juta</span></div>
  <div class="row"><span>Tipe Pekerjaan</span><span>Kontrak</span></div>
  <div class="row"><span>Pendidikan</span><span>Minimal S1 Teknik Informatika</span></div>
</div>
<div id="description">
  <p>Kami mencari Backend Developer dengan C++ dan Node.js untuk tim kami.</p>
</div>
<h3>Kualifikasi</h3>
<ul>
  <li>Menguasai PostgreSQL dan Redis</li>
  <li>Pengalaman dengan Docker</li>
</ul>
</body></html>`

func TestExtractLabeledPage(t *testing.T) {
	st := Generic
	st.NextData = false
	rec := New(st, nil).Extract(stub, mustDoc(t, labeledPage))

	require.True(t, rec.Salary.Valid)
	assert.EqualValues(t, 5_750_000, rec.Salary.Amount)
	assert.Equal(t, "Kontrak", rec.EmploymentType)
	assert.Equal(t, "S1", rec.Education)
	assert.Equal(t, []string{"c++", "docker", "node.js", "postgresql", "redis"}, rec.Skills)
}

const definitionPage = `<html><body>
<div itemprop="description"><p>Build data pipelines with Python, Airflow and BigQuery.</p></div>
<div itemprop="qualifications"><ul><li>Experience with dbt</li></ul></div>
<dl>
  <dt>Tingkat Pendidikan</dt><dd>Diploma (D3)</dd>
  <dt>Job Type</dt><dd>Full time</dd>
</dl>
<script id="__NEXT_DATA__" type="application/json">
{"props":{"pageProps":{"job":{"minimum_salary":8000000,"maximum_salary":12000000}}}}
</script>
</body></html>`

func TestExtractDefinitionListAndNextData(t *testing.T) {
	s := stub
	s.Title = "Data Engineer / Backend Developer"
	rec := New(Generic, nil).Extract(s, mustDoc(t, definitionPage))

	assert.Equal(t, domain.CategoryDataAI, rec.Category)
	require.True(t, rec.Salary.Valid)
	assert.EqualValues(t, 10_000_000, rec.Salary.Amount)
	assert.Equal(t, "Diploma", rec.Education)
	assert.Equal(t, "Full time", rec.EmploymentType)
	assert.Equal(t, []string{"airflow", "bigquery", "dbt", "python"}, rec.Skills)
}

func TestExtractLargestBlockFallback(t *testing.T) {
	long := strings.Repeat("Tim kami membangun layanan dengan Golang dan Kubernetes. ", 6)
	page := `<html><body><div class="header">Menu</div><div><p>` + long + `</p></div></body></html>`

	rec := New(Generic, nil).Extract(stub, mustDoc(t, page))
	assert.Equal(t, []string{"golang", "kubernetes"}, rec.Skills)
	assert.False(t, rec.Salary.Valid)
	assert.Equal(t, domain.EducationUnknown, rec.Education)
}

func TestExtractHiddenSalaryStaysEmpty(t *testing.T) {
	page := `<html><body><div><span>Gaji</span><span>Dirahasiakan</span></div></body></html>`

	rec := New(Generic, nil).Extract(stub, mustDoc(t, page))
	assert.False(t, rec.Salary.Valid)
}

type panicky struct{}

func (panicky) Locate(doc *goquery.Document) Fields {
	var f Fields
	guard("test", "salary", func() { panic("boom") })
	guard("test", "education", func() { f.Education = "S2" })
	return f
}

func TestFieldPanicDoesNotBlockOthers(t *testing.T) {
	rec := New(panicky{}, nil).Extract(stub, mustDoc(t, "<html></html>"))
	assert.Equal(t, "S2", rec.Education)
	assert.False(t, rec.Salary.Valid)
}

func TestListAfterHeadingWrapped(t *testing.T) {
	page := `<html><body>
<p><strong>Requirements:</strong></p>
<div><ul><li>Beranda</li><li>Go</li><li>gRPC</li></ul></div>
</body></html>`
	assert.Equal(t, "Go | gRPC", ListAfterHeading(mustDoc(t, page), QualHeadings))
	assert.Equal(t, "", ListAfterHeading(mustDoc(t, "<p>none</p>"), QualHeadings))
}

func TestNextDataSalaryPartial(t *testing.T) {
	page := `<html><body><script id="__NEXT_DATA__">{"props":{"pageProps":{"job":{"minimum_salary":7000000,"maximum_salary":null}}}}</script></body></html>`
	s := NextDataSalary(mustDoc(t, page))
	require.True(t, s.Valid)
	assert.EqualValues(t, 7_000_000, s.Amount)

	assert.False(t, NextDataSalary(mustDoc(t, `<script id="__NEXT_DATA__">not json</script>`)).Valid)
}
