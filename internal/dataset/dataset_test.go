package dataset

import (
	"bytes"
	"strings"
	"testing"

	"lokerit-engine/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(company, position, link string, salary int64) domain.ListingRecord {
	r := domain.NewRecord(domain.ListingStub{Company: company, Title: position, Link: link, Source: "lokerid"})
	r.Salary = domain.SalaryOf(salary)
	return r
}

func TestMergeWithItselfIsNoOp(t *testing.T) {
	ds := Dataset{
		rec("PT A", "Backend", "https://x/1", 5_000_000),
		rec("PT B", "QA", "", 0),
	}
	once := Merge(KeepFirst, ds)
	twice := Merge(KeepFirst, once, once)
	assert.Equal(t, once, twice)
	assert.Len(t, twice, 2)
}

func TestMergeSharedLinkKeepsFirst(t *testing.T) {
	a := Dataset{rec("PT A", "Backend", "https://x/1", 5_000_000)}
	b := Dataset{rec("PT A (copy)", "Backend Engineer", "https://x/1", 9_000_000), rec("PT C", "Data", "https://x/2", 0)}

	out := Merge(KeepFirst, a, b)
	require.Len(t, out, 2)
	assert.Equal(t, "PT A", out[0].Company)
	assert.EqualValues(t, 5_000_000, out[0].Salary.Amount)
	assert.Equal(t, "https://x/2", out[1].SourceLink)
}

func TestMergeKeepLastKeepsPosition(t *testing.T) {
	a := Dataset{rec("PT A", "Backend", "https://x/1", 5_000_000), rec("PT Z", "Ops", "https://x/9", 0)}
	b := Dataset{rec("PT A", "Backend", "https://x/1", 7_000_000)}

	out := Merge(KeepLast, a, b)
	require.Len(t, out, 2)
	assert.EqualValues(t, 7_000_000, out[0].Salary.Amount)
	assert.Equal(t, "PT Z", out[1].Company)
}

func TestMergeFallbackKey(t *testing.T) {
	out := Merge(KeepFirst,
		Dataset{rec("PT Maju", "Data Engineer", "", 0)},
		Dataset{rec("pt maju ", "DATA ENGINEER", "", 0), rec("PT Maju", "Data Analyst", "", 0)},
	)
	assert.Len(t, out, 2)

	// a link never collides with a company+position key
	assert.NotEqual(t, Key(rec("a", "b", "", 0)), Key(rec("x", "y", "a\x1fb", 0)))
}

func TestMergeCoercesSalary(t *testing.T) {
	bad := rec("PT A", "Dev", "https://x/1", 0)
	bad.Salary = domain.Salary{Amount: -5, Valid: true}
	stale := rec("PT B", "Dev", "https://x/2", 0)
	stale.Salary = domain.Salary{Amount: 100}
	stale.Skills = nil

	out := Merge(KeepFirst, Dataset{bad, stale})
	assert.False(t, out[0].Salary.Valid)
	assert.Equal(t, domain.NoSalary(), out[1].Salary)
	assert.Equal(t, []string{}, out[1].Skills)
}

func TestCoerceSalary(t *testing.T) {
	cases := []struct {
		in   string
		want domain.Salary
	}{
		{"", domain.NoSalary()},
		{"nan", domain.NoSalary()},
		{"None", domain.NoSalary()},
		{"abc", domain.NoSalary()},
		{"0", domain.NoSalary()},
		{"-10", domain.NoSalary()},
		{"5000000", domain.SalaryOf(5_000_000)},
		{"5000000.6", domain.SalaryOf(5_000_001)},
		{" 7500000.0 ", domain.SalaryOf(7_500_000)},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, CoerceSalary(c.in))
		})
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, KeepFirst, p)
	p, err = ParsePolicy("LAST")
	require.NoError(t, err)
	assert.Equal(t, KeepLast, p)
	_, err = ParsePolicy("random")
	assert.Error(t, err)
}

func TestCSVRoundTrip(t *testing.T) {
	a := rec("PT \"Quote\", Tbk", "Software Engineer", "https://x/1", 8_000_000)
	a.Category = domain.CategorySoftwareEngineering
	a.City = "Jakarta Selatan"
	a.Province = "DKI Jakarta"
	a.Skills = []string{"c++", "python"}
	a.Education = "S1"
	b := rec("PT B", "Helpdesk", "https://x/2", 0)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Dataset{a, b}))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, strings.Join(Header, ","), lines[0])
	assert.Contains(t, lines[1], `"['c++', 'python']"`)
	assert.Contains(t, lines[2], ",[],")

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, Dataset{a, b}, got)
}

func TestReadCSVTolerant(t *testing.T) {
	in := "link,Posisi,pendidikan,gaji_angka,list_skill\n" +
		"https://x/1,Data Analyst,S2,nan,\"[\"\"sql\"\", \"\"excel\"\"]\"\n" +
		"https://x/2,,,4500000.4,\n"

	got, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "S2", got[0].Education)
	assert.False(t, got[0].Salary.Valid)
	assert.Equal(t, []string{"sql", "excel"}, got[0].Skills)
	assert.Equal(t, domain.CompanyUnknown, got[0].Company)
	assert.Equal(t, domain.CategoryOther, got[0].Category)

	assert.Equal(t, domain.TitleUnknown, got[1].Position)
	assert.EqualValues(t, 4_500_000, got[1].Salary.Amount)
	assert.Equal(t, []string{}, got[1].Skills)
	assert.Equal(t, domain.EducationUnknown, got[1].Education)
}

func TestReadCSVEmpty(t *testing.T) {
	got, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
