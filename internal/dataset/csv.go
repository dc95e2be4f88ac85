package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"lokerit-engine/internal/domain"
)

// Header is the column layout shared with the analytics side.
var Header = []string{
	"Perusahaan", "Posisi", "kategori_posisi", "kota", "provinsi", "gaji_angka",
	"list_skill", "pendidikan_clean", "jenis", "link", "sumber",
}

var aliases = map[string]string{
	"pendidikan": "pendidikan_clean",
}

func WriteCSV(w io.Writer, ds Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range ds {
		row := []string{
			r.Company,
			r.Position,
			string(r.Category),
			r.City,
			r.Province,
			r.Salary.String(),
			FormatSkills(r.Skills),
			r.Education,
			r.EmploymentType,
			r.SourceLink,
			r.Source,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV accepts files written by WriteCSV and older exports: columns may be
// reordered or missing, and missing values take the record defaults.
func ReadCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := map[string]int{}
	for i, h := range head {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if a, ok := aliases[h]; ok {
			if _, taken := col[a]; taken {
				continue
			}
			h = a
		}
		col[h] = i
	}

	out := Dataset{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		rec := domain.NewRecord(domain.ListingStub{
			Link:        get("link"),
			Title:       get("Posisi"),
			Company:     get("Perusahaan"),
			RawLocation: get("kota"),
			Source:      get("sumber"),
		})
		if c := domain.Category(get("kategori_posisi")); c.Valid() {
			rec.Category = c
		}
		if p := get("provinsi"); p != "" {
			rec.Province = p
		}
		rec.Salary = CoerceSalary(get("gaji_angka"))
		rec.Skills = ParseSkills(get("list_skill"))
		if e := get("pendidikan_clean"); e != "" {
			rec.Education = e
		}
		if j := get("jenis"); j != "" {
			rec.EmploymentType = j
		}
		out = append(out, rec)
	}
	return out, nil
}

// FormatSkills renders skills as a bracketed literal list: ['c++', 'python'].
func FormatSkills(skills []string) string {
	if len(skills) == 0 {
		return "[]"
	}
	quoted := make([]string, len(skills))
	for i, s := range skills {
		quoted[i] = "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// ParseSkills reverses FormatSkills. Double quotes and a bare comma list are
// accepted too.
func ParseSkills(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	out := []string{}
	if strings.TrimSpace(s) == "" {
		return out
	}

	var (
		cur   strings.Builder
		quote rune
		esc   bool
	)
	flush := func() {
		if v := strings.TrimSpace(cur.String()); v != "" {
			out = append(out, v)
		}
		cur.Reset()
	}
	for _, c := range s {
		switch {
		case esc:
			cur.WriteRune(c)
			esc = false
		case c == '\\' && quote != 0:
			esc = true
		case quote != 0 && c == quote:
			quote = 0
		case quote == 0 && (c == '\'' || c == '"'):
			quote = c
		case quote == 0 && c == ',':
			flush()
		default:
			cur.WriteRune(c)
		}
	}
	flush()
	return out
}
