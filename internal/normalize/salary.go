package normalize

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"lokerit-engine/internal/domain"
)

// HiddenSentinel is what detail pages show (or what we record) when a value is withheld.
const HiddenSentinel = "Hidden/Tidak Disebutkan"

var (
	ErrNoSalary        = errors.New("salary not disclosed")
	ErrMalformedSalary = errors.New("salary not numeric")
)

var hiddenSalary = map[string]bool{
	"hidden":                  true,
	"no data":                 true,
	"tidak disebutkan":        true,
	"hidden/tidak disebutkan": true,
	"negotiable":              true,
	"nego":                    true,
	"-":                       true,
}

var periodTokens = []string{"per bulan", "/bulan", "/ bulan", "per month", "/month", "/ month", "/bln", "per tahun"}

var millionUnit = regexp.MustCompile(`(juta|jt|million|mio)\b`)
var thousandUnit = regexp.MustCompile(`(ribu|rb)\b`)
var currency = regexp.MustCompile(`\b(rp|idr)\.?`)
var grouped = regexp.MustCompile(`^\d{1,3}([.,]\d{3})+$`)
var zeroCents = regexp.MustCompile(`^(\d{1,3}(?:[.,]\d{3})+)[.,]0{1,2}$`)
var rangeSep = regexp.MustCompile(`\s*(?:-|–|—|~|\bs/d\b|\bsampai\b|\bto\b)\s*`)

// ParseSalary averages a salary range ("Rp 5.5 - 6 Juta") or parses a single
// amount, returning whole IDR. It never panics.
func ParseSalary(text string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" || hiddenSalary[s] {
		return 0, ErrNoSalary
	}

	scale := 0.0
	switch {
	case millionUnit.MatchString(s):
		scale = 1e6
	case thousandUnit.MatchString(s):
		scale = 1e3
	}

	for _, tok := range periodTokens {
		s = strings.ReplaceAll(s, tok, " ")
	}
	s = currency.ReplaceAllString(s, " ")
	s = millionUnit.ReplaceAllString(s, " ")
	s = thousandUnit.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMalformedSalary
	}

	parts := rangeSep.Split(s, -1)
	if len(parts) > 2 {
		return 0, ErrMalformedSalary
	}

	var sum float64
	for _, p := range parts {
		v, err := parseAmount(strings.Join(strings.Fields(p), ""), scale)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	avg := math.Round(sum / float64(len(parts)))
	if avg <= 0 || math.IsInf(avg, 0) || math.IsNaN(avg) || avg > math.MaxInt64/2 {
		return 0, ErrMalformedSalary
	}
	return int64(avg), nil
}

// SalaryOf is ParseSalary folded into an optional value.
func SalaryOf(text string) domain.Salary {
	n, err := ParseSalary(text)
	if err != nil {
		return domain.NoSalary()
	}
	return domain.SalaryOf(n)
}

func parseAmount(p string, scale float64) (float64, error) {
	if p == "" {
		return 0, ErrMalformedSalary
	}

	if scale == 0 {
		// 10.000.000,00
		p = zeroCents.ReplaceAllString(p, "$1")
	}
	if scale == 0 && grouped.MatchString(p) {
		// 5.000.000 or 5,000,000: whole rupiah
		p = strings.NewReplacer(".", "", ",", "").Replace(p)
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, ErrMalformedSalary
		}
		return v, nil
	}

	if !strings.Contains(p, ".") {
		p = strings.Replace(p, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(p, 64)
	if err != nil || v < 0 {
		return 0, ErrMalformedSalary
	}
	if scale == 0 {
		// Bare small numbers are quoted in millions on these boards.
		if v < 1000 {
			scale = 1e6
		} else {
			scale = 1
		}
	}
	return v * scale, nil
}
