// Package dataset merges listing records from several runs and sources into
// one deduplicated table, and moves that table in and out of CSV.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"lokerit-engine/internal/domain"
)

type Dataset []domain.ListingRecord

// Policy decides which record survives a key collision.
type Policy string

const (
	KeepFirst Policy = "first"
	KeepLast  Policy = "last"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", KeepFirst:
		return KeepFirst, nil
	case KeepLast:
		return KeepLast, nil
	}
	return "", fmt.Errorf("unknown dedup policy %q", s)
}

// Key is the dedup identity of a record: its link when present, otherwise
// lowercased company plus position.
func Key(r domain.ListingRecord) string {
	if link := strings.TrimSpace(r.SourceLink); link != "" {
		return "link:" + link
	}
	return "cp:" + strings.ToLower(strings.TrimSpace(r.Company)) + "\x1f" + strings.ToLower(strings.TrimSpace(r.Position))
}

// Merge concatenates sets in argument order and drops every record whose key
// was already taken. With KeepLast the surviving record is the last one seen
// but it keeps the position of the first. Salaries are re-coerced so that no
// non-positive amount survives.
func Merge(policy Policy, sets ...Dataset) Dataset {
	total := 0
	for _, s := range sets {
		total += len(s)
	}

	out := make(Dataset, 0, total)
	index := make(map[string]int, total)
	for _, s := range sets {
		for _, r := range s {
			k := Key(r)
			if i, ok := index[k]; ok {
				if policy == KeepLast {
					out[i] = r
				}
				continue
			}
			index[k] = len(out)
			out = append(out, r)
		}
	}

	for i := range out {
		if out[i].Salary.Valid {
			out[i].Salary = domain.SalaryOf(out[i].Salary.Amount)
		} else {
			out[i].Salary = domain.NoSalary()
		}
		if out[i].Skills == nil {
			out[i].Skills = []string{}
		}
	}
	return out
}

// CoerceSalary reads a salary cell as written by this package or by other
// tools: blanks, "nan", "None", non-numbers and non-positive values are no
// salary; fractional values are rounded.
func CoerceSalary(raw string) domain.Salary {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "", "nan", "none", "null", "<na>":
		return domain.NoSalary()
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return domain.SalaryOf(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return domain.NoSalary()
	}
	return domain.SalaryOf(int64(math.Round(f)))
}
