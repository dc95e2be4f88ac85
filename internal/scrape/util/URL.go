package util

import (
	"net/url"
	"sort"
	"strings"
)

// Absolute resolves href against base and drops fragments and tracking
// parameters, so the same posting always yields the same link.
func Absolute(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if !ref.IsAbs() {
		b, err := url.Parse(base)
		if err != nil {
			return ""
		}
		ref = b.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}

	ref.Scheme = strings.ToLower(ref.Scheme)
	ref.Host = strings.ToLower(ref.Host)
	ref.Fragment = ""

	q := ref.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || lk == "gclid" || lk == "fbclid" {
			q.Del(k)
		}
	}
	// deterministic query
	for k := range q {
		vals := q[k]
		sort.Strings(vals)
		q[k] = vals
	}
	ref.RawQuery = q.Encode()
	return ref.String()
}

// HasNumericID reports whether the link path carries a numeric job identifier.
func HasNumericID(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return HasDigit(u.Path)
}

func Host(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
