package locale

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength bounds the header size parsed by Negotiate.
const maxAcceptLanguageLength = 4096

type weighted struct {
	tag string
	q   float64
}

func parseAcceptLanguage(header string) []weighted {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var tags []weighted
	for part := range strings.SplitSeq(header, ",") {
		tag, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || tag == "*" {
			continue
		}

		q := 1.0
		if v, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
				q = f
			}
		}
		if q == 0 {
			continue
		}
		tags = append(tags, weighted{tag: tag, q: q})
	}

	// Stable keeps header order among equal weights
	slices.SortStableFunc(tags, func(a, b weighted) int {
		return cmp.Compare(b.q, a.q)
	})
	return tags
}

// Negotiate returns the supported locale that best matches an Accept-Language header.
// Exact matches win over base-language matches (en-US -> en); fallback is returned when
// nothing matches. Matching is case-insensitive; the supported spelling is returned.
func Negotiate(header string, supported []string, fallback string) string {
	if header == "" || len(supported) == 0 {
		return fallback
	}

	lookup := make(map[string]string, len(supported))
	for _, s := range supported {
		lookup[strings.ToLower(s)] = s
	}

	tags := parseAcceptLanguage(header)
	for _, t := range tags {
		if s, ok := lookup[t.tag]; ok {
			return s
		}
	}
	for _, t := range tags {
		if base, _, found := strings.Cut(t.tag, "-"); found {
			if s, ok := lookup[base]; ok {
				return s
			}
		}
	}
	return fallback
}
