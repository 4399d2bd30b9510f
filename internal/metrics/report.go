package metrics

import (
	"fmt"
	"strings"
)

// Markdown renders the metrics as a plain report with [SECTION] headings.
func (m Metrics) Markdown() string {
	var b strings.Builder
	b.WriteString("[SUMMARY]\n")
	b.WriteString(fmt.Sprintf("Titles: %d\n", m.Total))
	b.WriteString(fmt.Sprintf("%s: %s\n", m.Average.Label, m.Average))
	b.WriteString(fmt.Sprintf("Oldest release year: %s\n", m.Oldest))
	if g, ok := m.MostFrequentGenre(); ok {
		b.WriteString(fmt.Sprintf("Most frequent genre: %s\n", safeVal(g)))
	}

	writeBuckets(&b, "RATINGS", m.Ratings)
	writeBuckets(&b, "RELEASE YEARS", m.Years)
	writeBuckets(&b, "TOP GENRES", m.TopGenres)
	if m.ShowStats {
		writeBuckets(&b, "TOP COUNTRIES", m.TopCountries)
	}

	if len(m.Notes) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, n := range m.Notes {
			b.WriteString("- " + n + "\n")
		}
	}
	return b.String()
}

func writeBuckets(b *strings.Builder, title string, buckets []Bucket) {
	b.WriteString("\n[" + title + "]\n")
	if len(buckets) == 0 {
		b.WriteString("- (no data)\n")
		return
	}
	for _, k := range buckets {
		b.WriteString(fmt.Sprintf("- %s: %d\n", safeVal(k.Label), k.Count))
	}
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
