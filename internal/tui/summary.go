package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KaramelBytes/catalogdash/internal/metrics"
	"github.com/KaramelBytes/catalogdash/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

const (
	minBarWidth = 10
	labelWidth  = 18
)

// RenderSummary draws metric cards and charts for m within width columns.
func RenderSummary(m metrics.Metrics, width int) string {
	if width <= 0 {
		width = 80
	}
	parts := []string{renderCards(m, width), ""}

	charts := []string{
		renderBars("Ratings", m.Ratings, width/2-2, 0),
		renderBars("Top genres", m.TopGenres, width/2-2, 0),
	}
	if width >= 70 {
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, charts[0], "  ", charts[1]))
	} else {
		parts = append(parts, charts...)
	}
	parts = append(parts, "", renderSpark("Titles per release year", m.Years, width))
	if m.ShowStats {
		parts = append(parts, "", renderBars("Top countries", m.TopCountries, width, 0))
	}
	for _, n := range m.Notes {
		parts = append(parts, styles.WarningStyle.Render("⚠ "+n))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderCards(m metrics.Metrics, width int) string {
	genre := "no data"
	if g, ok := m.MostFrequentGenre(); ok {
		genre = g
	}
	cards := []struct{ label, value string }{
		{"Titles", strconv.Itoa(m.Total)},
		{m.Average.Label, m.Average.String()},
		{"Oldest release", m.Oldest.String()},
		{"Most frequent genre", genre},
	}
	cardWidth := width/len(cards) - 2
	if cardWidth < 16 {
		cardWidth = 16
	}
	rendered := make([]string, len(cards))
	for i, c := range cards {
		body := lipgloss.JoinVertical(lipgloss.Left,
			styles.CardLabelStyle.Render(c.label),
			styles.CardValueStyle.Render(truncate(c.value, cardWidth-2)),
		)
		rendered[i] = styles.CardStyle.Width(cardWidth).Render(body)
	}
	if width < 4*(cardWidth+2) {
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, rendered[0], rendered[1]),
			lipgloss.JoinHorizontal(lipgloss.Top, rendered[2], rendered[3]),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderBars draws one horizontal bar per bucket, scaled to the largest count.
// limit <= 0 shows every bucket.
func renderBars(title string, buckets []metrics.Bucket, width, limit int) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(title))
	if len(buckets) == 0 {
		b.WriteString("\n" + styles.DimStyle.Render("no data"))
		return b.String()
	}
	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}
	maxCount := 0
	for _, k := range buckets {
		if k.Count > maxCount {
			maxCount = k.Count
		}
	}
	barWidth := width - labelWidth - 8
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	for _, k := range buckets {
		n := k.Count * barWidth / maxCount
		if n == 0 && k.Count > 0 {
			n = 1
		}
		label := fmt.Sprintf("%-*s", labelWidth, truncate(k.Label, labelWidth))
		b.WriteString("\n")
		b.WriteString(styles.BarLabelStyle.Render(label))
		b.WriteString(" ")
		b.WriteString(styles.BarStyle.Render(strings.Repeat(styles.BarChar, n)))
		b.WriteString(" " + strconv.Itoa(k.Count))
	}
	return b.String()
}

// renderSpark draws ascending year buckets as a sparkline with the bounds underneath.
// Years with no titles inside the range are drawn as gaps.
func renderSpark(title string, years []metrics.Bucket, width int) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(title))
	if len(years) == 0 {
		b.WriteString("\n" + styles.DimStyle.Render("no data"))
		return b.String()
	}
	first, _ := strconv.Atoi(years[0].Label)
	last, _ := strconv.Atoi(years[len(years)-1].Label)
	counts := map[int]int{}
	maxCount := 0
	for _, y := range years {
		v, _ := strconv.Atoi(y.Label)
		counts[v] = y.Count
		if y.Count > maxCount {
			maxCount = y.Count
		}
	}
	span := last - first + 1
	// squeeze long ranges into the available width by summing adjacent years
	step := 1
	if span > width-2 && width > 2 {
		step = (span + width - 3) / (width - 2)
	}
	var cells []int
	for y := first; y <= last; y += step {
		sum := 0
		for k := 0; k < step; k++ {
			sum += counts[y+k]
		}
		cells = append(cells, sum)
	}
	if step > 1 {
		maxCount = 0
		for _, c := range cells {
			if c > maxCount {
				maxCount = c
			}
		}
	}
	var line strings.Builder
	top := len(styles.SparkLevels) - 1
	for _, c := range cells {
		if c == 0 {
			line.WriteRune(' ')
			continue
		}
		line.WriteRune(styles.SparkLevels[c*top/maxCount])
	}
	b.WriteString("\n" + styles.SparkStyle.Render(line.String()))
	gap := len(cells) - len(years[0].Label) - len(years[len(years)-1].Label)
	if gap < 1 {
		gap = 1
	}
	b.WriteString("\n" + styles.DimStyle.Render(years[0].Label+strings.Repeat(" ", gap)+years[len(years)-1].Label))
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
