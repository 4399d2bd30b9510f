package tui

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/catalogdash/internal/catalog"
	"github.com/KaramelBytes/catalogdash/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model
func (m Model) View() string {
	if m.picker.IsVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.picker.View())
	}

	ds := m.session.Dataset()
	header := styles.TitleStyle.Render("catalogdash")
	if ds.Name != "" {
		header += styles.DimStyle.Render("  " + ds.Name)
	}
	parts := []string{
		header,
		styles.SubtitleStyle.Render(filterSummary(m.params, ds)),
		"",
		RenderSummary(m.result.Metrics, m.width-2),
		"",
		styles.TitleStyle.Render(fmt.Sprintf("Titles (%d)", m.result.View.Len())),
		styles.PanelStyle.Render(m.table.View()),
	}

	if sel := m.result.Selected; sel != nil {
		parts = append(parts, renderDetail(sel, m.width-4))
	}
	for _, w := range ds.Warnings {
		parts = append(parts, styles.WarningStyle.Render("⚠ "+w))
	}
	for _, w := range m.result.Warnings {
		parts = append(parts, styles.WarningStyle.Render("⚠ "+w))
	}
	if m.searching {
		parts = append(parts, m.search.View())
	}
	if m.status != "" {
		style := styles.SuccessStyle
		if m.statusErr {
			style = styles.WarningStyle
		}
		parts = append(parts, style.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderDetail shows every descriptive field of the selected title.
func renderDetail(t *catalog.Title, width int) string {
	if width < 30 {
		width = 30
	}
	var meta []string
	for _, v := range []string{t.Value(catalog.ColType), t.Value(catalog.ColReleaseYear), t.Rating, t.Duration} {
		if v != "" {
			meta = append(meta, v)
		}
	}
	field := func(label, value string) string {
		if value == "" {
			value = "—"
		}
		return styles.CardLabelStyle.Render(fmt.Sprintf("%-9s", label)) + " " + value
	}
	lines := []string{
		styles.TitleStyle.Render(t.Title),
		styles.SubtitleStyle.Render(strings.Join(meta, " · ")),
		field("Country", t.Country),
		field("Genres", t.ListedIn),
		field("Director", t.Director),
		field("Cast", t.Cast),
	}
	if t.Description != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(width-4).Render(t.Description))
	}
	return styles.ActivePanelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
