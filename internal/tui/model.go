package tui

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/catalogdash/internal/catalog"
	"github.com/KaramelBytes/catalogdash/internal/dashboard"
	"github.com/KaramelBytes/catalogdash/internal/filter"
	"github.com/KaramelBytes/catalogdash/internal/tui/components"
	"github.com/KaramelBytes/catalogdash/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options configures a dashboard model.
type Options struct {
	Columns    []string       // row table columns
	ExportPath string         // target of the export key
	Params     *filter.Params // initial filters, nil for the unfiltered view
	Notice     string         // shown until the first interaction, e.g. a load failure
}

type pickerField int

const (
	pickCountries pickerField = iota
	pickGenres
)

// exportedMsg reports the outcome of an export command
type exportedMsg struct {
	path string
	rows int
	err  error
}

// Model is the Bubble Tea model for the dashboard
type Model struct {
	session *dashboard.Session
	keys    KeyMap
	help    help.Model

	table    table.Model
	search   textinput.Model
	picker   components.Picker
	pickerOn pickerField

	params  filter.Params
	result  dashboard.Result
	columns []string
	export  string

	searching  bool
	prevSearch string

	status    string
	statusErr bool

	width  int
	height int
}

// NewModel evaluates the initial filters and builds the dashboard.
func NewModel(session *dashboard.Session, opt Options) Model {
	columns := opt.Columns
	if len(columns) == 0 {
		columns = []string{catalog.ColTitle, catalog.ColType, catalog.ColReleaseYear, catalog.ColCountry, catalog.ColDuration}
	}
	exportPath := opt.ExportPath
	if exportPath == "" {
		exportPath = "filtered_titles.csv"
	}

	ti := textinput.New()
	ti.Placeholder = "search titles..."
	ti.CharLimit = 120
	ti.Width = 40
	ti.Prompt = "/ "
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	t := table.New(
		table.WithColumns(tableColumns(columns, 100)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Foreground(styles.LightGray).Bold(true)
	ts.Selected = ts.Selected.Foreground(styles.White).Background(styles.Crimson)
	t.SetStyles(ts)

	m := Model{
		session: session,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		table:   t,
		search:  ti,
		picker:  components.NewPicker(),
		columns: columns,
		export:  exportPath,
		width:   100,
		height:  40,
	}
	p := session.DefaultParams()
	if opt.Params != nil {
		p = opt.Params.Clone()
	}
	m.apply(p)
	if opt.Notice != "" {
		m.setStatus(opt.Notice, true)
	}
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Params returns the filters currently applied.
func (m Model) Params() filter.Params { return m.params }

// Result returns the latest evaluation.
func (m Model) Result() dashboard.Result { return m.result }

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.setStatus("export failed: "+msg.err.Error(), true)
		} else {
			m.setStatus(fmt.Sprintf("exported %d rows to %s", msg.rows, msg.path), false)
		}
		return m, nil
	}

	if m.picker.IsVisible() {
		var cmd tea.Cmd
		var submitted bool
		m.picker, cmd, submitted = m.picker.Update(msg)
		if submitted {
			p := m.params.Clone()
			if m.pickerOn == pickCountries {
				p.Countries = m.picker.Selected()
			} else {
				p.Genres = m.picker.Selected()
			}
			m.apply(p)
		}
		return m, cmd
	}

	if m.searching {
		return m.updateSearch(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(keyMsg, m.keys.CycleType):
		p := m.params.Clone()
		p.Kind = nextKind(p.Kind)
		m.apply(p)
	case key.Matches(keyMsg, m.keys.LowDown):
		m.shiftYears(-1, 0)
	case key.Matches(keyMsg, m.keys.LowUp):
		m.shiftYears(1, 0)
	case key.Matches(keyMsg, m.keys.HighDown):
		m.shiftYears(0, -1)
	case key.Matches(keyMsg, m.keys.HighUp):
		m.shiftYears(0, 1)
	case key.Matches(keyMsg, m.keys.Countries):
		m.pickerOn = pickCountries
		m.picker.Show("Countries", filter.Options(m.session.Dataset()).Countries, m.params.Countries)
	case key.Matches(keyMsg, m.keys.Genres):
		m.pickerOn = pickGenres
		m.picker.Show("Genres", filter.Options(m.session.Dataset()).Genres, m.params.Genres)
	case key.Matches(keyMsg, m.keys.Search):
		m.searching = true
		m.prevSearch = m.params.Search
		m.search.SetValue(m.params.Search)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(keyMsg, m.keys.ToggleStat):
		p := m.params.Clone()
		p.ShowStats = !p.ShowStats
		m.apply(p)
	case key.Matches(keyMsg, m.keys.Reset):
		m.apply(m.session.DefaultParams())
		m.setStatus("filters reset", false)
	case key.Matches(keyMsg, m.keys.Select):
		if _, err := m.session.Select(m.table.Cursor()); err != nil {
			m.setStatus(err.Error(), true)
		} else {
			m.result = m.session.Last()
		}
	case key.Matches(keyMsg, m.keys.Clear):
		m.session.ClearSelection()
		m.result = m.session.Last()
	case key.Matches(keyMsg, m.keys.Export):
		return m, exportCmd(m.export, m.result.View)
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		case "esc":
			m.searching = false
			m.search.Blur()
			p := m.params.Clone()
			p.Search = m.prevSearch
			m.apply(p)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.params.Search {
		p := m.params.Clone()
		p.Search = m.search.Value()
		m.apply(p)
	}
	return m, cmd
}

// apply evaluates p and refreshes the table; invalid filters keep the previous state.
func (m *Model) apply(p filter.Params) {
	r, err := m.session.Evaluate(p)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.params = r.Params
	m.result = r
	m.status = ""
	m.refreshRows()
}

func (m *Model) shiftYears(dLow, dHigh int) {
	ds := m.session.Dataset()
	if !ds.HasYears {
		m.setStatus("no release years in this catalog", true)
		return
	}
	r := m.params.Years
	if r.IsZero() {
		r = ds.YearDomain
	}
	r.Low = clamp(r.Low+dLow, ds.YearDomain.Low, r.High)
	r.High = clamp(r.High+dHigh, r.Low, ds.YearDomain.High)
	p := m.params.Clone()
	p.Years = r
	m.apply(p)
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, len(m.result.View.Titles))
	for i, t := range m.result.View.Titles {
		row := make(table.Row, len(m.columns))
		for j, c := range m.columns {
			row[j] = t.Value(c)
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	switch {
	case m.result.Position >= 0:
		m.table.SetCursor(m.result.Position)
	case m.table.Cursor() >= len(rows):
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *Model) resize() {
	m.table.SetColumns(tableColumns(m.columns, m.width-4))
	h := m.height / 3
	if h < 5 {
		h = 5
	}
	m.table.SetHeight(h)
	m.table.SetWidth(m.width - 2)
	m.help.Width = m.width
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func exportCmd(path string, v filter.View) tea.Cmd {
	return func() tea.Msg {
		n, err := dashboard.ExportCSV(path, v, nil)
		return exportedMsg{path: path, rows: n, err: err}
	}
}

func nextKind(k catalog.Kind) catalog.Kind {
	switch k {
	case catalog.KindMovie:
		return catalog.KindTVShow
	case catalog.KindTVShow:
		return filter.KindAll
	default:
		return catalog.KindMovie
	}
}

var columnWidths = map[string]int{
	catalog.ColType:        8,
	catalog.ColReleaseYear: 6,
	catalog.ColCountry:     20,
	catalog.ColDuration:    10,
	catalog.ColRating:      8,
	catalog.ColListedIn:    28,
	catalog.ColDirector:    20,
}

var columnTitles = map[string]string{
	catalog.ColTitle:       "Title",
	catalog.ColType:        "Type",
	catalog.ColReleaseYear: "Year",
	catalog.ColCountry:     "Country",
	catalog.ColDuration:    "Duration",
	catalog.ColRating:      "Rating",
	catalog.ColListedIn:    "Genres",
	catalog.ColDirector:    "Director",
	catalog.ColCast:        "Cast",
	catalog.ColDescription: "Description",
}

// tableColumns gives fixed widths to short columns and the rest to the first flexible one.
func tableColumns(columns []string, width int) []table.Column {
	out := make([]table.Column, len(columns))
	used, flex := 0, -1
	for i, c := range columns {
		title := columnTitles[c]
		if title == "" {
			title = c
		}
		w, ok := columnWidths[c]
		if !ok {
			if flex < 0 {
				flex = i
			}
			w = 16
		}
		out[i] = table.Column{Title: title, Width: w}
		if i != flex {
			used += w + 2
		}
	}
	if flex >= 0 {
		w := width - used - 2
		if w < 16 {
			w = 16
		}
		out[flex].Width = w
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// filterSummary describes the active filters in one line.
func filterSummary(p filter.Params, ds *catalog.Dataset) string {
	years := "all"
	switch {
	case !p.Years.IsZero():
		years = fmt.Sprintf("%d–%d", p.Years.Low, p.Years.High)
	case ds.HasYears:
		years = fmt.Sprintf("%d–%d", ds.YearDomain.Low, ds.YearDomain.High)
	}
	list := func(v []string) string {
		if len(v) == 0 {
			return filter.All
		}
		return strings.Join(v, ", ")
	}
	parts := []string{
		"type: " + string(p.Kind),
		"years: " + years,
		"countries: " + list(p.Countries),
		"genres: " + list(p.Genres),
	}
	if p.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", p.Search))
	}
	if p.ShowStats {
		parts = append(parts, "extended stats")
	}
	return strings.Join(parts, " · ")
}
