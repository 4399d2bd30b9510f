package components

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/catalogdash/internal/tui/styles"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

const pickerRows = 10

// Picker is a multi-select modal over a list of values, narrowed by fuzzy query.
// Choosing nothing means "All".
type Picker struct {
	visible bool
	title   string

	options []string
	lower   []string
	chosen  map[string]bool

	input   textinput.Model
	matches []int // indices into options, best match first
	cursor  int
	offset  int
}

// NewPicker creates a hidden picker
func NewPicker() Picker {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.CharLimit = 64
	ti.Width = 30
	ti.Prompt = "/ "
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle
	return Picker{input: ti, chosen: map[string]bool{}}
}

// Show opens the picker with the given options and current selection.
func (p *Picker) Show(title string, options, selected []string) {
	p.visible = true
	p.title = title
	p.options = options
	p.lower = make([]string, len(options))
	for i, o := range options {
		p.lower[i] = strings.ToLower(o)
	}
	p.chosen = map[string]bool{}
	for _, s := range selected {
		p.chosen[strings.ToLower(s)] = true
	}
	p.input.SetValue("")
	p.input.Focus()
	p.refilter()
}

// Hide dismisses the picker
func (p *Picker) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns whether the picker is shown
func (p Picker) IsVisible() bool {
	return p.visible
}

// Title returns the picker's heading
func (p Picker) Title() string {
	return p.title
}

// Selected returns the chosen values in option order.
func (p Picker) Selected() []string {
	var out []string
	for i, o := range p.options {
		if p.chosen[p.lower[i]] {
			out = append(out, o)
		}
	}
	return out
}

// Matches returns the options currently shown, best match first.
func (p Picker) Matches() []string {
	out := make([]string, len(p.matches))
	for i, idx := range p.matches {
		out[i] = p.options[idx]
	}
	return out
}

func (p *Picker) refilter() {
	query := strings.ToLower(strings.TrimSpace(p.input.Value()))
	if query == "" {
		p.matches = make([]int, len(p.options))
		for i := range p.options {
			p.matches[i] = i
		}
	} else {
		found := fuzzy.Find(query, p.lower)
		p.matches = make([]int, len(found))
		for i, m := range found {
			p.matches[i] = m.Index
		}
	}
	p.cursor = 0
	p.offset = 0
}

func (p *Picker) move(delta int) {
	if len(p.matches) == 0 {
		return
	}
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= len(p.matches) {
		p.cursor = len(p.matches) - 1
	}
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if p.cursor >= p.offset+pickerRows {
		p.offset = p.cursor - pickerRows + 1
	}
}

func (p *Picker) toggle() {
	if len(p.matches) == 0 {
		return
	}
	k := p.lower[p.matches[p.cursor]]
	if p.chosen[k] {
		delete(p.chosen, k)
	} else {
		p.chosen[k] = true
	}
}

// Update handles input events, returns (picker, cmd, submitted)
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd, bool) {
	if !p.visible {
		return p, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			p.Hide()
			return p, nil, true
		case "esc":
			p.Hide()
			return p, nil, false
		case "up", "ctrl+p":
			p.move(-1)
			return p, nil, false
		case "down", "ctrl+n":
			p.move(1)
			return p, nil, false
		case "tab":
			p.toggle()
			return p, nil, false
		case "ctrl+a":
			p.chosen = map[string]bool{}
			return p, nil, false
		}
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.refilter()
	}
	return p, cmd, false
}

// View renders the picker modal
func (p Picker) View() string {
	if !p.visible {
		return ""
	}
	const width = 40

	var rows []string
	rows = append(rows, styles.TitleStyle.Render(p.title), p.input.View(), "")
	if len(p.matches) == 0 {
		rows = append(rows, styles.DimStyle.Render("no matches"))
	}
	end := p.offset + pickerRows
	if end > len(p.matches) {
		end = len(p.matches)
	}
	for i := p.offset; i < end; i++ {
		idx := p.matches[i]
		mark := " "
		if p.chosen[p.lower[idx]] {
			mark = styles.SuccessStyle.Render(styles.CheckChar)
		}
		cursor := " "
		label := p.options[idx]
		if i == p.cursor {
			cursor = styles.AccentStyle.Render(styles.CursorChar)
			label = styles.TitleStyle.Render(label)
		}
		rows = append(rows, fmt.Sprintf("%s %s %s", cursor, mark, label))
	}
	chosen := len(p.chosen)
	status := "All"
	if chosen > 0 {
		status = fmt.Sprintf("%d selected", chosen)
	}
	rows = append(rows, "", styles.DimStyle.Render(fmt.Sprintf("%s · tab toggle · ctrl+a all · enter apply · esc cancel", status)))

	return styles.ModalStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
