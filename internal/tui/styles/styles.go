package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Crimson    = lipgloss.Color("#E50914")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Amber      = lipgloss.Color("#F59E0B")
	Blue       = lipgloss.Color("#3B82F6")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Crimson)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Amber)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Crimson).
			Padding(0, 1)
)

// Panels
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SlateLight).
			Padding(0, 1)

	CardLabelStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	CardValueStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Crimson).
				Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Crimson).
			Background(SlateDark).
			Padding(1, 2)
)

// Charts
var (
	BarStyle      = lipgloss.NewStyle().Foreground(Crimson)
	BarLabelStyle = lipgloss.NewStyle().Foreground(LightGray)
	SparkStyle    = lipgloss.NewStyle().Foreground(Blue)
)

// Raw chart characters (unstyled)
const (
	BarChar    = "█"
	CheckChar  = "✓"
	CursorChar = "›"
)

// SparkLevels are the eight block heights used by sparklines.
var SparkLevels = []rune("▁▂▃▄▅▆▇█")
