package styles

import (
	"github.com/charmbracelet/lipgloss"

	"tick/internal/models"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	Primary lipgloss.Color
	Accent  lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Border    lipgloss.Color
	Selection lipgloss.Color
}

// Dark is the default color theme
var Dark = Theme{
	Name: "dark",

	Foreground:    lipgloss.Color("#EDEDED"),
	ForegroundDim: lipgloss.Color("#B5B5B5"),

	Primary: lipgloss.Color("#4C8DFF"),
	Accent:  lipgloss.Color("#9B6BFF"),

	Success: lipgloss.Color("#2ECC71"),
	Warning: lipgloss.Color("#F5A623"),
	Error:   lipgloss.Color("#FF5C5C"),

	Border:    lipgloss.Color("#2E2E2E"),
	Selection: lipgloss.Color("#1F1F1F"),
}

// Light is the alternate theme for light terminals
var Light = Theme{
	Name: "light",

	Foreground:    lipgloss.Color("#111111"),
	ForegroundDim: lipgloss.Color("#6B6B6B"),

	Primary: lipgloss.Color("#4C8DFF"),
	Accent:  lipgloss.Color("#9B6BFF"),

	Success: lipgloss.Color("#2ECC71"),
	Warning: lipgloss.Color("#F5A623"),
	Error:   lipgloss.Color("#FF5C5C"),

	Border:    lipgloss.Color("#EFEFEF"),
	Selection: lipgloss.Color("#F9F9F9"),
}

// Current holds the active theme
var Current = Dark

// Use activates the named theme; unknown names keep the default
func Use(name string) {
	if name == "light" {
		Current = Light
	} else {
		Current = Dark
	}
}

// Styles holds the pre-computed styles for the UI
type Styles struct {
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	ListDone     lipgloss.Style
	Subtask      lipgloss.Style

	Tag   lipgloss.Style
	Due   lipgloss.Style
	Timer lipgloss.Style

	Input lipgloss.Style

	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	Status   lipgloss.Style
	Danger   lipgloss.Style
	Progress lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 1).
			Bold(true),

		ListDone: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Strikethrough(true).
			Padding(0, 1),

		Subtask: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1).
			MarginLeft(4),

		Tag: lipgloss.NewStyle().
			Foreground(t.Accent),

		Due: lipgloss.NewStyle().
			Foreground(t.Warning),

		Timer: lipgloss.NewStyle().
			Foreground(t.Success).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 1),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Status: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),

		Danger: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		Progress: lipgloss.NewStyle().
			Foreground(t.Success),
	}
}

// PriorityColor maps a task priority to its semantic color
func PriorityColor(p models.Priority) lipgloss.Color {
	switch p {
	case models.PriorityHigh:
		return Current.Error
	case models.PriorityLow:
		return Current.Success
	default:
		return Current.Warning
	}
}
