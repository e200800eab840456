package render

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors used by terminal views.
type Theme struct {
	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Border  string
	Bar     string
}

// DefaultTheme returns the palette used when stdout is a terminal.
func DefaultTheme() Theme {
	return Theme{
		Text:    "#E6E6E6",
		Muted:   "#8A8F98",
		Accent:  "#7AA2F7",
		Success: "#9ECE6A",
		Warning: "#E0AF68",
		Danger:  "#F7768E",
		Border:  "#414868",
		Bar:     "#7DCFFF",
	}
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Danger   lipgloss.Style
	Border   lipgloss.Style
	Bar      lipgloss.Style
	Card     lipgloss.Style
	CardHead lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Padding(0, 1),

		Cell: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Border: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Border)),

		Bar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Bar)),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 2),

		CardHead: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
	}
}

// plainStyles keeps layout (padding, borders) but drops color and emphasis.
func plainStyles() Styles {
	pad := lipgloss.NewStyle().Padding(0, 1)
	none := lipgloss.NewStyle()
	return Styles{
		Title:    none,
		Header:   pad,
		Cell:     pad,
		Label:    none,
		Value:    none,
		Muted:    none,
		Accent:   none,
		Success:  none,
		Warning:  none,
		Danger:   none,
		Border:   none,
		Bar:      none,
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2),
		CardHead: none,
	}
}
