package board

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the board view.
type Styles struct {
	Title        lipgloss.Style
	Form         lipgloss.Style
	SelectedForm lipgloss.Style
	Block        lipgloss.Style
	Cursor       lipgloss.Style
	Dragging     lipgloss.Style
	Formname     lipgloss.Style
	Required     lipgloss.Style
	Notice       lipgloss.Style
	Help         lipgloss.Style
}

// DefaultStyles mirrors the web editor palette: an accent blue heading and
// dashed cards that turn solid for the selected form.
func DefaultStyles() Styles {
	accent := lipgloss.Color("39")
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginBottom(1),
		Form: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		SelectedForm: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Block: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("236")),
		Dragging: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")),
		Formname: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Required: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}
