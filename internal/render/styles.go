package render

import "github.com/charmbracelet/lipgloss"

const (
	colorMatched = lipgloss.Color("#538D4E")
	colorPresent = lipgloss.Color("#B59F3B")
	colorAbsent  = lipgloss.Color("#666666")
	colorStruck  = lipgloss.Color("#8B0000")
	colorLight   = lipgloss.Color("#FAFAFA")
)

type styles struct {
	banner    lipgloss.Style
	matched   lipgloss.Style
	present   lipgloss.Style
	absent    lipgloss.Style
	empty     lipgloss.Style
	keyStruck lipgloss.Style
	success   lipgloss.Style
	failure   lipgloss.Style
	info      lipgloss.Style
	errorMsg  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		banner: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D9BF4")),
		matched: r.NewStyle().Bold(true).
			Foreground(colorLight).
			Background(colorMatched),
		present: r.NewStyle().Bold(true).
			Foreground(colorLight).
			Background(colorPresent),
		absent: r.NewStyle().
			Foreground(colorLight).
			Background(colorAbsent),
		empty: r.NewStyle().Faint(true),
		keyStruck: r.NewStyle().Bold(true).Italic(true).Strikethrough(true).
			Foreground(colorStruck),
		success:  r.NewStyle().Bold(true).Foreground(colorMatched),
		failure:  r.NewStyle().Bold(true),
		info:     r.NewStyle().Foreground(lipgloss.Color("#626262")),
		errorMsg: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	}
}
