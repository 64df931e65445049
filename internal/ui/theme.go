package ui

import (
	"charm.land/lipgloss/v2"
)

// Color palette: pastel tints on a dark terminal.
var (
	CategoryColor = lipgloss.Color("#96FFFF") // Cyan
	FrontColor    = lipgloss.Color("#FF96FF") // Pink
	BackColor     = lipgloss.Color("#FFFF96") // Yellow
	LabelColor    = lipgloss.Color("#9696FF") // Lavender
	SuccessColor  = lipgloss.Color("#22C55E") // Green
	ErrorColor    = lipgloss.Color("#F43F5E") // Rose
)

var (
	categoryStyle  = lipgloss.NewStyle().Foreground(CategoryColor)
	frontStyle     = lipgloss.NewStyle().Foreground(FrontColor)
	backStyle      = lipgloss.NewStyle().Foreground(BackColor)
	labelStyle     = lipgloss.NewStyle().Foreground(LabelColor)
	headingStyle   = lipgloss.NewStyle().Bold(true)
	correctStyle   = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true)
	incorrectStyle = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
)

// Styles paints text for terminal output. The zero value prints plain text.
type Styles struct {
	color bool
}

// NewStyles returns Styles that emit color escapes when color is true.
func NewStyles(color bool) Styles {
	return Styles{color: color}
}

// Plain returns Styles that never emit escape sequences.
func Plain() Styles {
	return Styles{}
}

func (s Styles) render(st lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return st.Render(text)
}

func (s Styles) Category(text string) string  { return s.render(categoryStyle, text) }
func (s Styles) Front(text string) string     { return s.render(frontStyle, text) }
func (s Styles) Back(text string) string      { return s.render(backStyle, text) }
func (s Styles) Label(text string) string     { return s.render(labelStyle, text) }
func (s Styles) Heading(text string) string   { return s.render(headingStyle, text) }
func (s Styles) Correct(text string) string   { return s.render(correctStyle, text) }
func (s Styles) Incorrect(text string) string { return s.render(incorrectStyle, text) }
