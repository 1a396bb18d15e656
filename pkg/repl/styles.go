package repl

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles paints shell output. The zero value leaves text untouched.
type styles struct {
	promptStyle  *lipgloss.Style
	errStyle     *lipgloss.Style
	okStyle      *lipgloss.Style
	headingStyle *lipgloss.Style
}

func newStyles(out io.Writer, enabled bool) styles {
	if !enabled {
		return styles{}
	}

	renderer := lipgloss.NewRenderer(out)
	prompt := renderer.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	errStyle := renderer.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	ok := renderer.NewStyle().Foreground(lipgloss.Color("#04B575"))
	heading := renderer.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true).Underline(true)

	return styles{
		promptStyle:  &prompt,
		errStyle:     &errStyle,
		okStyle:      &ok,
		headingStyle: &heading,
	}
}

func paint(style *lipgloss.Style, s string) string {
	if style == nil {
		return s
	}
	return style.Render(s)
}

func (s styles) prompt(text string) string  { return paint(s.promptStyle, text) }
func (s styles) err(text string) string     { return paint(s.errStyle, text) }
func (s styles) ok(text string) string      { return paint(s.okStyle, text) }
func (s styles) heading(text string) string { return paint(s.headingStyle, text) }
