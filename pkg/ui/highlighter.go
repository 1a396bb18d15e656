package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	keywords = []string{"INSERT", "SELECT"}

	metaCommands = []string{".exit", ".help", ".constants", ".pages", ".stats"}
)

// StatementHighlighter colors the words of a statement line
type StatementHighlighter struct {
	keywords     map[string]bool
	metaCommands map[string]bool
	keywordStyle lipgloss.Style
	metaStyle    lipgloss.Style
	numberStyle  lipgloss.Style
	emailStyle   lipgloss.Style
	errorStyle   lipgloss.Style
}

func NewStatementHighlighter() *StatementHighlighter {
	h := &StatementHighlighter{
		keywords:     make(map[string]bool),
		metaCommands: make(map[string]bool),
	}

	for _, kw := range keywords {
		h.keywords[kw] = true
		h.keywords[strings.ToLower(kw)] = true
	}
	for _, mc := range metaCommands {
		h.metaCommands[mc] = true
	}

	h.keywordStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF79C6")).
		Bold(true)

	h.metaStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8BE9FD")).
		Bold(true)

	h.numberStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#BD93F9"))

	h.emailStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F1FA8C"))

	h.errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5555")).
		Underline(true)

	return h
}

// Highlight returns the line with each word styled. Whitespace runs
// collapse to single spaces.
func (h *StatementHighlighter) Highlight(line string) string {
	words := strings.Fields(line)
	highlighted := make([]string, 0, len(words))

	for i, word := range words {
		switch {
		case i == 0 && h.keywords[strings.ToUpper(word)]:
			highlighted = append(highlighted, h.keywordStyle.Render(word))
		case i == 0 && h.metaCommands[word]:
			highlighted = append(highlighted, h.metaStyle.Render(word))
		case i == 0:
			highlighted = append(highlighted, h.errorStyle.Render(word))
		case isNumeric(word):
			highlighted = append(highlighted, h.numberStyle.Render(word))
		case strings.Contains(word, "@"):
			highlighted = append(highlighted, h.emailStyle.Render(word))
		default:
			highlighted = append(highlighted, word)
		}
	}

	return strings.Join(highlighted, " ")
}

// isNumeric checks if a string is an optionally signed integer
func isNumeric(s string) bool {
	s = strings.TrimPrefix(s, "-")
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
