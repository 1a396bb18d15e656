// Package ui is the full-screen terminal front end: a statement editor,
// a results table and a status bar showing how full the table is.
package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"fensql/pkg/database"
	"fensql/pkg/ui/base"
)

const (
	historyLimit  = 200
	historyHeight = 5
)

// Model represents the application state
type Model struct {
	database    *database.Database
	queryEditor textarea.Model
	resultTable table.Model
	historyView viewport.Model
	spinner     spinner.Model
	help        help.Model
	highlighter *StatementHighlighter

	width      int
	height     int
	executing  bool
	showHelp   bool
	lastResult database.QueryResult
	lastError  error
	history    []string

	lastQueryTime time.Duration
	keys          keyMap
}

func NewModel(db *database.Database) Model {
	ta := textarea.New()
	ta.Placeholder = "insert 1 fendross foo@bar.com\nselect"
	ta.CharLimit = 5000
	ta.ShowLineNumbers = true
	ta.SetHeight(6)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle().Background(bgLight)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(textMuted)
	ta.FocusedStyle.Text = lipgloss.NewStyle().Foreground(textPrimary)
	ta.FocusedStyle.LineNumber = lipgloss.NewStyle().Foreground(textMuted)

	t := table.New(
		table.WithColumns(columnsFor(database.Columns, nil)),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(primaryColor).
		BorderBottom(true).
		Bold(true).
		Foreground(primaryColor)
	s.Selected = s.Selected.
		Foreground(bgDark).
		Background(secondaryColor).
		Bold(false)
	t.SetStyles(s)

	// The results table owns the arrow keys; history scrolls by page.
	vp := viewport.New(80, historyHeight)
	vp.KeyMap = viewport.KeyMap{
		PageUp:   keys.HistoryUp,
		PageDown: keys.HistoryDown,
	}

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		database:    db,
		queryEditor: ta,
		resultTable: t,
		historyView: vp,
		spinner:     sp,
		help:        help.New(),
		highlighter: NewStatementHighlighter(),
		keys:        keys,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textarea.Blink,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()

	case tea.KeyMsg:
		if m.executing {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Execute):
			script := m.queryEditor.Value()
			if strings.TrimSpace(script) != "" {
				m.executing = true
				return m, tea.Batch(m.spinner.Tick, m.executeScript(script))
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.queryEditor.SetValue("")
			m.lastResult = database.QueryResult{}
			m.lastError = nil
			return m, nil

		case key.Matches(msg, m.keys.ShowPages):
			return m, m.showPages()

		case key.Matches(msg, m.keys.ShowStats):
			return m, m.showStatistics()

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		}

	case queryResultMsg:
		m.executing = false
		m.lastResult = msg.result
		m.lastError = msg.err
		m.lastQueryTime = msg.duration
		m.history = append(m.history, msg.statements...)
		if len(m.history) > historyLimit {
			m.history = m.history[len(m.history)-historyLimit:]
		}
		m.updateHistory()
		m.updateResultTable()
		return m, nil

	case spinner.TickMsg:
		if m.executing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if !m.executing {
		var cmd tea.Cmd
		m.queryEditor, cmd = m.queryEditor.Update(msg)
		cmds = append(cmds, cmd)

		m.resultTable, cmd = m.resultTable.Update(msg)
		cmds = append(cmds, cmd)

		m.historyView, cmd = m.historyView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	sections := []string{
		m.renderHeader(),
		m.renderQueryEditor(),
	}

	if len(m.history) > 0 {
		sections = append(sections, m.renderHistory())
	}

	switch {
	case m.executing:
		sections = append(sections, m.renderExecuting())
	case m.lastError != nil:
		sections = append(sections, m.renderError())
	case len(m.lastResult.Columns) > 0:
		sections = append(sections, m.renderResultTable())
	case m.lastResult.Message != "":
		sections = append(sections, m.renderMessage())
	}

	sections = append(sections, m.renderStatusBar())

	if m.showHelp {
		sections = append(sections, m.renderHelp())
	}

	return appStyle.Render(strings.Join(sections, "\n"))
}

func (m Model) renderHelp() string {
	return helpStyle.Render(m.help.FullHelpView(m.keys.FullHelp()))
}

func (m Model) renderHeader() string {
	info := m.database.GetStatistics()

	title := titleStyle.Render("fensql")
	badge := dbBadgeStyle.Render(info.Name)
	counters := lipgloss.NewStyle().
		Foreground(textSecondary).
		Render(fmt.Sprintf("Rows: %s/%s | Queries: %d | Errors: %d",
			humanize.Comma(int64(info.RowCount)), humanize.Comma(int64(info.Capacity)),
			info.QueriesExecuted, info.ErrorCount))

	header := lipgloss.JoinHorizontal(lipgloss.Left, title, "  ", badge, "  ", counters)
	separator := separatorStyle.Render(strings.Repeat("─", base.Max(m.width-4, 0)))

	return header + "\n" + separator
}

func (m Model) renderQueryEditor() string {
	label := labelStyle.Render("Statements (one per line)")
	return fmt.Sprintf("%s\n%s", label, editorStyle.Render(m.queryEditor.View()))
}

func (m Model) renderHistory() string {
	return m.historyView.View()
}

// updateHistory re-renders the statement log and scrolls to the newest entry.
func (m *Model) updateHistory() {
	lines := make([]string, 0, len(m.history))
	for _, stmt := range m.history {
		lines = append(lines, historyStyle.Render("› ")+m.highlighter.Highlight(stmt))
	}
	m.historyView.SetContent(strings.Join(lines, "\n"))
	m.historyView.GotoBottom()
}

func (m Model) renderExecuting() string {
	content := lipgloss.JoinHorizontal(lipgloss.Left, m.spinner.View(), " Executing...")
	return lipgloss.NewStyle().
		Foreground(primaryColor).
		Padding(1, 0).
		Render(content)
}

func (m Model) renderError() string {
	icon := errorStyle.Render(" ERROR ")
	message := lipgloss.NewStyle().
		Foreground(errorColor).
		Render(m.lastError.Error())

	return errorBoxStyle.Render(fmt.Sprintf("%s %s", icon, message))
}

func (m Model) renderResultTable() string {
	header := lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true).
		Render(fmt.Sprintf("✓ %s (%d rows in %v)", m.lastResult.Message, len(m.lastResult.Rows), m.lastQueryTime))

	return fmt.Sprintf("%s\n%s", header, m.resultTable.View())
}

func (m Model) renderMessage() string {
	icon := successStyle.Render(" ✓ ")
	message := m.lastResult.Message
	if m.lastResult.RowsAffected > 0 {
		message = fmt.Sprintf("%s (Rows affected: %d)", message, m.lastResult.RowsAffected)
	}

	return lipgloss.NewStyle().
		Foreground(accentColor).
		Padding(1, 0).
		Render(fmt.Sprintf("%s %s", icon, message))
}

func (m Model) renderStatusBar() string {
	info := m.database.GetStatistics()

	gauge := lipgloss.NewStyle().
		Foreground(palette.FillColor(info.RowCount, info.Capacity)).
		Render(base.FillBar(info.RowCount, info.Capacity, 20))

	pages := fmt.Sprintf(" %d/%d pages (%s)", info.AllocatedPages, info.MaxPages, humanize.Bytes(info.AllocatedBytes))

	timer := ""
	if m.lastQueryTime > 0 {
		timer = fmt.Sprintf(" | Last run: %v", m.lastQueryTime)
	}

	content := gauge + lipgloss.NewStyle().
		Foreground(textMuted).
		Render(pages+timer+" | Press Ctrl+H for help")

	return statusBarStyle.
		Width(base.Max(m.width-4, 0)).
		Render(content)
}

// columnsFor sizes each column to its widest cell within bounds.
func columnsFor(names []string, rows [][]string) []table.Column {
	const (
		maxWidth = 40
		minWidth = 8
	)

	columns := make([]table.Column, len(names))
	for i, name := range names {
		width := len(name) + 2
		for _, r := range rows {
			if i < len(r) && len(r[i])+2 > width {
				width = len(r[i]) + 2
			}
		}
		width = min(max(width, minWidth), maxWidth)
		columns[i] = table.Column{Title: name, Width: width}
	}
	return columns
}

// updateLayout adjusts component sizes based on window size
func (m *Model) updateLayout() {
	editorHeight := 6
	resultHeight := base.Max(m.height-editorHeight-historyHeight-12, 3)

	m.queryEditor.SetWidth(base.Max(m.width-6, 10))
	m.historyView.Width = base.Max(m.width-6, 10)
	m.resultTable.SetHeight(resultHeight)
}

func (m *Model) updateResultTable() {
	if len(m.lastResult.Columns) == 0 {
		m.resultTable.Blur()
		return
	}

	columns := columnsFor(m.lastResult.Columns, m.lastResult.Rows)
	rows := make([]table.Row, len(m.lastResult.Rows))
	for i, r := range m.lastResult.Rows {
		cells := make(table.Row, len(r))
		for j, cell := range r {
			cells[j] = base.TruncateString(cell, columns[j].Width)
		}
		rows[i] = cells
	}

	// Columns first: SetRows renders against the current columns.
	m.resultTable.SetRows(nil)
	m.resultTable.SetColumns(columns)
	m.resultTable.SetRows(rows)
	m.resultTable.GotoTop()
	m.resultTable.Focus()
}

type queryResultMsg struct {
	statements []string
	result     database.QueryResult
	err        error
	duration   time.Duration
}

// executeScript runs every non-empty line of script in order and stops at
// the first failure. The message carries the result of the last statement run.
func (m Model) executeScript(script string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		msg := queryResultMsg{}

		for _, line := range strings.Split(script, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			msg.statements = append(msg.statements, line)
			msg.result, msg.err = m.database.ExecuteQuery(context.Background(), line)
			if msg.err != nil {
				break
			}
		}

		msg.duration = time.Since(start)
		return msg
	}
}

// showStatistics displays database statistics
func (m Model) showStatistics() tea.Cmd {
	return func() tea.Msg {
		stats := m.database.GetStatistics()

		rows := [][]string{
			{"Table", stats.Name},
			{"Session", stats.SessionID},
			{"Rows", fmt.Sprintf("%s of %s", humanize.Comma(int64(stats.RowCount)), humanize.Comma(int64(stats.Capacity)))},
			{"Pages", fmt.Sprintf("%d of %d", stats.AllocatedPages, stats.MaxPages)},
			{"Memory", fmt.Sprintf("%s of %s", humanize.Bytes(stats.AllocatedBytes), humanize.Bytes(stats.CapacityBytes))},
			{"Queries Executed", strconv.FormatInt(stats.QueriesExecuted, 10)},
			{"Inserts", strconv.FormatInt(stats.InsertsCount, 10)},
			{"Selects", strconv.FormatInt(stats.SelectsCount, 10)},
			{"Errors", strconv.FormatInt(stats.ErrorCount, 10)},
		}

		return queryResultMsg{
			result: database.QueryResult{
				Success: true,
				Columns: []string{"Metric", "Value"},
				Rows:    rows,
				Message: "Statistics",
			},
		}
	}
}

// showPages lists allocated pages with their row counts and checksums
func (m Model) showPages() tea.Cmd {
	return func() tea.Msg {
		report := m.database.PageReport()

		rows := make([][]string, 0, len(report))
		for _, p := range report {
			rows = append(rows, []string{
				strconv.FormatUint(uint64(p.Number), 10),
				strconv.FormatUint(uint64(p.Rows), 10),
				p.Checksum.Short(),
			})
		}

		return queryResultMsg{
			result: database.QueryResult{
				Success: true,
				Columns: []string{"Page", "Rows", "BLAKE3"},
				Rows:    rows,
				Message: "Pages",
			},
		}
	}
}
