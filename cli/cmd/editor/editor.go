package editor

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/lmx/lang"
	"github.com/ardnew/lmx/log"
)

// Session is the content of the editor panes and the last expansion.
type Session struct {
	Program string
	Defs    string
	Output  string
}

// Styles.
var (
	focusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6"))
	blurredBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8"))
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	okStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

type pane int

const (
	paneProgram pane = iota
	paneDefs
	paneCount
)

var paneTitles = [paneCount]string{"program", "definitions"}

// editedMsg is sent when an external edit of a pane completes.
type editedMsg struct {
	pane    pane
	content string
	err     error
}

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// model is the Bubble Tea model for the editor.
type model struct {
	ctxFunc  func() context.Context
	logger   log.Logger
	strict   bool
	keys     keyMap
	help     help.Model
	panes    [paneCount]textarea.Model
	focus    pane
	output   viewport.Model
	result   string
	err      error
	names    []string
	comp     completion
	hasComp  bool
	width    int
	height   int
	quitting bool
}

// Run starts the interactive editor with the given initial content and
// returns the content of the panes when the user quits.
func Run(
	ctx context.Context,
	s Session,
	logger log.Logger,
	strict bool,
) (_ Session, err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "editor start",
		slog.Int("program_bytes", len(s.Program)),
		slog.Int("defs_bytes", len(s.Defs)),
	)

	m := newModel(ctx, s, logger, strict)

	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return s, err
	}

	if fm, ok := final.(model); ok {
		return fm.session(), nil
	}

	return m.session(), nil
}

func newModel(
	ctx context.Context,
	s Session,
	logger log.Logger,
	strict bool,
) model {
	m := model{
		ctxFunc: func() context.Context { return ctx },
		logger:  logger,
		strict:  strict,
		keys:    defaultKeyMap(),
		help:    help.New(),
		output:  viewport.New(defaultWidth, defaultHeight/2),
	}

	for p, content := range [paneCount]string{s.Program, s.Defs} {
		ta := textarea.New()
		ta.Placeholder = paneTitles[p]
		ta.ShowLineNumbers = true
		ta.CharLimit = 0
		ta.MaxHeight = 0
		ta.SetValue(content)
		m.panes[p] = ta
	}

	m.panes[paneProgram].Focus()
	m = m.resize(defaultWidth, defaultHeight)

	return m.expand()
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case editedMsg:
		if msg.err != nil {
			m.err = msg.err

			return m, nil
		}

		m.panes[msg.pane].SetValue(msg.content)

		return m.expand(), nil
	}

	var cmd tea.Cmd

	m.panes[m.focus], cmd = m.panes[m.focus].Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "editor keypress",
		slog.String("key", msg.String()),
	)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true

		return m, tea.Quit

	case key.Matches(msg, m.keys.Run):
		return m.expand(), nil

	case key.Matches(msg, m.keys.Switch):
		return m.switchPane(), nil

	case key.Matches(msg, m.keys.Complete):
		return m.acceptCompletion(), nil

	case key.Matches(msg, m.keys.Edit):
		return m, m.editExternal()

	case key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDn):
		var cmd tea.Cmd

		m.output, cmd = m.output.Update(msg)

		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

		return m.resize(m.width, m.height), nil
	}

	before := m.panes[m.focus].Value()

	var cmd tea.Cmd

	m.panes[m.focus], cmd = m.panes[m.focus].Update(msg)

	if m.panes[m.focus].Value() != before {
		m = m.expand()
	}

	return m.refreshCompletion(), cmd
}

func (m model) switchPane() model {
	m.panes[m.focus].Blur()
	m.focus = (m.focus + 1) % paneCount
	m.panes[m.focus].Focus()

	return m.refreshCompletion()
}

// expand runs the program pane against the definitions pane. On failure the
// previous output is kept and the error is shown in the status line.
//
// Every keystroke produces a new definitions text, so the panes are parsed
// directly instead of through the process-wide definitions cache.
func (m model) expand() model {
	s := m.session()

	table, err := lang.ParseDefinitions(s.Defs)
	if err != nil {
		m.err = err

		return m.refreshCompletion()
	}

	m.names = table.Names()

	out, err := lang.Execute(m.ctxFunc(), lang.Preprocess(s.Program), table,
		lang.WithLogger(m.logger),
		lang.WithStrict(m.strict),
	)

	m.err = err
	if err == nil {
		m.result = out
		m.output.SetContent(strings.ReplaceAll(out, lang.Terminator, "\n"))
	}

	m.logger.TraceContext(m.ctxFunc(), "editor expand",
		slog.Bool("ok", err == nil),
		slog.Int("output_bytes", len(out)),
	)

	return m.refreshCompletion()
}

// cursorPrefix returns the text of the focused pane's current line up to
// the cursor.
func (m model) cursorPrefix() string {
	ta := m.panes[m.focus]

	lines := strings.Split(ta.Value(), "\n")
	row := ta.Line()

	if row < 0 || row >= len(lines) {
		return ""
	}

	info := ta.LineInfo()
	line := []rune(lines[row])
	col := min(info.StartColumn+info.ColumnOffset, len(line))

	return string(line[:col])
}

func (m model) refreshCompletion() model {
	m.comp, m.hasComp = completion{}, false

	if m.focus != paneProgram {
		return m
	}

	m.comp, m.hasComp = complete(m.cursorPrefix(), m.names)

	return m
}

// acceptCompletion replaces the partial word before the cursor with the
// best candidate.
func (m model) acceptCompletion() model {
	if !m.hasComp || len(m.comp.candidates) == 0 {
		return m
	}

	ta := m.panes[m.focus]

	for range len([]rune(m.comp.word)) {
		ta, _ = ta.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}

	ta.InsertString(m.comp.candidates[0] + m.comp.close)
	m.panes[m.focus] = ta

	return m.expand()
}

func (m model) editExternal() tea.Cmd {
	p := m.focus
	c := &editCommand{
		ctxFunc: m.ctxFunc,
		pattern: "lmx-" + paneTitles[p] + "-*",
		content: m.panes[p].Value(),
	}

	return tea.Exec(c, func(err error) tea.Msg {
		return editedMsg{pane: p, content: c.content, err: err}
	})
}

func (m model) session() Session {
	return Session{
		Program: m.panes[paneProgram].Value(),
		Defs:    m.panes[paneDefs].Value(),
		Output:  m.result,
	}
}

// resize lays out two input panes side by side above the output pane.
func (m model) resize(width, height int) model {
	m.width, m.height = width, height

	// borders and title rows of each box
	const chrome = 3

	paneWidth := max(width/2-chrome, 10)
	paneHeight := max((height-m.footerHeight())/2-chrome, 3)

	for p := range m.panes {
		m.panes[p].SetWidth(paneWidth)
		m.panes[p].SetHeight(paneHeight)
	}

	m.output.Width = max(width-chrome, 10)
	m.output.Height = max(height-paneHeight-m.footerHeight()-2*chrome, 3)
	m.help.Width = width

	return m
}

func (m model) footerHeight() int {
	if m.help.ShowAll {
		return 2 + len(m.keys.FullHelp()[0])
	}

	return 3
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	boxes := make([]string, paneCount)

	for p := range m.panes {
		style := blurredBorder
		if pane(p) == m.focus {
			style = focusedBorder
		}

		boxes[p] = style.Render(
			titleStyle.Render(paneTitles[p]) + "\n" + m.panes[p].View(),
		)
	}

	out := blurredBorder.Render(titleStyle.Render("output") + "\n" + m.output.View())

	var b strings.Builder

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n")
	b.WriteString(out)
	b.WriteString("\n")
	b.WriteString(m.statusView())
	b.WriteString("\n")
	b.WriteString(m.completionView())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m model) statusView() string {
	if m.err != nil {
		return errorStyle.Render("✗ " + m.err.Error())
	}

	n := 0
	if m.result != "" {
		n = strings.Count(m.result, lang.Terminator) + 1
	}

	return okStyle.Render("✓ ") + hintStyle.Render(plural(n, "line"))
}

func (m model) completionView() string {
	if !m.hasComp || len(m.comp.candidates) == 0 {
		return ""
	}

	parts := make([]string, len(m.comp.candidates))
	for i, c := range m.comp.candidates {
		if i == 0 {
			parts[i] = selectedStyle.Render(c)
		} else {
			parts[i] = suggestionStyle.Render(c)
		}
	}

	return strings.Join(parts, " ")
}

func plural(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}

	return s
}
