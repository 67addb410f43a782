package repl

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/devrc/lang"
	"github.com/ardnew/devrc/log"
)

const prompt = "➜ "

func helpMessage() string {
	return `
Commands:

  :help           Print this cruft
  :vars           List bound variables
  :envs           List environments
  :sections       List loaded sections
  :run NAME       Execute a loaded section
  :clear          Clear screen
  :quit           Exit REPL

Usage:
  Type a statement to process it (e.g. name = value, .devrc -out build/)
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to abandon the current candidate
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	in           *lang.Interpreter
	transcript   *bytes.Buffer // receives the interpreter's log records
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
}

// Run starts the REPL on the given interpreter.
//
// Every statement entered is processed by in. The records in logs to
// transcript are printed after each statement, so transcript should be the
// destination of the interpreter's logger.
func Run(
	ctx context.Context,
	in *lang.Interpreter,
	transcript *bytes.Buffer,
	history *History,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if in == nil {
		return ErrNoInterpreter
	}

	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl start",
		slog.Int("history", history.Len()),
		slog.Int("sections", in.Sections().Len()),
	)

	p := tea.NewProgram(newModel(ctx, in, transcript, history, logger), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	in *lang.Interpreter,
	transcript *bytes.Buffer,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	if transcript == nil {
		transcript = new(bytes.Buffer)
	}

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		in:         in,
		transcript: transcript,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch input := m.input.Value(); {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render("Type a statement, or :help for commands"))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()))

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyPrev(), nil

	case tea.KeyDown:
		return m.historyNext(), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)
		}

		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key (backspace, delete, arrows, ...) edits the input without
	// auto-confirming a completion.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the selected candidate by step, starting tab-cycling if needed.
// A single candidate is completed and confirmed immediately.
func (m model) cycle(step int) model {
	switch n := len(m.matches); {
	case n == 0:
		return m

	case n == 1:
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m

	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also confirms the completion when exactly one
// candidate remains and the typed word already equals it.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	if _, err := m.history.Write(input); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not write history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(formatCommand(input))

	if cmd, ok := strings.CutPrefix(input, ctrlPrefix); ok {
		return m.executeCommand(echo, strings.Fields(cmd))
	}

	m.logger.TraceContext(m.ctxFunc(), "repl statement", slog.String("input", input))

	return m, tea.Sequence(append([]tea.Cmd{echo}, m.process(func(ctx context.Context) {
		m.in.Process(ctx, input)
	})...)...)
}

// process runs fn against the interpreter and returns commands printing the
// records it logged and any failures it reported.
func (m model) process(fn func(context.Context)) []tea.Cmd {
	before := len(m.in.Diagnostics())

	m.transcript.Reset()
	fn(m.ctxFunc())

	var cmds []tea.Cmd

	if out := strings.TrimRight(m.transcript.String(), "\n"); out != "" {
		cmds = append(cmds, tea.Println(resultStyle.Render(out)))
	}

	m.transcript.Reset()

	for _, err := range m.in.Diagnostics()[before:] {
		cmds = append(cmds, tea.Println(errorStyle.Render("error: "+err.Error())))
	}

	return cmds
}

func (m model) executeCommand(echo tea.Cmd, parts []string) (model, tea.Cmd) {
	if len(parts) == 0 {
		return m, echo
	}

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", parts[0]),
		slog.Any("args", parts[1:]),
	)

	switch cmd, args := parts[0], parts[1:]; cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "v", "vars":
		return m, tea.Sequence(echo, tea.Println(m.listVariables()))

	case "e", "envs":
		return m, tea.Sequence(echo, tea.Println(m.listEnvironments()))

	case "s", "sections":
		return m, tea.Sequence(echo, tea.Println(m.listSections()))

	case "r", "run":
		if len(args) == 0 {
			return m, tea.Sequence(echo, tea.Println(errorStyle.Render("usage: :run NAME")))
		}

		return m, tea.Sequence(append([]tea.Cmd{echo}, m.process(func(ctx context.Context) {
			for _, name := range args {
				m.in.ExecuteSection(ctx, name)
			}
		})...)...)

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render(
			fmt.Sprintf("%v: %s (try :help)", ErrUnknownCommand, cmd))))
	}
}

func (m model) listVariables() string {
	vars := m.in.Variables()

	var b strings.Builder

	for _, name := range slices.Sorted(maps.Keys(vars)) {
		v := vars[name]
		fmt.Fprintf(&b, "  %s = %s %s\n", name, v.String(), hintStyle.Render(v.Kind.String()))
	}

	return b.String()
}

func (m model) listEnvironments() string {
	active, _ := m.in.ActiveEnvironment()

	var b strings.Builder

	for _, name := range m.in.ListEnvironments() {
		env, ok := m.in.Environment(name)
		if !ok {
			continue
		}

		fmt.Fprintf(&b, "  %s %s", name, hintStyle.Render(env.Path))

		if name == active {
			b.WriteString(resultStyle.Render(" (active)"))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func (m model) listSections() string {
	var b strings.Builder

	for sec := range m.in.Sections().All() {
		fmt.Fprintf(&b, "  [%s] %s\n", sec.Name,
			hintStyle.Render(fmt.Sprintf("@[%s] %d lines", sec.TypeName(), len(sec.Lines))))
	}

	return b.String()
}

func (m model) historyPrev() model {
	if m.historyIdx > 0 {
		m.historyIdx--

		if line, err := m.history.GetLine(m.historyIdx); err == nil {
			m.input.SetValue(line)
			m.input.SetCursor(len(line))
			refreshMatches(&m, false)
		}
	}

	return m
}

func (m model) historyNext() model {
	if m.historyIdx < m.history.Len()-1 {
		m.historyIdx++

		if line, err := m.history.GetLine(m.historyIdx); err == nil {
			m.input.SetValue(line)
			m.input.SetCursor(len(line))
			refreshMatches(&m, false)
		}

		return m
	}

	m.historyIdx = m.history.Len()
	m.input.SetValue("")
	refreshMatches(&m, false)

	return m
}
