package repl

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/devrc/host"
	"github.com/ardnew/devrc/lang"
	"github.com/ardnew/devrc/log"
)

func newTestModel(t *testing.T, doc string) model {
	t.Helper()

	fs := host.NewMemory("/work")

	var transcript bytes.Buffer

	in := lang.New(fs, lang.WithLogger(log.Make(&transcript)))

	if doc != "" {
		if err := fs.WriteFile("/work/main.devrc", []byte(doc)); err != nil {
			t.Fatal(err)
		}

		if err := in.Load(t.Context(), "/work/main.devrc"); err != nil {
			t.Fatal(err)
		}
	}

	return newModel(t.Context(), in, &transcript, NewHistory(""), log.Make(nil))
}

func enter(t *testing.T, m model, line string) model {
	t.Helper()

	m.input.SetValue(line)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	return next.(model)
}

func TestModel_ProcessStatement(t *testing.T) {
	m := enter(t, newTestModel(t, ""), "name = demo")

	v, ok := m.in.Variable("name")
	if !ok || v != lang.String("demo") {
		t.Errorf("Variable(name) = %v, %v; want demo", v, ok)
	}

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	if m.history.Len() != 1 {
		t.Errorf("history length = %d, want 1", m.history.Len())
	}

	if m.transcript.Len() != 0 {
		t.Errorf("transcript not drained: %q", m.transcript.String())
	}
}

func TestModel_Commands(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		quitting bool
		check    func(t *testing.T, m model)
	}{
		{name: "quit", line: ":quit", quitting: true},
		{name: "abbreviated quit", line: ":q", quitting: true},
		{
			name: "run section",
			line: ":run setup",
			check: func(t *testing.T, m model) {
				if _, ok := m.in.Variable("x"); !ok {
					t.Error("section not executed")
				}
			},
		},
		{
			name: "run missing section",
			line: ":run nowhere",
			check: func(t *testing.T, m model) {
				if len(m.in.Diagnostics()) == 0 {
					t.Error("missing section not reported")
				}
			},
		},
		{
			name: "unknown command",
			line: ":bogus",
			check: func(t *testing.T, m model) {
				if _, ok := m.in.Variable("x"); ok {
					t.Error("unknown command executed a section")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := enter(t, newTestModel(t, "[setup]\nx = 1\n"), tt.line)

			if m.quitting != tt.quitting {
				t.Errorf("quitting = %v, want %v", m.quitting, tt.quitting)
			}

			if tt.check != nil {
				tt.check(t, m)
			}
		})
	}
}

func TestModel_Listings(t *testing.T) {
	m := newTestModel(t, "#[dev]/ACTIVATE\n@[build]\n[setup]\nx = 1\n")
	m = enter(t, m, "y = 2")

	if got := m.listVariables(); !strings.Contains(got, "y = 2") {
		t.Errorf("listVariables() = %q", got)
	}

	if got := m.listEnvironments(); !strings.Contains(got, "dev") || !strings.Contains(got, "(active)") {
		t.Errorf("listEnvironments() = %q", got)
	}

	if got := m.listSections(); !strings.Contains(got, "[setup]") || !strings.Contains(got, "1 lines") {
		t.Errorf("listSections() = %q", got)
	}
}

func TestModel_TabCompletion(t *testing.T) {
	m := newTestModel(t, "")
	m = enter(t, m, "project.name = demo")

	m.input.SetValue("proj")
	m.input.SetCursor(4)
	refreshMatches(&m, false)

	if len(m.matches) == 0 {
		t.Fatal("no matches for proj")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(model)

	if !strings.HasPrefix(m.input.Value(), "project.name") {
		t.Errorf("completed input = %q, want project.name", m.input.Value())
	}
}

func TestModel_HistoryNavigation(t *testing.T) {
	m := newTestModel(t, "")
	m = enter(t, m, "a = 1")
	m = enter(t, m, "b = 2")

	m = m.historyPrev()
	if m.input.Value() != "b = 2" {
		t.Errorf("historyPrev() input = %q, want b = 2", m.input.Value())
	}

	m = m.historyPrev()
	if m.input.Value() != "a = 1" {
		t.Errorf("historyPrev() input = %q, want a = 1", m.input.Value())
	}

	m = m.historyNext()
	m = m.historyNext()

	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("historyNext() past end = %q at %d", m.input.Value(), m.historyIdx)
	}
}
