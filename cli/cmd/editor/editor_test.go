package editor

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/lmx/lang"
	"github.com/ardnew/lmx/log"
)

func testModel(t *testing.T, program, defs string) model {
	t.Helper()

	return newModel(context.Background(),
		Session{Program: program, Defs: defs}, log.Logger{}, false)
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()

	next, _ := m.Update(msg)

	nm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}

	return nm
}

func typeText(t *testing.T, m model, s string) model {
	t.Helper()

	for _, r := range s {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return m
}

func TestNewModel_ExpandsInitialContent(t *testing.T) {
	m := testModel(t, "#foreach c in cities\n<c>\n#endfor", "cities = a,b")

	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}

	if want := "a" + lang.Terminator + "b"; m.result != want {
		t.Errorf("result = %q, want %q", m.result, want)
	}

	if !slices.Equal(m.names, []string{"cities"}) {
		t.Errorf("names = %q", m.names)
	}
}

func TestModel_TypingReexpands(t *testing.T) {
	m := testModel(t, "", "who = world")

	m = typeText(t, m, "hi <who>")

	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}

	if m.result != "hi world" {
		t.Errorf("result = %q, want %q", m.result, "hi world")
	}
}

func TestModel_ErrorKeepsPreviousOutput(t *testing.T) {
	m := testModel(t, "ok", "")

	m = update(t, m, editedMsg{pane: paneProgram, content: "ok <missing>"})

	if !errors.Is(m.err, lang.ErrUndefinedVariable) {
		t.Fatalf("err = %v, want %v", m.err, lang.ErrUndefinedVariable)
	}

	if m.result != "ok" {
		t.Errorf("result = %q, want previous output", m.result)
	}

	if !strings.Contains(m.statusView(), "undefined variable") {
		t.Errorf("status does not show the error: %q", m.statusView())
	}
}

func TestModel_SwitchPane(t *testing.T) {
	m := testModel(t, "<x>", "")

	if m.focus != paneProgram {
		t.Fatalf("initial focus = %v", m.focus)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	if m.focus != paneDefs || !m.panes[paneDefs].Focused() || m.panes[paneProgram].Focused() {
		t.Fatalf("focus after tab = %v", m.focus)
	}

	m = typeText(t, m, "x = 1")

	if m.err != nil || m.result != "1" {
		t.Errorf("result = %q, err = %v", m.result, m.err)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	if m.focus != paneProgram {
		t.Errorf("focus after second tab = %v", m.focus)
	}
}

func TestModel_Completion(t *testing.T) {
	m := testModel(t, "", "greeting = hello\nname = Ada")

	m = typeText(t, m, "<gre")

	if !m.hasComp || len(m.comp.candidates) == 0 || m.comp.candidates[0] != "greeting" {
		t.Fatalf("completion = %+v", m.comp)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlN})

	if got := m.panes[paneProgram].Value(); got != "<greeting>" {
		t.Errorf("program after completion = %q", got)
	}

	if m.result != "hello" {
		t.Errorf("result = %q, want hello", m.result)
	}
}

func TestModel_Quit(t *testing.T) {
	m := testModel(t, "a", "")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key did not quit")
	}

	if next.(model).View() != "" {
		t.Error("view not cleared after quit")
	}
}

func TestModel_EditedMsg(t *testing.T) {
	m := testModel(t, "a", "")

	m = update(t, m, editedMsg{pane: paneDefs, content: "v = 2"})
	m = update(t, m, editedMsg{pane: paneProgram, content: "<v>"})

	if m.result != "2" {
		t.Errorf("result = %q, want 2", m.result)
	}

	boom := errors.New("editor failed")
	m = update(t, m, editedMsg{pane: paneProgram, err: boom})

	if !errors.Is(m.err, boom) {
		t.Errorf("err = %v, want %v", m.err, boom)
	}

	if got := m.session().Program; got != "<v>" {
		t.Errorf("failed edit changed program to %q", got)
	}
}

func TestModel_View(t *testing.T) {
	m := testModel(t, "hello", "")
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()

	for _, want := range []string{"program", "definitions", "output", "hello", "1 line"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestComplete(t *testing.T) {
	names := []string{"city", "country", "name"}

	tests := []struct {
		before string
		ok     bool
		word   string
		first  string
	}{
		{"hello <ci", true, "ci", "city"},
		{"<", true, "", "city"},
		{"<city> and <na", true, "na", "name"},
		{"<city> done", false, "", ""},
		{"<a b", false, "", ""},
		{"#for", true, "for", "foreach"},
		{"  # end", true, "end", "endif"},
		{"#if x", false, "", ""},
		{"plain", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.before, func(t *testing.T) {
			c, ok := complete(tt.before, names)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}

			if !ok {
				return
			}

			if c.word != tt.word {
				t.Errorf("word = %q, want %q", c.word, tt.word)
			}

			if len(c.candidates) == 0 || c.candidates[0] != tt.first {
				t.Errorf("candidates = %q, want first %q", c.candidates, tt.first)
			}
		})
	}
}

func TestEditCommand(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "true")

	c := &editCommand{
		ctxFunc: context.Background,
		pattern: "lmx-test-*",
		content: "unchanged",
	}

	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if c.content != "unchanged" {
		t.Errorf("content = %q", c.content)
	}

	t.Setenv("EDITOR", "false")

	if err := c.Run(); err == nil {
		t.Error("expected error from failing editor")
	}
}

func TestModel_TypingDoesNotGrowCache(t *testing.T) {
	lang.ClearCache()
	t.Cleanup(lang.ClearCache)

	m := testModel(t, "<greeting>", "")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(t, m, "greeting = hello there")

	if m.err != nil || m.result != "hello there" {
		t.Fatalf("result = %q, err = %v", m.result, m.err)
	}

	if n := lang.CacheLen(); n != 0 {
		t.Errorf("definitions cache holds %d entries after typing, want 0", n)
	}
}

func TestModel_InvalidDefinitions(t *testing.T) {
	m := testModel(t, "<a>", "a = 1")

	m = update(t, m, editedMsg{pane: paneDefs, content: "a = 1\nb = x:1,y"})

	if !errors.Is(m.err, lang.ErrAmbiguousVariableType) {
		t.Fatalf("err = %v, want %v", m.err, lang.ErrAmbiguousVariableType)
	}

	if m.result != "1" {
		t.Errorf("result = %q, want previous output", m.result)
	}

	if !slices.Equal(m.names, []string{"a"}) {
		t.Errorf("names = %q, want names of the last valid definitions", m.names)
	}
}
