package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/scicalc/internal/calc"
	"github.com/csheth/scicalc/internal/eval"
)

func newTestModel(t *testing.T) *model {
	t.Helper()
	teaModel, ok := New(Config{}).(*model)
	if !ok {
		t.Fatalf("expected *model, got %T", teaModel)
	}
	return teaModel
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeKeys(m *model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

func TestNewModelStartsEmpty(t *testing.T) {
	m := newTestModel(t)
	if m.state.Expression != "" || m.state.Display != calc.Placeholder {
		t.Fatalf("unexpected initial state: %+v", m.state)
	}
	if m.state.Angle != eval.Radians {
		t.Fatalf("default angle = %v", m.state.Angle)
	}
	if m.focus != focusKeypad {
		t.Fatalf("focus = %v, want keypad", m.focus)
	}
}

func TestShortcutsBuildAndEvaluateExpression(t *testing.T) {
	m := newTestModel(t)
	for _, r := range "12*12" {
		typeKeys(m, runes(string(r)))
	}
	if m.state.Expression != "12*12" {
		t.Fatalf("expression = %q", m.state.Expression)
	}
	typeKeys(m, runes("="))
	if m.state.Display != "144" || m.state.Expression != "144" {
		t.Fatalf("evaluate produced %+v", m.state)
	}
	if m.infoMessage != "= 144" {
		t.Fatalf("info message = %q", m.infoMessage)
	}
}

func TestPastedRunesArePressedIndividually(t *testing.T) {
	m := newTestModel(t)
	typeKeys(m, runes("2^10="))
	if m.state.Display != "1024" {
		t.Fatalf("display = %q, want 1024", m.state.Display)
	}
}

func TestUnknownRunesAreIgnored(t *testing.T) {
	m := newTestModel(t)
	typeKeys(m, runes("z"), runes("#"))
	if m.state.Expression != "" {
		t.Fatalf("expression = %q, want empty", m.state.Expression)
	}
}

func TestDegreeModeFromConfig(t *testing.T) {
	m, ok := New(Config{Angle: eval.Degrees}).(*model)
	if !ok {
		t.Fatal("expected *model")
	}
	typeKeys(m, runes("s30)="))
	if m.state.Display != "0.5" {
		t.Fatalf("sin(30) in degrees = %q", m.state.Display)
	}
	if !strings.Contains(m.View(), "DEG") {
		t.Fatal("view should show the DEG badge")
	}
}

func TestFailedEvaluationShowsError(t *testing.T) {
	m := newTestModel(t)
	typeKeys(m, runes("2"), runes("*"), runes("="))
	if !m.state.Failed() || m.state.Expression != "" {
		t.Fatalf("expected error state, got %+v", m.state)
	}
	if m.errorMessage == "" {
		t.Fatal("error message should be set after a failed evaluation")
	}
	typeKeys(m, runes("5"))
	if m.errorMessage != "" {
		t.Fatal("next key should clear the error message")
	}
	if m.state.Expression != "5" {
		t.Fatalf("expression after error = %q", m.state.Expression)
	}
}

func TestBackspaceAndClearKeys(t *testing.T) {
	m := newTestModel(t)
	typeKeys(m, runes("1"), runes("2"), runes("3"))
	typeKeys(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.state.Expression != "12" {
		t.Fatalf("after backspace expression = %q", m.state.Expression)
	}
	typeKeys(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state.Expression != "" || m.state.Display != calc.Placeholder {
		t.Fatalf("esc should clear, got %+v", m.state)
	}
	typeKeys(m, runes("9"), tea.KeyMsg{Type: tea.KeyDelete})
	if m.state.Expression != "" {
		t.Fatalf("delete should clear, got %+v", m.state)
	}
}

func TestArrowKeysClampToRaggedRows(t *testing.T) {
	m := newTestModel(t)
	typeKeys(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyLeft})
	if m.cursorRow != 0 || m.cursorCol != 0 {
		t.Fatalf("cursor left the grid: (%d,%d)", m.cursorRow, m.cursorCol)
	}
	for i := 0; i < 10; i++ {
		typeKeys(m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.cursorCol != 4 {
		t.Fatalf("cursor col = %d, want 4", m.cursorCol)
	}
	for i := 0; i < 7; i++ {
		typeKeys(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursorRow != 7 || m.cursorCol != 1 {
		t.Fatalf("cursor = (%d,%d), want (7,1)", m.cursorRow, m.cursorCol)
	}
	if got := m.focusedKey().Label; got != "?" {
		t.Fatalf("focused key = %q, want ?", got)
	}
	for i := 0; i < 5; i++ {
		typeKeys(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursorRow != 8 || m.cursorCol != 0 {
		t.Fatalf("cursor = (%d,%d), want (8,0)", m.cursorRow, m.cursorCol)
	}
}

func TestEnterPressesFocusedKey(t *testing.T) {
	m := newTestModel(t)
	for i := 0; i < 6; i++ {
		typeKeys(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	typeKeys(m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state.Expression != "12" {
		t.Fatalf("expression = %q, want 12", m.state.Expression)
	}
}

func TestShortcutMovesFocusToButton(t *testing.T) {
	m := newTestModel(t)
	typeKeys(m, runes("="))
	if m.cursorRow != 8 || m.cursorCol != 0 {
		t.Fatalf("cursor = (%d,%d), want the = row", m.cursorRow, m.cursorCol)
	}
}

func TestFunctionEntryInsertsMatchedFunction(t *testing.T) {
	m := newTestModel(t)
	typeKeys(m, runes(":"))
	if m.focus != focusFunctionEntry || !m.fnInput.Focused() {
		t.Fatal("colon should open function entry")
	}
	typeKeys(m, runes("sqr"))
	if m.state.Expression != "" {
		t.Fatalf("typing in function entry must not reach the keypad, got %q", m.state.Expression)
	}
	typeKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus != focusKeypad {
		t.Fatal("enter should close function entry")
	}
	if m.state.Expression != "sqrt(" {
		t.Fatalf("expression = %q, want sqrt(", m.state.Expression)
	}
	typeKeys(m, runes("16)="))
	if m.state.Display != "4" {
		t.Fatalf("sqrt(16) = %q", m.state.Display)
	}
}

func TestFunctionEntryRejectsUnknownName(t *testing.T) {
	m := newTestModel(t)
	typeKeys(m, runes(":"), runes("frobnicate"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.state.Expression != "" {
		t.Fatalf("unknown function changed expression: %q", m.state.Expression)
	}
	if !strings.Contains(m.errorMessage, "frobnicate") {
		t.Fatalf("error message = %q", m.errorMessage)
	}
}

func TestFunctionEntryEscCancels(t *testing.T) {
	m := newTestModel(t)
	typeKeys(m, runes("7"), runes(":"), runes("sin"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != focusKeypad || m.fnInput.Focused() {
		t.Fatal("esc should close function entry")
	}
	if m.fnInput.Value() != "" {
		t.Fatalf("function entry should reset, got %q", m.fnInput.Value())
	}
	if m.state.Expression != "7" {
		t.Fatalf("esc in function entry must not clear the expression, got %q", m.state.Expression)
	}
}

func TestHelpToggleRendersReference(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	if strings.Contains(m.View(), "TRIGONOMETRY") {
		t.Fatal("reference should start hidden")
	}
	typeKeys(m, runes("?"))
	if !m.state.ShowHelp {
		t.Fatal("? should show help")
	}
	view := m.View()
	if !strings.Contains(view, "TRIGONOMETRY") {
		t.Fatalf("reference missing from view:\n%s", view)
	}
	if !strings.Contains(view, "Type a function") {
		t.Fatal("key legend missing from view")
	}
	typeKeys(m, runes("r"))
	if !strings.Contains(m.View(), "angles in degrees") {
		t.Fatal("reference should follow the angle unit")
	}
	typeKeys(m, runes("?"))
	if m.state.ShowHelp {
		t.Fatal("second ? should hide help")
	}
}

func TestToggleAngleModeUpdatesBadge(t *testing.T) {
	m := newTestModel(t)
	if !strings.Contains(m.View(), "RAD") {
		t.Fatal("view should show RAD badge")
	}
	typeKeys(m, runes("r"))
	if m.state.Angle != eval.Degrees {
		t.Fatalf("angle = %v", m.state.Angle)
	}
	if !strings.Contains(m.View(), "DEG") {
		t.Fatal("view should show DEG badge")
	}
}

func TestViewShowsPlaceholderAndExpression(t *testing.T) {
	m := newTestModel(t)
	if !strings.Contains(m.View(), calc.Placeholder) {
		t.Fatal("empty expression should render the placeholder")
	}
	typeKeys(m, runes("p"), runes("*"), runes("2"))
	if !strings.Contains(m.View(), "pi*2") {
		t.Fatalf("view missing expression:\n%s", m.View())
	}
}

func TestWindowSizeResizesViewport(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	if m.viewport.Width != 76 || m.viewport.Height != 11 {
		t.Fatalf("viewport = %dx%d, want 76x11", m.viewport.Width, m.viewport.Height)
	}
	if !m.viewportDirty {
		t.Fatal("resize should mark the reference dirty")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c should quit")
	}
}

func TestTailKeepsNewestInput(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"123", 5, "123"},
		{"123456789", 5, "…6789"},
		{"sin(π)", 1, "sin(π)"},
	}
	for _, tc := range cases {
		if got := tail(tc.in, tc.width); got != tc.want {
			t.Fatalf("tail(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
