package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"

	"github.com/csheth/scicalc/internal/calc"
	"github.com/csheth/scicalc/internal/cheatsheet"
	"github.com/csheth/scicalc/internal/eval"
	"github.com/csheth/scicalc/internal/keypad"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Reducer *calc.Reducer
	Angle   eval.AngleUnit
	Logger  *zap.Logger
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Reducer == nil {
		config.Reducer = calc.NewReducer(eval.NewEngine())
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	fnInput := textinput.New()
	fnInput.Prompt = "ƒ "
	fnInput.Placeholder = functionPlaceholder
	fnInput.CharLimit = 16
	fnInput.Width = 24

	vp := viewport.New(60, 10)
	vp.MouseWheelEnabled = true

	return &model{
		config:        config,
		state:         calc.NewWithAngle(config.Angle),
		focus:         focusKeypad,
		keys:          newKeyMap(),
		layout:        newPageLayout(),
		fnInput:       fnInput,
		viewport:      vp,
		viewportDirty: true,
		infoMessage:   readyMessage,
	}
}

type model struct {
	config Config
	state  calc.State
	focus  focusArea
	keys   keyMap
	layout pageLayout

	cursorRow int
	cursorCol int

	fnInput       textinput.Model
	viewport      viewport.Model
	viewportDirty bool

	infoMessage  string
	errorMessage string
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.focus == focusFunctionEntry {
			return m.handleFunctionEntryKey(msg)
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.viewport.Width = m.layout.helpWidth
		m.viewport.Height = m.layout.helpHeight
		m.markViewportDirty()
		return m, nil
	case tea.MouseMsg:
		if m.state.ShowHelp {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Press):
		m.press(m.focusedKey())
	case key.Matches(msg, m.keys.Clear):
		m.dispatch(calc.Clear{})
	case key.Matches(msg, m.keys.FunctionEntry):
		return m, m.openFunctionEntry()
	case key.Matches(msg, m.keys.ScrollUp):
		if m.state.ShowHelp {
			m.viewport.HalfViewUp()
		}
	case key.Matches(msg, m.keys.ScrollDown):
		if m.state.ShowHelp {
			m.viewport.HalfViewDown()
		}
	default:
		m.pressShortcuts(msg)
	}
	return m, nil
}

// pressShortcuts handles a key that maps to keypad buttons. Pasted text
// arrives as a single message carrying several runes.
func (m *model) pressShortcuts(msg tea.KeyMsg) {
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		for _, r := range msg.Runes {
			if k, ok := keypad.Lookup(string(r)); ok {
				m.press(k)
			}
		}
		return
	}
	if k, ok := keypad.Lookup(msg.String()); ok {
		m.press(k)
	}
}

func (m *model) press(k keypad.Key) {
	m.moveCursorTo(k)
	m.dispatch(k.Action)
}

func (m *model) dispatch(action calc.Action) {
	m.state = m.config.Reducer.Reduce(m.state, action)
	m.config.Logger.Debug("action applied",
		zap.Stringer("action", action),
		zap.String("expression", m.state.Expression),
		zap.String("display", m.state.Display),
	)
	m.errorMessage = ""
	switch action.(type) {
	case calc.Evaluate:
		if m.state.Failed() {
			m.errorMessage = "Could not evaluate that expression."
			m.infoMessage = "Start a new expression; the next key replaces the error."
		} else {
			m.infoMessage = fmt.Sprintf("= %s", m.state.Display)
		}
	case calc.Clear:
		m.infoMessage = readyMessage
	case calc.ToggleAngleMode:
		m.infoMessage = fmt.Sprintf("Angles are now in %s.", m.state.Angle)
		m.markViewportDirty()
	case calc.ToggleHelp:
		if m.state.ShowHelp {
			m.infoMessage = "Reference open. Press ? to hide it."
		} else {
			m.infoMessage = readyMessage
		}
		m.markViewportDirty()
	}
}

func (m *model) moveCursor(dRow, dCol int) {
	rows := keypad.Rows()
	m.cursorRow = clamp(m.cursorRow+dRow, 0, len(rows)-1)
	m.cursorCol = clamp(m.cursorCol+dCol, 0, len(rows[m.cursorRow])-1)
}

func (m *model) moveCursorTo(k keypad.Key) {
	for r, row := range keypad.Rows() {
		for c, candidate := range row {
			if candidate.Shortcut == k.Shortcut {
				m.cursorRow, m.cursorCol = r, c
				return
			}
		}
	}
}

func (m *model) focusedKey() keypad.Key {
	rows := keypad.Rows()
	row := rows[clamp(m.cursorRow, 0, len(rows)-1)]
	return row[clamp(m.cursorCol, 0, len(row)-1)]
}

func (m *model) openFunctionEntry() tea.Cmd {
	m.focus = focusFunctionEntry
	m.fnInput.SetValue("")
	m.errorMessage = ""
	m.infoMessage = functionEntryMessage
	return m.fnInput.Focus()
}

func (m *model) closeFunctionEntry() {
	m.focus = focusKeypad
	m.fnInput.SetValue("")
	m.fnInput.Blur()
}

func (m *model) handleFunctionEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeFunctionEntry()
		m.infoMessage = "Function entry canceled."
		return m, nil
	case tea.KeyEnter:
		query := strings.TrimSpace(m.fnInput.Value())
		m.closeFunctionEntry()
		name, ok := keypad.MatchFunction(query)
		if !ok {
			m.errorMessage = fmt.Sprintf("Unknown function %q.", query)
			m.infoMessage = "Press : to try again."
			return m, nil
		}
		m.dispatch(calc.AppendFunction{Name: name})
		m.infoMessage = fmt.Sprintf("Inserted %s(.", name)
		return m, nil
	}
	var cmd tea.Cmd
	m.fnInput, cmd = m.fnInput.Update(msg)
	return m, cmd
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if !m.viewportDirty {
		return
	}
	m.viewportDirty = false
	content, err := cheatsheet.Render(cheatsheet.Build(m.state.Angle))
	if err != nil {
		m.config.Logger.Warn("failed to render reference card", zap.Error(err))
		content = errorStyle.Render("Reference card unavailable.")
	}
	m.viewport.SetContent(wordwrap.String(content, m.layout.helpWidth))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
