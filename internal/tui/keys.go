package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings that steer the UI itself. Calculator buttons are
// resolved through keypad.Lookup instead.
type keyMap struct {
	Quit          key.Binding
	Clear         key.Binding
	Press         key.Binding
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	FunctionEntry key.Binding
	ScrollUp      key.Binding
	ScrollDown    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:          key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "Quit")),
		Clear:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc/Del", "Clear")),
		Press:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Press focused key")),
		Up:            key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "Move up")),
		Down:          key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "Move down")),
		Left:          key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "Move left")),
		Right:         key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "Move right")),
		FunctionEntry: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "Type a function")),
		ScrollUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "Scroll reference")),
		ScrollDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "Scroll reference")),
	}
}

type keyHint struct {
	Key         string
	Description string
}

func (k keyMap) hints() []keyHint {
	bindings := []key.Binding{k.Press, k.FunctionEntry, k.Clear, k.ScrollDown, k.Quit}
	hints := []keyHint{
		{"0-9 . + - * / ^ ! % ( )", "Type directly"},
		{"s c t", "sin cos tan"},
		{"S C T", "Inverse trig"},
		{"l L q a x", "log ln √ |x| exp"},
		{"p e", "π and e"},
		{"=", "Evaluate"},
		{"⌫", "Backspace"},
		{"r", "RAD/DEG"},
		{"?", "Toggle reference"},
		{"←↑↓→", "Move focus"},
	}
	for _, b := range bindings {
		help := b.Help()
		hints = append(hints, keyHint{help.Key, help.Desc})
	}
	return hints
}
