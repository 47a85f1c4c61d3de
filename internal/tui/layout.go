package tui

import "github.com/csheth/scicalc/internal/keypad"

type pageLayout struct {
	windowWidth  int
	windowHeight int
	buttonWidth  int
	panelWidth   int
	helpWidth    int
	helpHeight   int
}

func newPageLayout() pageLayout {
	l := pageLayout{
		buttonWidth: 7,
		helpWidth:   60,
		helpHeight:  10,
	}
	l.panelWidth = keypadWidth(l.buttonWidth)
	return l
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - horizontalPadding
	l.buttonWidth = clamp((innerWidth-(keypad.Columns-1)*buttonGap)/keypad.Columns, minButtonWidth, maxButtonWidth)
	l.panelWidth = keypadWidth(l.buttonWidth)
	l.helpWidth = innerWidth
	if l.helpWidth < minHelpWidth {
		l.helpWidth = minHelpWidth
	}
	l.helpHeight = height - chromeHeight - len(keypad.Rows()) - legendHeight
	if l.helpHeight < minHelpHeight {
		l.helpHeight = minHelpHeight
	}
}

// keypadWidth is the rendered width of a full keypad row.
func keypadWidth(buttonWidth int) int {
	return keypad.Columns*buttonWidth + (keypad.Columns-1)*buttonGap
}
