package tui

type focusArea int

const (
	focusKeypad focusArea = iota
	focusFunctionEntry
)

type buttonKind int

const (
	buttonDigit buttonKind = iota
	buttonOperator
	buttonFunction
	buttonConstant
	buttonControl
	buttonClear
	buttonEvaluate
)

const heroTitle = "SciCalc"

const heroTagline = "Scientific calculator for the terminal."

const (
	horizontalPadding = 4
	buttonGap         = 1
	minButtonWidth    = 5
	maxButtonWidth    = 9
	minHelpWidth      = 30
	minHelpHeight     = 4
	legendHeight      = 8
	chromeHeight      = 12
)

const (
	readyMessage         = "Type an expression or move with the arrow keys. Press = to evaluate."
	functionPlaceholder  = "sqrt, sin, log10…"
	functionEntryMessage = "Type a function name and press Enter. Esc cancels."
)
