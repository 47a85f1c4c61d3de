// Package calc holds the calculator's expression state and the reducer that
// advances it one action at a time.
package calc

import "github.com/csheth/scicalc/internal/eval"

const (
	// Placeholder is shown when no literal is being typed.
	Placeholder = "0"
	// ErrorDisplay replaces the readout after any failed evaluation.
	ErrorDisplay = "Error"
)

// State is the full calculator state. It is a value: the reducer returns a
// new State instead of mutating the one it was given.
type State struct {
	// Expression is the evaluator-ready text. Parentheses may be unbalanced
	// until Evaluate runs.
	Expression string
	// Display is the readout. It follows Expression but is formatted
	// independently and may diverge from it.
	Display string
	// Angle is passed to the evaluator; it changes nothing before that.
	Angle    eval.AngleUnit
	ShowHelp bool
}

// New returns the initial state: empty expression, placeholder display,
// radians, help hidden.
func New() State {
	return NewWithAngle(eval.Radians)
}

// NewWithAngle is New with a configured starting angle unit.
func NewWithAngle(angle eval.AngleUnit) State {
	return State{
		Expression: "",
		Display:    Placeholder,
		Angle:      angle,
	}
}

// Failed reports whether the last evaluation collapsed into the error state.
func (s State) Failed() bool {
	return s.Display == ErrorDisplay && s.Expression == ""
}
