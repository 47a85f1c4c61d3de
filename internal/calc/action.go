package calc

import "fmt"

// Action is one of the tagged variants the reducer understands.
type Action interface {
	fmt.Stringer
	isAction()
}

// AppendDigit appends a digit or decimal point.
type AppendDigit struct{ Token string }

// AppendOperator appends an operator or structural token: + - * / ^ ! % ( ).
type AppendOperator struct{ Op string }

// AppendFunction appends Name followed by an opening parenthesis.
type AppendFunction struct{ Name string }

// AppendConstant appends a named constant such as pi or e.
type AppendConstant struct{ Name string }

// Evaluate submits the expression to the evaluator.
type Evaluate struct{}

// Clear resets both buffers.
type Clear struct{}

// Backspace removes one character from each buffer.
type Backspace struct{}

// ToggleAngleMode flips between radians and degrees.
type ToggleAngleMode struct{}

// ToggleHelp flips the reference panel.
type ToggleHelp struct{}

func (AppendDigit) isAction()     {}
func (AppendOperator) isAction()  {}
func (AppendFunction) isAction()  {}
func (AppendConstant) isAction()  {}
func (Evaluate) isAction()        {}
func (Clear) isAction()           {}
func (Backspace) isAction()       {}
func (ToggleAngleMode) isAction() {}
func (ToggleHelp) isAction()      {}

func (a AppendDigit) String() string    { return fmt.Sprintf("append_digit(%s)", a.Token) }
func (a AppendOperator) String() string { return fmt.Sprintf("append_operator(%s)", a.Op) }
func (a AppendFunction) String() string { return fmt.Sprintf("append_function(%s)", a.Name) }
func (a AppendConstant) String() string { return fmt.Sprintf("append_constant(%s)", a.Name) }
func (Evaluate) String() string         { return "evaluate" }
func (Clear) String() string            { return "clear" }
func (Backspace) String() string        { return "backspace" }
func (ToggleAngleMode) String() string  { return "toggle_angle_mode" }
func (ToggleHelp) String() string       { return "toggle_help" }
