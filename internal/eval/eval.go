// Package eval adapts a third-party expression library to the calculator's
// evaluator contract.
package eval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEvaluation is wrapped by every failure an Evaluator reports: parse
// errors, unknown identifiers, arity mismatches and non-finite results alike.
var ErrEvaluation = errors.New("evaluation failed")

// AngleUnit selects how trigonometric functions interpret angles.
type AngleUnit int

const (
	Radians AngleUnit = iota
	Degrees
)

// ParseAngleUnit accepts the long and short spellings of each unit.
func ParseAngleUnit(value string) (AngleUnit, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "rad", "radian", "radians":
		return Radians, nil
	case "deg", "degree", "degrees":
		return Degrees, nil
	default:
		return Radians, fmt.Errorf("unknown angle unit %q", value)
	}
}

// UnmarshalText lets configuration loaders decode an AngleUnit directly.
func (u *AngleUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseAngleUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u AngleUnit) String() string {
	if u == Degrees {
		return "degrees"
	}
	return "radians"
}

// Label is the short badge shown next to the readout.
func (u AngleUnit) Label() string {
	if u == Degrees {
		return "DEG"
	}
	return "RAD"
}

// Toggle returns the other unit.
func (u AngleUnit) Toggle() AngleUnit {
	if u == Degrees {
		return Radians
	}
	return Degrees
}

// Config carries per-evaluation settings.
type Config struct {
	Angle AngleUnit
}

// Kind distinguishes numeric results from symbolic ones.
type Kind int

const (
	KindNumber Kind = iota
	KindSymbolic
)

// Result is the value produced by a successful evaluation.
type Result struct {
	Kind   Kind
	Number float64
	Text   string
}

// NumberResult wraps a numeric value.
func NumberResult(v float64) Result {
	return Result{Kind: KindNumber, Number: v}
}

// SymbolicResult wraps a non-numeric value in its textual form.
func SymbolicResult(text string) Result {
	return Result{Kind: KindSymbolic, Text: text}
}

// IsNumber reports whether the result carries a float64.
func (r Result) IsNumber() bool {
	return r.Kind == KindNumber
}

func (r Result) String() string {
	if r.IsNumber() {
		return strconv.FormatFloat(r.Number, 'g', -1, 64)
	}
	return r.Text
}

// Evaluator computes a result from expression text. Implementations must
// return an error wrapping ErrEvaluation rather than a partial value.
type Evaluator interface {
	Evaluate(text string, cfg Config) (Result, error)
}

// Func adapts a plain function to the Evaluator interface.
type Func func(text string, cfg Config) (Result, error)

// Evaluate calls f.
func (f Func) Evaluate(text string, cfg Config) (Result, error) {
	return f(text, cfg)
}
