package calc

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/csheth/scicalc/internal/eval"
)

// DefaultPrecision is the number of significant digits kept in results.
const DefaultPrecision = 10

const maxPrecision = 17

var errNoEvaluator = fmt.Errorf("%w: no evaluator configured", eval.ErrEvaluation)

// Reducer applies actions to states. Evaluate is the only action that
// consults the evaluator; every other action is a pure string edit.
type Reducer struct {
	evaluator eval.Evaluator
	precision int
	logger    *zap.Logger
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithPrecision sets the significant digits kept in results, clamped to 1..17.
func WithPrecision(digits int) Option {
	return func(r *Reducer) {
		switch {
		case digits < 1:
			r.precision = 1
		case digits > maxPrecision:
			r.precision = maxPrecision
		default:
			r.precision = digits
		}
	}
}

// WithLogger routes evaluation failures to logger at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Reducer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReducer creates a Reducer backed by evaluator.
func NewReducer(evaluator eval.Evaluator, opts ...Option) *Reducer {
	r := &Reducer{
		evaluator: evaluator,
		precision: DefaultPrecision,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Precision reports the configured significant digits.
func (r *Reducer) Precision() int {
	return r.precision
}

// Reduce returns the state that follows s after action. Unknown actions leave
// the state unchanged.
func (r *Reducer) Reduce(s State, action Action) State {
	switch a := action.(type) {
	case AppendDigit:
		s.Expression += a.Token
		if s.Display == Placeholder {
			s.Display = a.Token
		} else {
			s.Display += a.Token
		}
	case AppendOperator:
		s.Expression += a.Op
		s.Display = Placeholder
	case AppendFunction:
		s.Expression += a.Name + "("
		s.Display = Placeholder
	case AppendConstant:
		s.Expression += a.Name
		s.Display = a.Name
	case Evaluate:
		return r.evaluate(s)
	case Clear:
		s.Expression = ""
		s.Display = Placeholder
	case Backspace:
		return backspace(s)
	case ToggleAngleMode:
		s.Angle = s.Angle.Toggle()
	case ToggleHelp:
		s.ShowHelp = !s.ShowHelp
	}
	return s
}

// Apply folds actions over s from left to right.
func (r *Reducer) Apply(s State, actions ...Action) State {
	for _, action := range actions {
		s = r.Reduce(s, action)
	}
	return s
}

func (r *Reducer) evaluate(s State) State {
	formatted, err := r.compute(s.Expression, s.Angle)
	if err != nil {
		r.logger.Debug("evaluation failed",
			zap.String("expression", s.Expression),
			zap.Stringer("angle", s.Angle),
			zap.Error(err),
		)
		s.Display = ErrorDisplay
		s.Expression = ""
		return s
	}
	s.Display = formatted
	s.Expression = formatted
	return s
}

func (r *Reducer) compute(expression string, angle eval.AngleUnit) (string, error) {
	if r.evaluator == nil {
		return "", errNoEvaluator
	}
	result, err := r.evaluator.Evaluate(expression, eval.Config{Angle: angle})
	if err != nil {
		if !errors.Is(err, eval.ErrEvaluation) {
			err = fmt.Errorf("%w: %w", eval.ErrEvaluation, err)
		}
		return "", err
	}
	formatted := FormatResult(result, r.precision)
	if formatted == "" {
		return "", fmt.Errorf("%w: empty result", eval.ErrEvaluation)
	}
	return formatted, nil
}

// backspace removes one character from each buffer independently. After a
// multi-character token such as "sin(" the two buffers no longer line up;
// that is the established behavior and is kept character-wise.
func backspace(s State) State {
	if s.Expression == "" {
		return s
	}
	s.Expression = dropLast(s.Expression)
	if s.Display != Placeholder {
		s.Display = dropLast(s.Display)
		if s.Display == "" {
			s.Display = Placeholder
		}
	}
	return s
}

func dropLast(value string) string {
	runes := []rune(value)
	if len(runes) == 0 {
		return value
	}
	return string(runes[:len(runes)-1])
}
