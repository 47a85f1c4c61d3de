package eval

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/Knetic/govaluate"
)

const maxCachedExpressions = 256

type cacheKey struct {
	angle AngleUnit
	text  string
}

// Engine evaluates calculator expressions with govaluate.
type Engine struct {
	functions map[AngleUnit]map[string]govaluate.ExpressionFunction

	mu    sync.RWMutex
	cache map[cacheKey]*govaluate.EvaluableExpression
}

// NewEngine creates an Engine with the calculator's functions and constants.
func NewEngine() *Engine {
	return &Engine{
		functions: map[AngleUnit]map[string]govaluate.ExpressionFunction{
			Radians: functionTable(Radians),
			Degrees: functionTable(Degrees),
		},
		cache: make(map[cacheKey]*govaluate.EvaluableExpression),
	}
}

// Evaluate compiles text for the configured angle unit and runs it.
func (e *Engine) Evaluate(text string, cfg Config) (result Result, err error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, fmt.Errorf("%w: empty expression", ErrEvaluation)
	}

	// govaluate panics on a few malformed token streams.
	defer func() {
		if r := recover(); r != nil {
			result = Result{}
			err = fmt.Errorf("%w: %v", ErrEvaluation, r)
		}
	}()

	expr, err := e.getExpression(text, cfg.Angle)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrEvaluation, err)
	}

	value, err := expr.Evaluate(constants)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrEvaluation, err)
	}
	return toResult(value)
}

// getExpression gets a compiled expression from cache or compiles it
func (e *Engine) getExpression(text string, angle AngleUnit) (*govaluate.EvaluableExpression, error) {
	key := cacheKey{angle: angle, text: text}

	e.mu.RLock()
	if expr, ok := e.cache[key]; ok {
		e.mu.RUnlock()
		return expr, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if expr, ok := e.cache[key]; ok {
		return expr, nil
	}

	translated, err := translate(text)
	if err != nil {
		return nil, err
	}
	functions, ok := e.functions[angle]
	if !ok {
		return nil, fmt.Errorf("unsupported angle unit %d", angle)
	}
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(translated, functions)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if len(e.cache) >= maxCachedExpressions {
		e.cache = make(map[cacheKey]*govaluate.EvaluableExpression)
	}
	e.cache[key] = expr
	return expr, nil
}

// ClearCache drops every compiled expression.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[cacheKey]*govaluate.EvaluableExpression)
}

func (e *Engine) cached() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}

func toResult(value interface{}) (Result, error) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, fmt.Errorf("%w: non-finite result %v", ErrEvaluation, v)
		}
		return NumberResult(v), nil
	case bool:
		return SymbolicResult(strconv.FormatBool(v)), nil
	case string:
		return SymbolicResult(v), nil
	case nil:
		return Result{}, fmt.Errorf("%w: expression produced no value", ErrEvaluation)
	default:
		return SymbolicResult(fmt.Sprint(v)), nil
	}
}
