package eval

import (
	"errors"
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

// maxExactFactorial is the largest n whose factorial fits in a float64.
const maxExactFactorial = 170

var constants = map[string]interface{}{
	"pi": math.Pi,
	"e":  math.E,
}

// functionTable builds the named functions for one angle unit. Only the six
// trigonometric functions depend on the unit.
func functionTable(unit AngleUnit) map[string]govaluate.ExpressionFunction {
	toRadians := func(x float64) float64 { return x }
	fromRadians := func(x float64) float64 { return x }
	if unit == Degrees {
		toRadians = func(x float64) float64 { return x * math.Pi / 180 }
		fromRadians = func(x float64) float64 { return x * 180 / math.Pi }
	}

	return map[string]govaluate.ExpressionFunction{
		"sin":  unary("sin", func(x float64) float64 { return math.Sin(toRadians(x)) }),
		"cos":  unary("cos", func(x float64) float64 { return math.Cos(toRadians(x)) }),
		"tan":  unary("tan", func(x float64) float64 { return math.Tan(toRadians(x)) }),
		"asin": unary("asin", func(x float64) float64 { return fromRadians(math.Asin(x)) }),
		"acos": unary("acos", func(x float64) float64 { return fromRadians(math.Acos(x)) }),
		"atan": unary("atan", func(x float64) float64 { return fromRadians(math.Atan(x)) }),

		"log":   unary("log", math.Log),
		"ln":    unary("ln", math.Log),
		"log10": unary("log10", math.Log10),
		"sqrt":  unary("sqrt", math.Sqrt),
		"abs":   unary("abs", math.Abs),
		"exp":   unary("exp", math.Exp),

		factorialFunc: func(args ...interface{}) (interface{}, error) {
			x, err := singleNumber("factorial", args)
			if err != nil {
				return nil, err
			}
			return factorial(x)
		},
	}
}

func unary(name string, fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		x, err := singleNumber(name, args)
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	}
}

func singleNumber(name string, args []interface{}) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
	}
	x, ok := args[0].(float64)
	if !ok {
		return 0, fmt.Errorf("%s expects a number, got %T", name, args[0])
	}
	return x, nil
}

func factorial(x float64) (float64, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, errors.New("factorial of non-finite value")
	}
	if x != math.Trunc(x) {
		return math.Gamma(x + 1), nil
	}
	if x < 0 {
		return 0, fmt.Errorf("factorial of negative integer %g", x)
	}
	if x > maxExactFactorial {
		return math.Inf(1), nil
	}
	result := 1.0
	for i := 2.0; i <= x; i++ {
		result *= i
	}
	return result, nil
}
