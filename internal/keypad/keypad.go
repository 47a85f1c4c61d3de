// Package keypad describes the calculator's fixed set of buttons and the
// controller action each one triggers.
package keypad

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/csheth/scicalc/internal/calc"
)

// Columns is the keypad width in buttons.
const Columns = 5

// maxFunctionDistance bounds how far a typed name may be from a function
// before MatchFunction gives up.
const maxFunctionDistance = 2

// Key is one labeled trigger.
type Key struct {
	Label    string
	Shortcut string
	Action   calc.Action
}

// Wide keys span the whole row.
func (k Key) Wide() bool {
	_, ok := k.Action.(calc.Evaluate)
	return ok
}

func digit(d string) Key { return Key{Label: d, Shortcut: d, Action: calc.AppendDigit{Token: d}} }

func operator(label, op string) Key {
	return Key{Label: label, Shortcut: op, Action: calc.AppendOperator{Op: op}}
}

func function(label, shortcut, name string) Key {
	return Key{Label: label, Shortcut: shortcut, Action: calc.AppendFunction{Name: name}}
}

func constant(label, shortcut, name string) Key {
	return Key{Label: label, Shortcut: shortcut, Action: calc.AppendConstant{Name: name}}
}

var rows = [][]Key{
	{
		constant("π", "p", "pi"),
		constant("e", "e", "e"),
		{Label: "⌫", Shortcut: "backspace", Action: calc.Backspace{}},
		{Label: "C", Shortcut: "delete", Action: calc.Clear{}},
		operator("÷", "/"),
	},
	{
		function("log", "l", "log10"),
		function("ln", "L", "log"),
		function("√", "q", "sqrt"),
		operator("^", "^"),
		operator("×", "*"),
	},
	{
		function("sin", "s", "sin"),
		function("cos", "c", "cos"),
		function("tan", "t", "tan"),
		operator("!", "!"),
		operator("-", "-"),
	},
	{
		function("sin⁻¹", "S", "asin"),
		function("cos⁻¹", "C", "acos"),
		function("tan⁻¹", "T", "atan"),
		operator(")", ")"),
		operator("+", "+"),
	},
	{digit("7"), digit("8"), digit("9"), function("|x|", "a", "abs"), operator("%", "%")},
	{digit("4"), digit("5"), digit("6"), function("EXP", "x", "exp"), operator("(", "(")},
	{digit("1"), digit("2"), digit("3"), digit("0"), digit(".")},
	{
		{Label: "RAD/DEG", Shortcut: "r", Action: calc.ToggleAngleMode{}},
		{Label: "?", Shortcut: "?", Action: calc.ToggleHelp{}},
	},
	{{Label: "=", Shortcut: "=", Action: calc.Evaluate{}}},
}

var byShortcut = func() map[string]Key {
	index := make(map[string]Key)
	for _, row := range rows {
		for _, key := range row {
			index[key.Shortcut] = key
		}
	}
	return index
}()

// Functions lists the function names the keypad can append, in keypad order.
var Functions = func() []string {
	var names []string
	for _, row := range rows {
		for _, key := range row {
			if fn, ok := key.Action.(calc.AppendFunction); ok {
				names = append(names, fn.Name)
			}
		}
	}
	return names
}()

// Rows returns the keypad grid, top row first. Callers must not modify it.
func Rows() [][]Key {
	return rows
}

// Lookup resolves a terminal key string to its keypad button.
func Lookup(shortcut string) (Key, bool) {
	key, ok := byShortcut[shortcut]
	return key, ok
}

// MatchFunction resolves a typed function name. Exact names win, then the
// single function the query is a prefix of, then the single nearest name by
// edit distance when it is close enough. Two names equally near is no match.
func MatchFunction(query string) (string, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	query = strings.TrimSuffix(query, "(")
	if query == "" {
		return "", false
	}
	if alias, ok := functionAliases[query]; ok {
		return alias, true
	}
	for _, name := range Functions {
		if name == query {
			return name, true
		}
	}

	var prefixed []string
	for _, name := range Functions {
		if strings.HasPrefix(name, query) {
			prefixed = append(prefixed, name)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], true
	}

	best, bestDistance, tied := "", maxFunctionDistance+1, false
	for _, name := range Functions {
		d := levenshtein.ComputeDistance(query, name)
		switch {
		case d < bestDistance:
			best, bestDistance, tied = name, d, false
		case d == bestDistance:
			tied = true
		}
	}
	if best == "" || tied {
		return "", false
	}
	return best, true
}

// Labels as printed on the keypad map to the evaluator's function names.
var functionAliases = map[string]string{
	"ln":    "log",
	"√":     "sqrt",
	"|x|":   "abs",
	"sin⁻¹": "asin",
	"cos⁻¹": "acos",
	"tan⁻¹": "atan",
}
