package calc

import (
	"strconv"
	"testing"

	"github.com/csheth/scicalc/internal/eval"
)

func newEngineReducer() *Reducer {
	return NewReducer(eval.NewEngine())
}

func TestEvaluateAngleModeAffectsTrig(t *testing.T) {
	r := newEngineReducer()
	cases := []struct {
		name  string
		expr  string
		angle eval.AngleUnit
		want  string
	}{
		{name: "radians sin(pi/2)", expr: "sin(pi/2)", angle: eval.Radians, want: "1"},
		{name: "degrees sin(90)", expr: "sin(90)", angle: eval.Degrees, want: "1"},
		{name: "radians sin(90)", expr: "sin(90)", angle: eval.Radians, want: "0.8939966636"},
		{name: "degrees acos(0)", expr: "acos(0)", angle: eval.Degrees, want: "90"},
		{name: "degrees leave logs alone", expr: "log10(1000)", angle: eval.Degrees, want: "3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Reduce(State{Expression: tc.expr, Display: "0", Angle: tc.angle}, Evaluate{})
			if got.Display != tc.want || got.Expression != tc.want {
				t.Fatalf("evaluate %q (%s) = %+v, want %q", tc.expr, tc.angle, got, tc.want)
			}
		})
	}
}

func TestEvaluateMalformedInputProducesError(t *testing.T) {
	r := newEngineReducer()
	s := r.Apply(New(), AppendOperator{"("}, AppendDigit{"2"}, AppendOperator{"+"}, Evaluate{})
	if s.Display != "Error" || s.Expression != "" {
		t.Fatalf("expected error state, got %+v", s)
	}
}

func TestEvaluateCapsPrecision(t *testing.T) {
	r := newEngineReducer()
	s := r.Apply(New(), AppendDigit{"1"}, AppendOperator{"/"}, AppendDigit{"3"}, Evaluate{})
	if s.Display != "0.3333333333" {
		t.Fatalf("1/3 displayed as %q", s.Display)
	}
}

func TestEvaluateIsIdempotentAfterSuccess(t *testing.T) {
	r := newEngineReducer()
	for _, expr := range []string{"1/3", "2^0.5", "sin(pi/2)", "10!", "0.1+0.2", "0-2.5", "10^25", "sin(pi)"} {
		first := r.Reduce(State{Expression: expr, Display: "0"}, Evaluate{})
		if first.Failed() {
			t.Fatalf("evaluate %q failed", expr)
		}
		second := r.Reduce(first, Evaluate{})
		if second != first {
			t.Fatalf("second evaluate of %q changed state: %+v -> %+v", expr, first, second)
		}
	}
}

func TestEvaluateChainsFromResult(t *testing.T) {
	r := newEngineReducer()
	s := r.Apply(New(), AppendDigit{"6"}, AppendOperator{"*"}, AppendDigit{"7"}, Evaluate{})
	if s.Expression != "42" {
		t.Fatalf("first result = %q", s.Expression)
	}
	resultValue, err := strconv.ParseFloat(s.Expression, 64)
	if err != nil {
		t.Fatalf("result not numeric: %v", err)
	}

	s = r.Apply(s, AppendOperator{"+"}, AppendDigit{"5"}, Evaluate{})
	if want := FormatNumber(resultValue+5, DefaultPrecision); s.Display != want {
		t.Fatalf("chained result = %q, want %q", s.Display, want)
	}
}

func TestEvaluateKeypadExpression(t *testing.T) {
	r := newEngineReducer()
	s := r.Apply(State{Display: "0", Angle: eval.Degrees},
		AppendFunction{"sin"}, AppendDigit{"3"}, AppendDigit{"0"}, AppendOperator{")"},
		AppendOperator{"+"}, AppendDigit{"2"}, AppendOperator{"^"}, AppendDigit{"3"},
		Evaluate{},
	)
	if s.Display != "8.5" {
		t.Fatalf("sin(30)+2^3 in degrees = %q, want 8.5", s.Display)
	}
}

func TestEvaluateHonorsPrecisionOption(t *testing.T) {
	r := NewReducer(eval.NewEngine(), WithPrecision(4))
	s := r.Reduce(State{Expression: "pi", Display: "pi"}, Evaluate{})
	if s.Display != "3.142" {
		t.Fatalf("pi at 4 digits = %q", s.Display)
	}
}

func TestEvaluateSignedOperandsAndPowers(t *testing.T) {
	r := newEngineReducer()
	cases := []struct {
		name    string
		actions []Action
		want    string
	}{
		{
			name:    "times negative",
			actions: []Action{AppendDigit{"2"}, AppendOperator{"*"}, AppendOperator{"-"}, AppendDigit{"3"}},
			want:    "-6",
		},
		{
			name:    "minus negative",
			actions: []Action{AppendDigit{"2"}, AppendOperator{"-"}, AppendOperator{"-"}, AppendDigit{"3"}},
			want:    "5",
		},
		{
			name:    "negative exponent",
			actions: []Action{AppendDigit{"2"}, AppendOperator{"^"}, AppendOperator{"-"}, AppendDigit{"1"}},
			want:    "0.5",
		},
		{
			name:    "right-associative power",
			actions: []Action{AppendDigit{"2"}, AppendOperator{"^"}, AppendDigit{"3"}, AppendOperator{"^"}, AppendDigit{"2"}},
			want:    "512",
		},
		{
			name:    "sign applies after power",
			actions: []Action{AppendOperator{"-"}, AppendDigit{"2"}, AppendOperator{"^"}, AppendDigit{"2"}},
			want:    "-4",
		},
		{
			name:    "digit then constant",
			actions: []Action{AppendDigit{"2"}, AppendConstant{"pi"}},
			want:    "6.283185307",
		},
		{
			name:    "digit then group",
			actions: []Action{AppendDigit{"2"}, AppendOperator{"("}, AppendDigit{"3"}, AppendOperator{")"}},
			want:    "6",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actions := append(tc.actions, Evaluate{})
			got := r.Apply(New(), actions...)
			if got.Display != tc.want || got.Expression != tc.want {
				t.Fatalf("got %+v, want %q", got, tc.want)
			}
		})
	}
}

func TestEvaluateChainsFromSignedAndExponentResults(t *testing.T) {
	r := newEngineReducer()
	cases := []struct {
		name   string
		start  string
		result string
		next   []Action
		want   string
	}{
		{name: "negative squared", start: "0-2.5", result: "-2.5", next: []Action{AppendOperator{"^"}, AppendDigit{"2"}}, want: "-6.25"},
		{name: "negative times negative", start: "0-2.5", result: "-2.5", next: []Action{AppendOperator{"*"}, AppendOperator{"-"}, AppendDigit{"1"}}, want: "2.5"},
		{name: "small squared", start: "0.00000015", result: "1.5e-7", next: []Action{AppendOperator{"^"}, AppendDigit{"2"}}, want: "2.25e-14"},
		{name: "small times negative", start: "0.00000015", result: "1.5e-7", next: []Action{AppendOperator{"*"}, AppendOperator{"-"}, AppendDigit{"1"}}, want: "-1.5e-7"},
		{name: "large divided", start: "10^25", result: "1e+25", next: []Action{AppendOperator{"/"}, AppendDigit{"5"}}, want: "2e+24"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := r.Reduce(State{Expression: tc.start, Display: "0"}, Evaluate{})
			if s.Expression != tc.result {
				t.Fatalf("first result = %q, want %q", s.Expression, tc.result)
			}
			s = r.Apply(s, append(tc.next, Evaluate{})...)
			if s.Display != tc.want {
				t.Fatalf("chained result = %+v, want %q", s, tc.want)
			}
		})
	}
}
