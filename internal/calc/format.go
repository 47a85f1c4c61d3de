package calc

import (
	"math"
	"strconv"
	"strings"

	"github.com/csheth/scicalc/internal/eval"
)

// Magnitudes outside [minPlain, maxPlain) are written in exponent form.
const (
	minPlain = 1e-6
	maxPlain = 1e21
)

// FormatResult renders an evaluation result for both buffers.
func FormatResult(result eval.Result, digits int) string {
	if !result.IsNumber() {
		return result.Text
	}
	return FormatNumber(result.Number, digits)
}

// FormatNumber rounds v to digits significant digits and prints the rounded
// value in its shortest form, so trailing zeros and float noise disappear.
func FormatNumber(v float64, digits int) string {
	if digits < 1 {
		digits = DefaultPrecision
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', digits, 64), 64)
	if err != nil {
		rounded = v
	}
	if rounded == 0 {
		return "0"
	}
	abs := math.Abs(rounded)
	if abs >= maxPlain || abs < minPlain {
		return trimExponent(strconv.FormatFloat(rounded, 'e', -1, 64))
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// trimExponent turns Go's "1.5e-07" into "1.5e-7".
func trimExponent(s string) string {
	idx := strings.IndexByte(s, 'e')
	if idx < 0 || idx+2 > len(s) {
		return s
	}
	mantissa, sign, exp := s[:idx], s[idx+1:idx+2], strings.TrimLeft(s[idx+2:], "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + "e" + sign + exp
}
