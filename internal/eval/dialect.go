package eval

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const factorialFunc = "fact"

var (
	errMissingOperand = errors.New("missing operand")
	errUnbalanced     = errors.New("unbalanced parenthesis")
	errUnexpected     = errors.New("unexpected input")
	errBadNumber      = errors.New("malformed number")
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOperator
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
}

// translate rewrites keypad syntax into govaluate's grammar. Grouping is made
// explicit so govaluate's own precedence never decides it:
//
//	2^3^2   -> (2**(3**2))     "^" is right-associative
//	-2^2    -> (-(2**2))       unary minus binds looser than "^"
//	2*-3    -> 2*(-3)          signs may follow any binary operator
//	2pi     -> 2*pi            adjacent operands multiply
//	(2+3)!  -> fact((2+3))     postfix factorial binds tightest
//
// Exponent-form literals such as a previous "1.5e-7" result are expanded to
// plain decimals, which govaluate can read.
func translate(text string) (string, error) {
	toks, err := tokenize(text)
	if err != nil {
		return "", err
	}
	r := &rewriter{toks: toks}
	out, err := r.sum()
	if err != nil {
		return "", err
	}
	if tok, ok := r.peek(); ok {
		if tok.kind == tokRParen {
			return "", errUnbalanced
		}
		return "", fmt.Errorf("%w %q", errUnexpected, tok.text)
	}
	return out, nil
}

func tokenize(text string) ([]token, error) {
	var toks []token
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case isDigit(c) || c == '.':
			end, literal, err := scanNumber(text, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokNumber, text: literal})
			i = end
		case isLetter(c):
			j := i + 1
			for j < len(text) && (isLetter(text[j]) || isDigit(text[j])) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: text[i:j]})
			i = j
		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "("})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")"})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ","})
			i++
		case strings.IndexByte("+-*/%^!", c) >= 0:
			toks = append(toks, token{kind: tokOperator, text: string(c)})
			i++
		default:
			r, _ := utf8.DecodeRuneInString(text[i:])
			return nil, fmt.Errorf("%w %q", errUnexpected, r)
		}
	}
	return toks, nil
}

// scanNumber reads a decimal literal with an optional exponent. An "e" only
// belongs to the number when digits follow it, so "2e" stays 2 times e.
func scanNumber(text string, start int) (int, string, error) {
	i := start
	for i < len(text) && (isDigit(text[i]) || text[i] == '.') {
		i++
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if j < len(text) && isDigit(text[j]) {
			for j < len(text) && isDigit(text[j]) {
				j++
			}
			i = j
		}
	}
	literal := text[start:i]
	v, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, "", fmt.Errorf("%w %q", errBadNumber, literal)
	}
	return i, strconv.FormatFloat(v, 'f', -1, 64), nil
}

// rewriter walks the token stream by precedence level, lowest first:
// sum, product (explicit or implicit), sign, power, factorial, operand.
type rewriter struct {
	toks []token
	pos  int
}

func (r *rewriter) peek() (token, bool) {
	if r.pos >= len(r.toks) {
		return token{}, false
	}
	return r.toks[r.pos], true
}

func (r *rewriter) accept(kind tokenKind, text string) bool {
	tok, ok := r.peek()
	if !ok || tok.kind != kind || (text != "" && tok.text != text) {
		return false
	}
	r.pos++
	return true
}

func (r *rewriter) sum() (string, error) {
	left, err := r.product()
	if err != nil {
		return "", err
	}
	for {
		tok, ok := r.peek()
		if !ok || tok.kind != tokOperator || (tok.text != "+" && tok.text != "-") {
			return left, nil
		}
		r.pos++
		right, err := r.product()
		if err != nil {
			return "", err
		}
		left += tok.text + right
	}
}

func (r *rewriter) product() (string, error) {
	left, err := r.sign()
	if err != nil {
		return "", err
	}
	for {
		tok, ok := r.peek()
		if !ok {
			return left, nil
		}
		switch {
		case tok.kind == tokOperator && strings.Contains("*/%", tok.text):
			r.pos++
			right, err := r.sign()
			if err != nil {
				return "", err
			}
			left += tok.text + right
		case tok.kind == tokNumber || tok.kind == tokIdent || tok.kind == tokLParen:
			right, err := r.power()
			if err != nil {
				return "", err
			}
			left += "*" + right
		default:
			return left, nil
		}
	}
}

func (r *rewriter) sign() (string, error) {
	switch {
	case r.accept(tokOperator, "-"):
		operand, err := r.sign()
		if err != nil {
			return "", err
		}
		return "(-" + operand + ")", nil
	case r.accept(tokOperator, "+"):
		return r.sign()
	}
	return r.power()
}

func (r *rewriter) power() (string, error) {
	base, err := r.factorial()
	if err != nil {
		return "", err
	}
	if !r.accept(tokOperator, "^") {
		return base, nil
	}
	exponent, err := r.sign()
	if err != nil {
		return "", err
	}
	return "(" + base + "**" + exponent + ")", nil
}

func (r *rewriter) factorial() (string, error) {
	operand, err := r.operand()
	if err != nil {
		return "", err
	}
	for r.accept(tokOperator, "!") {
		operand = factorialFunc + "(" + operand + ")"
	}
	return operand, nil
}

func (r *rewriter) operand() (string, error) {
	tok, ok := r.peek()
	if !ok {
		return "", errMissingOperand
	}
	switch tok.kind {
	case tokNumber:
		r.pos++
		return tok.text, nil
	case tokIdent:
		r.pos++
		if !r.accept(tokLParen, "") {
			return tok.text, nil
		}
		args, err := r.arguments()
		if err != nil {
			return "", err
		}
		return tok.text + "(" + args + ")", nil
	case tokLParen:
		r.pos++
		inner, err := r.sum()
		if err != nil {
			return "", err
		}
		if !r.accept(tokRParen, "") {
			return "", errUnbalanced
		}
		return "(" + inner + ")", nil
	}
	return "", errMissingOperand
}

func (r *rewriter) arguments() (string, error) {
	if r.accept(tokRParen, "") {
		return "", nil
	}
	var args []string
	for {
		arg, err := r.sum()
		if err != nil {
			return "", err
		}
		args = append(args, arg)
		if r.accept(tokComma, "") {
			continue
		}
		if r.accept(tokRParen, "") {
			return strings.Join(args, ","), nil
		}
		return "", errUnbalanced
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
