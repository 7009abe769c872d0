package token

import (
	"strconv"
	"strings"
)

type Type int

const (
	EOF Type = iota
	Int
	Float
	Plus
	Minus
	Mul
	Div
	LParen
	RParen
)

// SymbolMap maps the single-character operators to their token type
var SymbolMap = map[rune]Type{
	'+': Plus,
	'-': Minus,
	'*': Mul,
	'/': Div,
	'(': LParen,
	')': RParen,
}

// Reverse mapping from Type to its display name
var TypeStrings = map[Type]string{
	EOF:    "EOF",
	Int:    "INT",
	Float:  "FLOAT",
	Plus:   "PLUS",
	Minus:  "MINUS",
	Mul:    "MULTIPLY",
	Div:    "DIVIDE",
	LParen: "LEFT-PAREN",
	RParen: "RPAREN",
}

func (t Type) String() string {
	if s, ok := TypeStrings[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Pos is the location of the first character of a token.
type Pos struct {
	Offset int
	Line   int
	Column int
}

type Token struct {
	Type     Type
	IntVal   int64
	FloatVal float64
	Pos      Pos
}

func NewInt(v int64, pos Pos) Token     { return Token{Type: Int, IntVal: v, Pos: pos} }
func NewFloat(v float64, pos Pos) Token { return Token{Type: Float, FloatVal: v, Pos: pos} }
func NewSymbol(t Type, pos Pos) Token   { return Token{Type: t, Pos: pos} }

// String renders the token the way the shell prints it: INT(3), FLOAT(3.14), PLUS, ...
func (t Token) String() string {
	switch t.Type {
	case Int:
		return "INT(" + strconv.FormatInt(t.IntVal, 10) + ")"
	case Float:
		return "FLOAT(" + FormatFloat(t.FloatVal) + ")"
	}
	return t.Type.String()
}

// FormatFloat uses the shortest decimal form that round-trips, never an exponent.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Join renders a token sequence as "[INT(3), PLUS, INT(4)]".
func Join(toks []Token) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, t := range toks {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
