package lexer

import (
	"errors"
	"testing"

	"github.com/expr-lang/expr"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/xplshn/sipit/pkg/config"
	"github.com/xplshn/sipit/pkg/token"
)

func render(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.String()
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", " \t\r\n  ", []string{}},
		{"integer", "42", []string{"INT(42)"}},
		{"float", "3.14", []string{"FLOAT(3.14)"}},
		{"trailing dot", "3.", []string{"FLOAT(3)"}},
		{"leading zeros", "007", []string{"INT(7)"}},
		{"int64 max", "9223372036854775807", []string{"INT(9223372036854775807)"}},
		{"all symbols", "+-*/()", []string{"PLUS", "MINUS", "MULTIPLY", "DIVIDE", "LEFT-PAREN", "RPAREN"}},
		{
			"expression", "3 + 4 * (2 - 1)",
			[]string{"INT(3)", "PLUS", "INT(4)", "MULTIPLY", "LEFT-PAREN", "INT(2)", "MINUS", "INT(1)", "RPAREN"},
		},
		{"no spaces", "10/4-2.50", []string{"INT(10)", "DIVIDE", "INT(4)", "MINUS", "FLOAT(2.5)"}},
		{"read line newline", "1 + 1\n", []string{"INT(1)", "PLUS", "INT(1)"}},
		{"unicode space", "1\u00a02\u20283", []string{"INT(1)", "INT(2)", "INT(3)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize("<stdin>", tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, render(toks)); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenizeIllegalChar(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		detail   string
		offset   int
		line     int
		column   int
		rendered string
	}{
		{"dollar", "5 $ 3", "$", 2, 0, 2, "Illegal Char Error: $\nFile <stdin>, line 1"},
		{"letter first", "x", "x", 0, 0, 0, "Illegal Char Error: x\nFile <stdin>, line 1"},
		{"second decimal point", "1.2.3", ".", 3, 0, 3, "Illegal Char Error: .\nFile <stdin>, line 1"},
		{"leading decimal point", ".5", ".", 0, 0, 0, "Illegal Char Error: .\nFile <stdin>, line 1"},
		{"after newline", "1 +\n2 # 3", "#", 6, 1, 2, "Illegal Char Error: #\nFile <stdin>, line 2"},
		{"after two newlines", "\n\n%", "%", 2, 2, 0, "Illegal Char Error: %\nFile <stdin>, line 3"},
		{"non-ascii digit", "٣", "٣", 0, 0, 0, "Illegal Char Error: ٣\nFile <stdin>, line 1"},
		{"rune offsets", "  é", "é", 2, 0, 2, "Illegal Char Error: é\nFile <stdin>, line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize("<stdin>", tt.input)
			require.Nil(t, toks)

			var lexErr *Error
			require.True(t, errors.As(err, &lexErr))
			require.Equal(t, KindIllegalChar, lexErr.Kind)
			require.Equal(t, tt.detail, lexErr.Detail)
			require.Equal(t, tt.offset, lexErr.Start.Offset)
			require.Equal(t, tt.line, lexErr.Start.Line)
			require.Equal(t, tt.column, lexErr.Start.Column)
			require.Equal(t, tt.offset+1, lexErr.End.Offset)
			require.Equal(t, tt.input, lexErr.Start.Text)
			require.Equal(t, tt.rendered, err.Error())
		})
	}
}

func TestNextSecondDecimalPoint(t *testing.T) {
	l := NewLexer("<stdin>", "1.2.3", nil)

	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, token.Float, tok.Type)
	require.Equal(t, 1.2, tok.FloatVal)

	_, err = l.Next()
	require.EqualError(t, err, "Illegal Char Error: .\nFile <stdin>, line 1")

	_, again := l.Next()
	require.Same(t, err, again)
}

func TestNextAtEnd(t *testing.T) {
	l := NewLexer("<stdin>", "7", nil)
	tok, err := l.Next()
	require.NoError(t, err)
	require.Equal(t, int64(7), tok.IntVal)

	for i := 0; i < 2; i++ {
		tok, err = l.Next()
		require.NoError(t, err)
		require.Equal(t, token.EOF, tok.Type)
	}
}

func TestTokenPositions(t *testing.T) {
	toks, err := Tokenize("<stdin>", "12 +\n (3.5)")
	require.NoError(t, err)

	want := []token.Pos{
		{Offset: 0, Line: 0, Column: 0},
		{Offset: 3, Line: 0, Column: 3},
		{Offset: 6, Line: 1, Column: 1},
		{Offset: 7, Line: 1, Column: 2},
		{Offset: 10, Line: 1, Column: 5},
	}
	got := make([]token.Pos, len(toks))
	for i, tok := range toks {
		got[i] = tok.Pos
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token positions mismatch (-want +got):\n%s", diff)
	}
}

func TestNumberOverflow(t *testing.T) {
	toks, err := Tokenize("calc", "1 + 99999999999999999999")
	require.Nil(t, toks)

	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	require.Equal(t, KindNumberOverflow, lexErr.Kind)
	require.Equal(t, "99999999999999999999", lexErr.Detail)
	require.Equal(t, 4, lexErr.Start.Column)
	require.Equal(t, 24, lexErr.End.Column)
	require.Equal(t, 20, lexErr.Width())
	require.Equal(t, "Number Overflow Error: 99999999999999999999\nFile calc, line 1", err.Error())
}

func TestErrorContext(t *testing.T) {
	_, err := Tokenize("<stdin>", "5 $ 3")
	var lexErr *Error
	require.ErrorAs(t, err, &lexErr)
	require.Equal(t, "5 $ 3\n  ^", lexErr.Context())

	_, err = Tokenize("<stdin>", "1\n  2 ! 3\n")
	require.ErrorAs(t, err, &lexErr)
	require.Equal(t, "  2 ! 3\n    ^", lexErr.Context())
}

// Number tokens must carry the value of the literal as an independent
// expression engine reads it.
func TestNumberValues(t *testing.T) {
	for _, lit := range []string{"0", "42", "123456789", "3.14", "10.0", "0.001", "2.5"} {
		t.Run(lit, func(t *testing.T) {
			want, err := expr.Eval(lit, nil)
			require.NoError(t, err)

			toks, err := Tokenize("<stdin>", lit)
			require.NoError(t, err)
			require.Len(t, toks, 1)

			switch toks[0].Type {
			case token.Int:
				require.Equal(t, want, int(toks[0].IntVal))
			case token.Float:
				require.Equal(t, want, toks[0].FloatVal)
			default:
				t.Fatalf("unexpected token %s", toks[0])
			}
		})
	}
}

func TestWarnings(t *testing.T) {
	l := NewLexer("<stdin>", "007 + 3. + 0 + 0.5", nil)
	_, err := l.Tokenize()
	require.NoError(t, err)

	ws := l.Warnings()
	require.Len(t, ws, 2)
	require.Equal(t, config.WarnLeadingZero, ws[0].Kind)
	require.Equal(t, 0, ws[0].Pos.Column)
	require.Equal(t, config.WarnTrailingDot, ws[1].Kind)
	require.Equal(t, 6, ws[1].Pos.Column)
	require.Contains(t, ws[1].Message, "'3.'")

	cfg := config.NewConfig()
	cfg.SetAllWarnings(false)
	l = NewLexer("<stdin>", "007 + 3.", cfg)
	_, err = l.Tokenize()
	require.NoError(t, err)
	require.Empty(t, l.Warnings())
}
