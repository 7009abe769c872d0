package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/xplshn/sipit/pkg/config"
	"github.com/xplshn/sipit/pkg/token"
)

// Warning is a non-fatal remark about an accepted literal.
type Warning struct {
	Kind    config.Warning
	Pos     Position
	Message string
}

type Lexer struct {
	source   []rune
	pos      *Position
	ch       rune
	cfg      *config.Config
	err      error
	warnings []Warning
}

// NewLexer positions the cursor on the first character of text. A nil cfg
// uses the defaults from config.NewConfig.
func NewLexer(sourceName, text string, cfg *config.Config) *Lexer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	l := &Lexer{
		source: []rune(text),
		pos:    newPosition(sourceName, text),
		ch:     EOF,
		cfg:    cfg,
	}
	l.advance()
	return l
}

// Tokenize scans text in one pass. It returns either the tokens (possibly
// none) or the first lexical error, never both.
func Tokenize(sourceName, text string) ([]token.Token, error) {
	return NewLexer(sourceName, text, nil).Tokenize()
}

func (l *Lexer) Tokenize() ([]token.Token, error) {
	toks := []token.Token{}
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.Type == token.EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

// Next returns the next token, an EOF token once the input is exhausted, or
// the error that stopped the scan. After an error every call returns it again.
func (l *Lexer) Next() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}

	for l.ch != EOF {
		ch := l.ch
		switch {
		case unicode.IsSpace(ch):
			l.advance()
		case isDigit(ch):
			return l.numberLiteral()
		default:
			if typ, ok := token.SymbolMap[ch]; ok {
				tok := token.NewSymbol(typ, l.pos.Token())
				l.advance()
				return tok, nil
			}
			start := l.pos.Snapshot()
			l.advance()
			return token.Token{}, l.fail(KindIllegalChar, start, string(ch))
		}
	}
	return token.Token{Type: token.EOF, Pos: l.pos.Token()}, nil
}

// Warnings returns the warnings collected so far, in source order.
func (l *Lexer) Warnings() []Warning { return l.warnings }

func (l *Lexer) advance() {
	l.pos.Advance(l.ch)
	if l.pos.Offset < len(l.source) {
		l.ch = l.source[l.pos.Offset]
	} else {
		l.ch = EOF
	}
}

func (l *Lexer) fail(kind string, start Position, detail string) error {
	l.err = &Error{Kind: kind, Start: start, End: l.pos.Snapshot(), Detail: detail}
	return l.err
}

func (l *Lexer) warn(wt config.Warning, pos Position, format string, args ...any) {
	if !l.cfg.IsWarningEnabled(wt) {
		return
	}
	l.warnings = append(l.warnings, Warning{Kind: wt, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// numberLiteral accumulates digits and at most one decimal point. A second
// point ends the literal and is left for Next, where it is illegal.
func (l *Lexer) numberLiteral() (token.Token, error) {
	start := l.pos.Snapshot()
	var sb strings.Builder
	dots := 0

	for l.ch != EOF {
		if isDigit(l.ch) {
			sb.WriteRune(l.ch)
		} else if l.ch == '.' {
			if dots == 1 {
				break
			}
			dots++
			sb.WriteRune('.')
		} else {
			break
		}
		l.advance()
	}

	lit := sb.String()
	if dots == 0 {
		val, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			// digits only, so the range is the one way ParseInt can fail
			return token.Token{}, l.fail(KindNumberOverflow, start, lit)
		}
		if len(lit) > 1 && lit[0] == '0' {
			l.warn(config.WarnLeadingZero, start, "Integer literal '%s' has redundant leading zeros", lit)
		}
		return token.NewInt(val, start.Token()), nil
	}

	val, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return token.Token{}, l.fail(KindNumberOverflow, start, lit)
	}
	if strings.HasSuffix(lit, ".") {
		l.warn(config.WarnTrailingDot, start, "Number literal '%s' ends in a decimal point", lit)
	}
	return token.NewFloat(val, start.Token()), nil
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }
