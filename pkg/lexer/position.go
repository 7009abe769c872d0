package lexer

import (
	"fmt"
	"strings"

	"github.com/xplshn/sipit/pkg/token"
)

// EOF is passed to Advance when the cursor is not on a character.
const EOF rune = -1

// Position is a cursor over the source text. Offset counts characters and
// points at the most recently consumed one, so it starts at -1. Line is
// zero-based; Column starts at -1 and is reset to 0 after a newline.
type Position struct {
	Offset     int
	Line       int
	Column     int
	SourceName string
	Text       string
}

func newPosition(sourceName, text string) *Position {
	return &Position{Offset: -1, Line: 0, Column: -1, SourceName: sourceName, Text: text}
}

// Advance consumes ch, the character the cursor is leaving.
func (p *Position) Advance(ch rune) *Position {
	p.Offset++
	p.Column++
	if ch == '\n' {
		p.Line++
		p.Column = 0
	}
	return p
}

// Snapshot returns an independent copy that later calls to Advance do not affect.
func (p *Position) Snapshot() Position { return *p }

func (p Position) Token() token.Pos {
	return token.Pos{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

// String renders name:line:col with 1-based line and column.
func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.SourceName, p.Line+1, p.Column+1)
}

// SourceLine returns the line of Text holding p and a caret line marking
// width characters starting at p. ok is false when p lies outside Text.
func (p Position) SourceLine(width int) (line, caret string, ok bool) {
	lines := strings.Split(p.Text, "\n")
	if p.Line < 0 || p.Line >= len(lines) {
		return "", "", false
	}
	line = strings.TrimRight(lines[p.Line], "\r")
	caret = strings.Repeat(" ", max(p.Column, 0)) + "^" + strings.Repeat("~", max(width, 1)-1)
	return line, caret, true
}
