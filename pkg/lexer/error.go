package lexer

import "fmt"

const (
	KindIllegalChar    = "Illegal Char Error"
	KindNumberOverflow = "Number Overflow Error"
)

// Error is a lexical failure. End is always Start advanced past the
// offending span.
type Error struct {
	Kind   string
	Start  Position
	End    Position
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s\nFile %s, line %d", e.Kind, e.Detail, e.Start.SourceName, e.Start.Line+1)
}

// Width is the number of characters between Start and End on Start's line.
func (e *Error) Width() int {
	if e.End.Line == e.Start.Line && e.End.Column > e.Start.Column {
		return e.End.Column - e.Start.Column
	}
	return 1
}

// Context returns the source line holding Start and a caret line under the
// offending span, or "" if the position is outside the text.
func (e *Error) Context() string {
	line, caret, ok := e.Start.SourceLine(e.Width())
	if !ok {
		return ""
	}
	return line + "\n" + caret
}
