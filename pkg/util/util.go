package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xplshn/sipit/pkg/config"
	"github.com/xplshn/sipit/pkg/lexer"
	"github.com/xplshn/sipit/pkg/token"
)

const (
	cRed    = "\033[31m"
	cGreen  = "\033[32m"
	cYellow = "\033[33m"
	cNone   = "\033[0m"
)

func paint(cfg *config.Config, color, s string) string {
	if !cfg.IsFeatureEnabled(config.FeatColor) {
		return s
	}
	return color + s + cNone
}

// writeContext prints the source line and a caret under width characters at pos.
func writeContext(w io.Writer, cfg *config.Config, pos lexer.Position, width int) {
	line, caret, ok := pos.SourceLine(width)
	if !ok {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)
	fmt.Fprintf(w, "  %s\n", paint(cfg, cGreen, caret))
}

// FormatTokens renders a token list the way the shell prints it, with
// @line:column suffixes when the positions feature is enabled.
func FormatTokens(cfg *config.Config, toks []token.Token) string {
	if !cfg.IsFeatureEnabled(config.FeatPositions) {
		return token.Join(toks)
	}
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = fmt.Sprintf("%s@%d:%d", t, t.Pos.Line+1, t.Pos.Column+1)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// LexError prints the two-line error rendering to out and, when the
// context feature is enabled, the offending line with a caret to diag.
func LexError(out, diag io.Writer, cfg *config.Config, e *lexer.Error) {
	fmt.Fprintln(out, e.Error())
	if cfg.IsFeatureEnabled(config.FeatContext) {
		fmt.Fprintf(diag, "%s: %s %s\n", e.Start, paint(cfg, cRed, "error:"), e.Kind)
		writeContext(diag, cfg, e.Start, e.Width())
	}
}

// Warn prints a lexer warning tagged with the flag that disables it.
func Warn(w io.Writer, cfg *config.Config, wn lexer.Warning) {
	if !cfg.IsWarningEnabled(wn.Kind) {
		return
	}
	fmt.Fprintf(w, "%s: %s %s [-W%s]\n", wn.Pos, paint(cfg, cYellow, "warning:"), wn.Message, cfg.Warnings[wn.Kind].Name)
	if cfg.IsFeatureEnabled(config.FeatContext) {
		writeContext(w, cfg, wn.Pos, 1)
	}
}

// Info prints an informational message prefixed with the program name.
func Info(w io.Writer, prog, format string, args ...any) {
	fmt.Fprintf(w, "%s: info: %s\n", prog, fmt.Sprintf(format, args...))
}

// Fatal prints an error prefixed with the program name and exits.
func Fatal(prog, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s: error: %s\n", prog, fmt.Sprintf(format, args...))
	os.Exit(1)
}
