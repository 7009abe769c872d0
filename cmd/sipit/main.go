package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/xplshn/sipit/pkg/cli"
	"github.com/xplshn/sipit/pkg/config"
	"github.com/xplshn/sipit/pkg/lexer"
	"github.com/xplshn/sipit/pkg/util"
)

const prog = "sipit"

// errLexical marks a run that printed at least one lexical error.
var errLexical = errors.New("lexical error")

func main() {
	app := cli.NewApp(prog)
	app.Synopsis = "[options] [file ...]"
	app.Description = "Tokenizes arithmetic expressions. Without arguments it reads one expression per line from standard input and prints the tokens of each, or the first illegal character."
	app.Authors = []string{"xplshn"}
	app.Repository = "<https://github.com/xplshn/sipit>"

	var (
		name     string
		prompt   string
		expr     string
		wall     bool
		wnoall   bool
		useFiles bool
	)

	cfg := config.NewConfig()
	fs := app.FlagSet
	fs.String(&name, "name", "n", config.DefaultSourceName, "Source name used in error messages.", "name")
	fs.String(&prompt, "prompt", "p", cfg.Prompt, "Prompt shown when standard input is a terminal.", "text")
	fs.String(&expr, "expr", "e", "", "Tokenize a single expression and exit.", "expr")
	fs.Bool(&useFiles, "file", "f", false, "Tokenize each argument as a whole file instead of reading standard input.")
	fs.Bool(&wall, "Wall", "", false, "Enable all warnings.")
	fs.Bool(&wnoall, "Wno-all", "", false, "Disable all warnings.")
	warningFlags, featureFlags := cfg.SetupFlagGroups(fs)

	app.Action = func(args []string) error {
		cfg.SetFeature(config.FeatColor, term.IsTerminal(int(os.Stderr.Fd())))
		if env := os.Getenv("SIPITFLAGS"); env != "" {
			if err := cfg.ProcessFlags(env); err != nil {
				util.Fatal(prog, "SIPITFLAGS: %v", err)
			}
		}
		if wall {
			cfg.SetAllWarnings(true)
		}
		if wnoall {
			cfg.SetAllWarnings(false)
		}
		cfg.ApplyFlagGroups(warningFlags, featureFlags)
		cfg.SourceName, cfg.Prompt = name, prompt

		switch {
		case expr != "":
			return tokenizeOne(os.Stdout, os.Stderr, cfg, cfg.SourceName, expr)
		case useFiles || len(args) > 0:
			if len(args) == 0 {
				util.Fatal(prog, "no input files specified.")
			}
			return tokenizeFiles(os.Stdout, os.Stderr, cfg, args)
		}

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		if err := repl(os.Stdin, os.Stdout, os.Stderr, cfg, interactive); err != nil {
			util.Fatal(prog, "%v", err)
		}
		return nil
	}

	if err := app.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// repl tokenizes in line by line until end of input. Lexical errors are
// printed and do not stop the loop.
func repl(in io.Reader, out, diag io.Writer, cfg *config.Config, interactive bool) error {
	r := bufio.NewReader(in)
	for {
		if interactive {
			fmt.Fprint(out, cfg.Prompt)
		}
		line, err := r.ReadString('\n')
		if line != "" {
			_ = tokenizeOne(out, diag, cfg, cfg.SourceName, line)
		}
		if errors.Is(err, io.EOF) {
			if interactive {
				fmt.Fprintln(out)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	}
}

func tokenizeFiles(out, diag io.Writer, cfg *config.Config, paths []string) error {
	var failed error
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			util.Fatal(prog, "could not read file '%s': %v", path, err)
		}
		if err := tokenizeOne(out, diag, cfg, path, string(content)); err != nil {
			failed = err
		}
	}
	return failed
}

// tokenizeOne prints the tokens of text, or its lexical error, and any
// warnings. It returns errLexical when text did not tokenize.
func tokenizeOne(out, diag io.Writer, cfg *config.Config, sourceName, text string) error {
	if cfg.IsFeatureEnabled(config.FeatEcho) {
		fmt.Fprintf(out, "> %s\n", trimNewline(text))
	}

	l := lexer.NewLexer(sourceName, text, cfg)
	toks, err := l.Tokenize()
	for _, w := range l.Warnings() {
		util.Warn(diag, cfg, w)
	}

	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		util.LexError(out, diag, cfg, lexErr)
		return errLexical
	}
	fmt.Fprintln(out, util.FormatTokens(cfg, toks))
	return nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
