package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestSet() (*FlagSet, *string, *bool, *[]string) {
	var name string
	var verbose bool
	var files []string
	fs := NewFlagSet("test")
	fs.String(&name, "name", "n", "<stdin>", "Source name.", "name")
	fs.Bool(&verbose, "verbose", "v", false, "Verbose output.")
	fs.List(&files, "include", "I", "Include a file.", "file")
	return fs, &name, &verbose, &files
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		verbose bool
		files   []string
		rest    []string
	}{
		{"defaults", []string{"a"}, "<stdin>", false, []string{}, []string{"a"}},
		{"long with space", []string{"--name", "calc"}, "calc", false, []string{}, []string{}},
		{"long with equals", []string{"--name=calc", "--verbose"}, "calc", true, []string{}, []string{}},
		{"short attached", []string{"-ncalc", "-v"}, "calc", true, []string{}, []string{}},
		{"short separate", []string{"-n", "calc", "x"}, "calc", false, []string{}, []string{"x"}},
		{"single dash long", []string{"-name=calc"}, "calc", false, []string{}, []string{}},
		{"list", []string{"-I", "a", "--include=b"}, "<stdin>", false, []string{"a", "b"}, []string{}},
		{"terminator", []string{"--", "-v", "-n"}, "<stdin>", false, []string{}, []string{"-v", "-n"}},
		{"bool value", []string{"--verbose=false"}, "<stdin>", false, []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, name, verbose, files := newTestSet()
			require.NoError(t, fs.Parse(tt.args))
			require.Equal(t, tt.want, *name)
			require.Equal(t, tt.verbose, *verbose)
			if diff := cmp.Diff(tt.files, *files); diff != "" {
				t.Errorf("list mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.rest, fs.Args()); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--unknown"},
		{"-x"},
		{"--name"},
		{"-n"},
		{"--verbose=maybe"},
		{"--=x"},
	} {
		fs, _, _, _ := newTestSet()
		require.Error(t, fs.Parse(args), "args %v", args)
	}
}

func TestFlagGroupRegistration(t *testing.T) {
	fs := NewFlagSet("test")
	entries := []FlagGroupEntry{{Name: "echo", Prefix: "F", Usage: "Echo input.", Enabled: new(bool), Disabled: new(bool)}}
	fs.AddFlagGroup("Feature Flags", "features", "feature", "Available Features:", entries)

	require.NotNil(t, fs.Lookup("Fecho"))
	require.NotNil(t, fs.Lookup("Fno-echo"))
	require.NoError(t, fs.Parse([]string{"-Fecho"}))
	require.True(t, *entries[0].Enabled)
	require.False(t, *entries[0].Disabled)
}

func TestRedefinitionPanics(t *testing.T) {
	fs, _, _, _ := newTestSet()
	var s string
	require.Panics(t, func() { fs.String(&s, "name", "", "", "dup", "") })
	require.Panics(t, func() { fs.String(&s, "other", "n", "", "dup", "") })
}

func TestAppRun(t *testing.T) {
	var got []string
	app := NewApp("sipit")
	app.Synopsis = "[options] [file ...]"
	app.Description = "Tokenizes arithmetic expressions."
	var stdout, stderr bytes.Buffer
	app.Stdout, app.Stderr = &stdout, &stderr
	var echo bool
	app.FlagSet.Bool(&echo, "echo", "", false, "Echo input.")
	app.Action = func(args []string) error {
		got = args
		return nil
	}

	require.NoError(t, app.Run([]string{"--echo", "a.sip"}))
	require.True(t, echo)
	require.Equal(t, []string{"a.sip"}, got)
	require.Empty(t, stdout.String())
}

func TestAppHelpAndUsage(t *testing.T) {
	app := NewApp("sipit")
	app.Synopsis = "[options]"
	app.Description = "Tokenizes arithmetic expressions."
	var stdout, stderr bytes.Buffer
	app.Stdout, app.Stderr = &stdout, &stderr
	var name string
	app.FlagSet.String(&name, "name", "n", "<stdin>", "Source name used in error messages.", "name")
	entries := []FlagGroupEntry{{Name: "trailing-dot", Prefix: "W", Usage: "Warn on '3.'.", Enabled: new(bool), Disabled: new(bool)}}
	*entries[0].Enabled = true
	app.FlagSet.AddFlagGroup("Warning Flags", "warnings", "warning", "Available Warnings:", entries)
	app.Action = func([]string) error { return errors.New("action must not run") }

	require.NoError(t, app.Run([]string{"-h"}))
	help := stdout.String()
	require.Contains(t, help, "Synopsis")
	require.Contains(t, help, "sipit [options]")
	require.Contains(t, help, "-n, --name <name>")
	require.Contains(t, help, "|<stdin>|")
	require.Contains(t, help, "-W<warning>")
	require.Contains(t, help, "-Wno-<warning>")
	require.Contains(t, help, "trailing-dot")
	require.Contains(t, help, "|x|")
	require.NotContains(t, help, "--Wtrailing-dot")

	stdout.Reset()
	app2 := NewApp("sipit")
	app2.Stdout, app2.Stderr = &stdout, &stderr
	require.Error(t, app2.Run([]string{"--bogus"}))
	require.Contains(t, stderr.String(), "unknown flag: --bogus")
	require.Contains(t, stderr.String(), "Run 'sipit --help'")
}

func TestWrapText(t *testing.T) {
	require.Equal(t, []string{}, wrapText("   ", 10))
	require.Equal(t, []string{"one two", "three"}, wrapText("one two three", 8))
	require.Equal(t, []string{"unbreakableword"}, wrapText("unbreakableword", 4))
	require.Equal(t, []string{"a b"}, wrapText("a b", 0))
}
