package config

import (
	"fmt"
	"strings"

	"github.com/xplshn/sipit/pkg/cli"
)

type Feature int

const (
	FeatContext Feature = iota
	FeatColor
	FeatPositions
	FeatEcho
	FeatCount
)

type Warning int

const (
	WarnTrailingDot Warning = iota
	WarnLeadingZero
	WarnCount
)

type Info struct {
	Name        string
	Enabled     bool
	Description string
}

type Config struct {
	Features   map[Feature]Info
	Warnings   map[Warning]Info
	FeatureMap map[string]Feature
	WarningMap map[string]Warning
	SourceName string
	Prompt     string
}

const DefaultSourceName = "<stdin>"

func NewConfig() *Config {
	cfg := &Config{
		Features:   make(map[Feature]Info),
		Warnings:   make(map[Warning]Info),
		FeatureMap: make(map[string]Feature),
		WarningMap: make(map[string]Warning),
		SourceName: DefaultSourceName,
		Prompt:     "sipit > ",
	}

	features := map[Feature]Info{
		FeatContext:   {"context", true, "Print the offending source line and a caret under lexical errors."},
		FeatColor:     {"color", false, "Colorize diagnostics with ANSI escapes."},
		FeatPositions: {"positions", false, "Print each token followed by its @line:column."},
		FeatEcho:      {"echo", false, "Echo every input line before its result."},
	}

	warnings := map[Warning]Info{
		WarnTrailingDot: {"trailing-dot", true, "Warn on number literals ending in a decimal point, like '3.'."},
		WarnLeadingZero: {"leading-zero", true, "Warn on integer literals with redundant leading zeros, like '007'."},
	}

	cfg.Features, cfg.Warnings = features, warnings
	for ft, info := range features {
		cfg.FeatureMap[info.Name] = ft
	}
	for wt, info := range warnings {
		cfg.WarningMap[info.Name] = wt
	}

	return cfg
}

func (c *Config) SetFeature(ft Feature, enabled bool) {
	if info, ok := c.Features[ft]; ok {
		info.Enabled = enabled
		c.Features[ft] = info
	}
}

func (c *Config) IsFeatureEnabled(ft Feature) bool { return c.Features[ft].Enabled }

func (c *Config) SetWarning(wt Warning, enabled bool) {
	if info, ok := c.Warnings[wt]; ok {
		info.Enabled = enabled
		c.Warnings[wt] = info
	}
}

func (c *Config) IsWarningEnabled(wt Warning) bool { return c.Warnings[wt].Enabled }

// SetAllWarnings enables or disables every warning at once (-Wall / -Wno-all).
func (c *Config) SetAllWarnings(enabled bool) {
	for i := Warning(0); i < WarnCount; i++ {
		c.SetWarning(i, enabled)
	}
}

// ApplyFlag applies a single -W<name>, -Wno-<name>, -F<name> or -Fno-<name> flag.
func (c *Config) ApplyFlag(flag string) error {
	trimmed := strings.TrimLeft(flag, "-")
	var isWarning bool

	switch {
	case strings.HasPrefix(trimmed, "W"):
		isWarning = true
	case strings.HasPrefix(trimmed, "F"):
	default:
		return fmt.Errorf("unrecognized flag '%s': expected -W<warning> or -F<feature>", flag)
	}

	name := trimmed[1:]
	enable := true
	if strings.HasPrefix(name, "no-") {
		name, enable = strings.TrimPrefix(name, "no-"), false
	}

	if isWarning {
		if name == "all" {
			c.SetAllWarnings(enable)
			return nil
		}
		w, ok := c.WarningMap[name]
		if !ok {
			return fmt.Errorf("unknown warning '%s'", name)
		}
		c.SetWarning(w, enable)
		return nil
	}

	f, ok := c.FeatureMap[name]
	if !ok {
		return fmt.Errorf("unknown feature '%s'", name)
	}
	c.SetFeature(f, enable)
	return nil
}

// ProcessFlags applies a whitespace separated list of -W/-F flags, e.g. from SIPITFLAGS.
func (c *Config) ProcessFlags(flagStr string) error {
	for _, flag := range strings.Fields(flagStr) {
		if err := c.ApplyFlag(flag); err != nil {
			return err
		}
	}
	return nil
}

// FlagGroupEntries holds the per-entry enable/disable switches registered on a FlagSet.
type FlagGroupEntries []cli.FlagGroupEntry

// SetupFlagGroups registers -W and -F flag groups on fs. The returned entries
// are indexed by Warning and Feature respectively and must be applied with
// ApplyFlagGroups once the command line has been parsed.
func (c *Config) SetupFlagGroups(fs *cli.FlagSet) (warningFlags, featureFlags FlagGroupEntries) {
	warningFlags = make(FlagGroupEntries, WarnCount)
	for i := Warning(0); i < WarnCount; i++ {
		info := c.Warnings[i]
		warningFlags[i] = cli.FlagGroupEntry{
			Name: info.Name, Prefix: "W", Usage: info.Description,
			Enabled: new(bool), Disabled: new(bool),
		}
	}
	fs.AddFlagGroup("Warning Flags", "Enable or disable specific warnings", "warning", "Available Warnings:", warningFlags)

	featureFlags = make(FlagGroupEntries, FeatCount)
	for i := Feature(0); i < FeatCount; i++ {
		info := c.Features[i]
		featureFlags[i] = cli.FlagGroupEntry{
			Name: info.Name, Prefix: "F", Usage: info.Description,
			Enabled: new(bool), Disabled: new(bool),
		}
	}
	fs.AddFlagGroup("Feature Flags", "Enable or disable specific features", "feature", "Available Features:", featureFlags)

	return warningFlags, featureFlags
}

// ApplyFlagGroups copies the parsed group switches into the config. A
// disable switch wins over an enable switch for the same entry.
func (c *Config) ApplyFlagGroups(warningFlags, featureFlags FlagGroupEntries) {
	for i, entry := range warningFlags {
		if *entry.Enabled {
			c.SetWarning(Warning(i), true)
		}
		if *entry.Disabled {
			c.SetWarning(Warning(i), false)
		}
	}
	for i, entry := range featureFlags {
		if *entry.Enabled {
			c.SetFeature(Feature(i), true)
		}
		if *entry.Disabled {
			c.SetFeature(Feature(i), false)
		}
	}
}
