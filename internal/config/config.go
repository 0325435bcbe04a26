// Package config defines generator configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/lfgmenu/internal/domain/types"
)

// Config contains process configuration. It replaces every file location
// the generator used to hard-code.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log record encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// TeamEventsPath and LeagueEventsPath locate the input collections
	// (.json, .yaml or .yml).
	TeamEventsPath   string `koanf:"team_events_path"`
	LeagueEventsPath string `koanf:"league_events_path"`

	// TemplateDir holds *.tmpl files. Empty uses the embedded defaults.
	TemplateDir string `koanf:"template_dir"`

	// Template names inside the template set.
	TopLevelTemplate   string `koanf:"top_level_template"`
	TeamTemplate       string `koanf:"team_template"`
	LeagueTemplate     string `koanf:"league_template"`
	TipSectionTemplate string `koanf:"tip_section_template"`

	// OutputPath is overwritten with the generated menu document.
	OutputPath string `koanf:"output_path"`

	// PartitionThreshold is the first level requirement of the second team group.
	PartitionThreshold int `koanf:"partition_threshold"`

	// TipScheme is "flat" or "categorized".
	TipScheme string `koanf:"tip_scheme"`

	// MetricsTextfile, when set, receives run metrics in Prometheus text format.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// DedupeCaseFold treats menu names differing only by case as duplicates.
	DedupeCaseFold bool `koanf:"dedupe_case_fold"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		TeamEventsPath:     "properties/team_events.json",
		LeagueEventsPath:   "properties/league_events.json",
		TemplateDir:        "",
		TopLevelTemplate:   "lfgmacros.mnu.tmpl",
		TeamTemplate:       "team_event.mnu.tmpl",
		LeagueTemplate:     "league_event.mnu.tmpl",
		TipSectionTemplate: "tip_section.mnu.tmpl",
		OutputPath:         "lfgmacros.mnu",
		PartitionThreshold: 36,
		TipScheme:          string(types.SchemeFlat),
	}
}

// Scheme returns the parsed tip scheme.
func (c *Config) Scheme() (types.TipScheme, error) {
	s, err := types.ParseTipScheme(c.TipScheme)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return s, nil
}

// Validate checks that every required setting is present.
func (c *Config) Validate(_ context.Context) error {
	required := []struct {
		key, val string
	}{
		{"team_events_path", c.TeamEventsPath},
		{"league_events_path", c.LeagueEventsPath},
		{"top_level_template", c.TopLevelTemplate},
		{"team_template", c.TeamTemplate},
		{"league_template", c.LeagueTemplate},
		{"tip_section_template", c.TipSectionTemplate},
		{"output_path", c.OutputPath},
	}
	for _, r := range required {
		if strings.TrimSpace(r.val) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, r.key)
		}
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if _, err := c.Scheme(); err != nil {
		return err
	}
	return nil
}

// Templates lists every template name a run with scheme renders. The tip
// section template is only needed by the categorized scheme.
func (c *Config) Templates(scheme types.TipScheme) []string {
	names := []string{c.TopLevelTemplate, c.TeamTemplate, c.LeagueTemplate}
	if scheme == types.SchemeCategorized {
		names = append(names, c.TipSectionTemplate)
	}
	return names
}
