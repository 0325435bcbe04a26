package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/lfgmenu/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"LFGMENU_CONFIG",
	"LFGMENU_LOG_LEVEL",
	"LFGMENU_TEAM_EVENTS_PATH",
	"LFGMENU_LEAGUE_EVENTS_PATH",
	"LFGMENU_TEMPLATE_DIR",
	"LFGMENU_OUTPUT_PATH",
	"LFGMENU_PARTITION_THRESHOLD",
	"LFGMENU_TIP_SCHEME",
	"LFGMENU_METRICS_TEXTFILE",
	"LFGMENU_LOG_FORMAT",
	"LFGMENU_DEDUPE_CASE_FOLD",
}

func clearConfigEnvVars() {
	for _, key := range configEnvVars {
		_ = os.Unsetenv(key)
	}
}

func createTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		noDotEnv := config.WithDotEnv("")

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx, noDotEnv)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TeamEventsPath, convey.ShouldEqual, "properties/team_events.json")
				convey.So(cfg.LeagueEventsPath, convey.ShouldEqual, "properties/league_events.json")
				convey.So(cfg.OutputPath, convey.ShouldEqual, "lfgmacros.mnu")
				convey.So(cfg.PartitionThreshold, convey.ShouldEqual, 36)
				convey.So(cfg.TipScheme, convey.ShouldEqual, "flat")
				convey.So(cfg.TemplateDir, convey.ShouldEqual, "")
				convey.So(cfg.MetricsTextfile, convey.ShouldEqual, "")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("LFGMENU_OUTPUT_PATH", "out/menu.mnu")
			_ = os.Setenv("LFGMENU_PARTITION_THRESHOLD", "20")
			_ = os.Setenv("LFGMENU_TIP_SCHEME", "categorized")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, noDotEnv)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.OutputPath, convey.ShouldEqual, "out/menu.mnu")
				convey.So(cfg.PartitionThreshold, convey.ShouldEqual, 20)
				convey.So(cfg.TipScheme, convey.ShouldEqual, "categorized")
			})
		})

		convey.Convey("When loading config with a YAML file from the environment", func() {
			path := createTempFile(t, "lfgmenu.yaml", `
team_events_path: data/team.yaml
template_dir: templates
partition_threshold: 0
`)
			_ = os.Setenv("LFGMENU_CONFIG", path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, noDotEnv)

			convey.Convey("Then it should merge the file with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TeamEventsPath, convey.ShouldEqual, "data/team.yaml")
				convey.So(cfg.TemplateDir, convey.ShouldEqual, "templates")
				convey.So(cfg.PartitionThreshold, convey.ShouldEqual, 0)
				convey.So(cfg.LeagueEventsPath, convey.ShouldEqual, "properties/league_events.json")
			})
		})

		convey.Convey("When file, env and overrides all set the same key", func() {
			path := createTempFile(t, "lfgmenu.yaml", "output_path: from-file.mnu\nlog_level: debug\n")
			_ = os.Setenv("LFGMENU_OUTPUT_PATH", "from-env.mnu")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, noDotEnv,
				config.WithFile(path),
				config.WithOverrides(map[string]any{"output_path": "from-flag.mnu"}),
			)

			convey.Convey("Then overrides should win, then env, then file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.OutputPath, convey.ShouldEqual, "from-flag.mnu")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When the log format and name folding come from the environment", func() {
			_ = os.Setenv("LFGMENU_LOG_FORMAT", "json")
			_ = os.Setenv("LFGMENU_DEDUPE_CASE_FOLD", "true")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, noDotEnv)

			convey.Convey("Then both should be decoded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.DedupeCaseFold, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a .env file sets variables", func() {
			dotenv := createTempFile(t, ".env", "LFGMENU_METRICS_TEXTFILE=/tmp/lfgmenu.prom\n")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, config.WithDotEnv(dotenv))

			convey.Convey("Then they should be read like the environment", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MetricsTextfile, convey.ShouldEqual, "/tmp/lfgmenu.prom")
			})
		})

		convey.Convey("When the .env file is missing", func() {
			cfg, err := config.Load(ctx, config.WithDotEnv(filepath.Join(t.TempDir(), ".env")))

			convey.Convey("Then it should be ignored", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			path := createTempFile(t, "bad.yaml", `invalid: yaml: content: [`)

			cfg, err := config.Load(ctx, noDotEnv, config.WithFile(path))

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			cfg, err := config.Load(ctx, noDotEnv, config.WithFile("/non/existent/file.yaml"))

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an empty output path", func() {
			cfg, err := config.Load(ctx, noDotEnv, config.WithOverrides(map[string]any{"output_path": ""}))

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "output_path must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown tip scheme", func() {
			_ = os.Setenv("LFGMENU_TIP_SCHEME", "nested")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, noDotEnv)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an invalid numeric threshold", func() {
			_ = os.Setenv("LFGMENU_PARTITION_THRESHOLD", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, noDotEnv)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}
