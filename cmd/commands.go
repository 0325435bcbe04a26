package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	service "github.com/okian/lfgmenu/internal/app"
	"github.com/okian/lfgmenu/internal/adapters/output"
	"github.com/okian/lfgmenu/internal/config"
	"github.com/okian/lfgmenu/pkg/logger"
	"github.com/okian/lfgmenu/pkg/metrics"
)

// cliFlags holds command-line settings. Only flags the user actually set
// override the loaded configuration.
type cliFlags struct {
	configFile      string
	envFile         string
	teamEvents      string
	leagueEvents    string
	templateDir     string
	output          string
	threshold       int
	tipScheme       string
	metricsTextfile string
	logLevel        string
	logFormat       string
	caseFoldNames   bool
	stdout          bool
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"team-events":      "team_events_path",
	"league-events":    "league_events_path",
	"templates":        "template_dir",
	"output":           "output_path",
	"threshold":        "partition_threshold",
	"tip-scheme":       "tip_scheme",
	"metrics-textfile": "metrics_textfile",
	"log-level":        "log_level",
	"log-format":       "log_format",
	"dedupe-case-fold": "dedupe_case_fold",
}

func (f *cliFlags) overrides(fs *pflag.FlagSet) map[string]any {
	values := map[string]any{
		"team_events_path":    f.teamEvents,
		"league_events_path":  f.leagueEvents,
		"template_dir":        f.templateDir,
		"output_path":         f.output,
		"partition_threshold": f.threshold,
		"tip_scheme":          f.tipScheme,
		"metrics_textfile":    f.metricsTextfile,
		"log_level":           f.logLevel,
		"log_format":          f.logFormat,
		"dedupe_case_fold":    f.caseFoldNames,
	}
	out := make(map[string]any)
	for name, key := range flagKeys {
		if fs.Changed(name) {
			out[key] = values[key]
		}
	}
	return out
}

func newRootCmd() *cobra.Command {
	f := &cliFlags{}

	root := &cobra.Command{
		Use:   "lfgmenu",
		Short: "Generate the LFG popmenu from event collections",
		Long: "lfgmenu reads the team and league event collections, renders one sub-menu per event\n" +
			"and writes a single menu document for the game client. Without a subcommand it runs generate.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", "", "YAML config file (default $"+config.EnvConfigFile+")")
	pf.StringVar(&f.envFile, "env-file", ".env", "dotenv file merged into the environment if present")
	pf.StringVar(&f.teamEvents, "team-events", "", "team event collection (.json, .yaml)")
	pf.StringVar(&f.leagueEvents, "league-events", "", "league event collection (.json, .yaml)")
	pf.StringVar(&f.templateDir, "templates", "", "template directory (default: embedded templates)")
	pf.StringVarP(&f.output, "output", "o", "", "menu document to write")
	pf.IntVar(&f.threshold, "threshold", 0, "first level requirement of the high-level group")
	pf.StringVar(&f.tipScheme, "tip-scheme", "", "tip scheme: flat or categorized")
	pf.StringVar(&f.metricsTextfile, "metrics-textfile", "", "write run metrics in Prometheus text format to this file")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&f.logFormat, "log-format", "", "log format: text or json")
	pf.BoolVar(&f.caseFoldNames, "dedupe-case-fold", false, "report menu names differing only by case as duplicates")
	root.Flags().BoolVar(&f.stdout, "stdout", false, "print the document instead of writing the output file")

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Render and write the menu document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, f)
		},
	}
	generate.Flags().BoolVar(&f.stdout, "stdout", false, "print the document instead of writing the output file")

	check := &cobra.Command{
		Use:   "check",
		Short: "Load, validate and render without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, f)
		},
	}

	root.AddCommand(generate, check)
	return root
}

// setup loads configuration, applies the log level and builds the service.
func setup(cmd *cobra.Command, f *cliFlags, opts ...service.Option) (*service.Service, *config.Config, error) {
	ctx := cmd.Context()
	cfg, err := config.Load(ctx,
		config.WithFile(f.configFile),
		config.WithDotEnv(f.envFile),
		config.WithOverrides(f.overrides(cmd.Flags())),
	)
	if err != nil {
		return nil, nil, err
	}

	// Re-initialize with the configured format; logs stay on stderr.
	if err := logger.Init(
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithJSON(cfg.LogFormat == "json"),
	); err != nil {
		return nil, cfg, err
	}

	// Apply configured log level (fallback to info on invalid input)
	l := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		l.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, err := service.NewFromConfig(ctx, cfg, append([]service.Option{service.WithLogger(l)}, opts...)...)
	if err != nil {
		return nil, cfg, err
	}
	return svc, cfg, nil
}

func runGenerate(cmd *cobra.Command, f *cliFlags) error {
	var opts []service.Option
	if f.stdout {
		opts = append(opts, service.WithWriter(output.NewStreamWriter(cmd.OutOrStdout())))
	}
	svc, cfg, err := setup(cmd, f, opts...)
	if err != nil {
		exportMetrics(cmd.Context(), cfg)
		return err
	}
	_, err = svc.Run(cmd.Context())
	exportMetrics(cmd.Context(), cfg)
	return err
}

func runCheck(cmd *cobra.Command, f *cliFlags) error {
	svc, cfg, err := setup(cmd, f)
	if err != nil {
		exportMetrics(cmd.Context(), cfg)
		return err
	}
	res, err := svc.Render(cmd.Context())
	exportMetrics(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d low-level, %d high-level and %d league events, %d bytes\n",
		res.LowEvents, res.HighEvents, res.LeagueEvents, len(res.Document))
	return err
}

// exportMetrics writes the metrics textfile when one is configured. Export
// failures are logged and do not change the run result.
func exportMetrics(ctx context.Context, cfg *config.Config) {
	if cfg == nil || cfg.MetricsTextfile == "" {
		return
	}
	if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
		logger.Get().Warn(ctx, "metrics export failed", logger.String("path", cfg.MetricsTextfile), logger.Error(err))
	}
}
