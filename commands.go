package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// rootOptions holds the persistent and root flags
type rootOptions struct {
	configPath string
	verbose    bool
	plain      bool
	markdown   bool
	noReport   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "ubermensch",
		Short: "Übermensch - Koenji protocol workout tracker",
		Long: `Übermensch tracks a three-day rotating bodyweight protocol.

Check off the exercises of today's mission, sync it to earn EXP and reps,
and toggle the daily bonus goals. Nothing is saved: every launch starts fresh.

Runs full-screen in a terminal, or in line mode when output is piped
(or with --plain).`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTracker(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default $UBERMENSCH_CONFIG or ~/.ubermensch/config.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to the log file")
	root.Flags().BoolVar(&opts.plain, "plain", false, "line mode instead of the full-screen view")
	root.Flags().BoolVar(&opts.markdown, "markdown", false, "print the exit report as markdown")
	root.Flags().BoolVar(&opts.noReport, "no-report", false, "skip the exit report")

	root.AddCommand(
		newProtocolCmd(),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

func (o *rootOptions) loadConfig() (*Config, error) {
	path := o.configPath
	if path == "" {
		path = DefaultConfigPath()
	}
	return LoadConfig(path)
}

// runTracker launches the tracker view and prints the report when it closes
func runTracker(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	logger, err := NewLogger(cfg, opts.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := NewSession(WithSyncDelay(cfg.SyncDelay), WithLogger(logger))
	logger.Info("session started",
		zap.Bool("plain", opts.plain),
		zap.Duration("sync_delay", cfg.SyncDelay),
		zap.String("config", cfg.Source))

	out := cmd.OutOrStdout()
	if opts.plain || !isTerminal(out) {
		err = NewConsole(session, cmd.InOrStdin(), out).Run(ctx)
	} else {
		err = RunTUI(ctx, session, ThemeByName(cfg.Theme), logger)
	}
	if err != nil {
		return err
	}

	report := BuildReport(session)
	logger.Info("session ended",
		zap.Int("missions", len(report.Missions)),
		zap.Int("exp", report.TotalExp))

	if !opts.noReport {
		if opts.markdown {
			report.WriteMarkdown(out)
		} else {
			report.WriteText(out)
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newProtocolCmd() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "protocol",
		Short: "Show the three-day workout protocol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asYAML {
				return writeProtocolYAML(out)
			}
			for i, w := range Protocol() {
				displayWorkout(out, i, w)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the protocol as YAML")
	return cmd
}

func writeProtocolYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	doc := struct {
		Protocol [CycleCount]Workout `yaml:"protocol"`
	}{Protocol: Protocol()}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("error encoding protocol: %w", err)
	}
	return enc.Close()
}

func displayWorkout(w io.Writer, cycle int, workout Workout) {
	fmt.Fprintln(w, "═══════════════════════════════════════")
	fmt.Fprintf(w, "  CYCLE DAY %d: %s\n", cycle+1, workout.Title)
	fmt.Fprintln(w, "═══════════════════════════════════════")
	fmt.Fprintf(w, "%s\n\n", workout.Description)
	for i, ex := range workout.Exercises {
		fmt.Fprintf(w, "  %d. %s\n", i+1, ex.Name)
		fmt.Fprintf(w, "     🎯 %s\n", ex.Target)
		fmt.Fprintf(w, "     💡 %s\n", ex.Logic)
	}
	fmt.Fprintln(w)
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "═══════════════════════════════════════")
			fmt.Fprintln(out, "  ÜBERMENSCH CONFIGURATION")
			fmt.Fprintln(out, "═══════════════════════════════════════")
			fmt.Fprintln(out)
			if cfg.Source == "" {
				fmt.Fprintln(out, "Config file:  (none, using defaults)")
			} else {
				fmt.Fprintf(out, "Config file:  %s\n", cfg.Source)
			}
			fmt.Fprintln(out)

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("error encoding config: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ubermensch version %s\n", version)
		},
	}
}
