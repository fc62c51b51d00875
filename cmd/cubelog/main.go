// Package main provides the CLI entrypoint for cubelog.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/cubelog/internal/config"
	"github.com/verte-zerg/cubelog/internal/dashboard"
	"github.com/verte-zerg/cubelog/internal/filter"
	"github.com/verte-zerg/cubelog/internal/ingest"
	"github.com/verte-zerg/cubelog/internal/logging"
	"github.com/verte-zerg/cubelog/internal/model"
	"github.com/verte-zerg/cubelog/internal/stats"
	"github.com/verte-zerg/cubelog/internal/statsui"
)

const (
	defaultPlotHeight = 10
)

var verbose bool

type viewFlags struct {
	from       string
	to         string
	cube       string
	session    string
	plotHeight int
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.cube, "cube", model.FilterAll, "cube type filter")
	cmd.Flags().StringVar(&f.session, "session", model.FilterAll, "session filter")
	cmd.Flags().IntVar(&f.plotHeight, "plot-height", defaultPlotHeight, "progression plot height in rows")
}

// resolve merges config values into unset flags and validates them.
func (f *viewFlags) resolve(cmd *cobra.Command, cfg config.DashboardConfig) (model.Filter, error) {
	applyStringConfig(cmd, "from", &f.from, cfg.From)
	applyStringConfig(cmd, "to", &f.to, cfg.To)
	applyStringConfig(cmd, "cube", &f.cube, cfg.Cube)
	applyStringConfig(cmd, "session", &f.session, cfg.Session)
	applyIntConfig(cmd, "plot-height", &f.plotHeight, cfg.PlotHeight)
	if f.plotHeight <= 0 {
		return model.Filter{}, fmt.Errorf("--plot-height must be > 0")
	}
	out := model.Filter{
		StartDate: strings.TrimSpace(f.from),
		EndDate:   strings.TrimSpace(f.to),
		CubeType:  strings.TrimSpace(f.cube),
		SessionID: strings.TrimSpace(f.session),
	}
	if out.StartDate != "" {
		if _, ok := filter.ParseDate(out.StartDate); !ok {
			return model.Filter{}, fmt.Errorf("invalid --from value %q", out.StartDate)
		}
	}
	if out.EndDate != "" {
		if _, ok := filter.ParseDate(out.EndDate); !ok {
			return model.Filter{}, fmt.Errorf("invalid --to value %q", out.EndDate)
		}
	}
	return out, nil
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &viewFlags{}
	var window int
	rootCmd := &cobra.Command{
		Use:           "cubelog <file>",
		Short:         "Speedcubing practice log dashboard",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboardCmd(cmd, args[0], flags, window)
		},
	}
	flags.register(rootCmd)
	rootCmd.Flags().IntVar(&window, "window", 0, "plotted rolling average window (default: first configured window)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newChoicesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runDashboardCmd(cmd *cobra.Command, path string, flags *viewFlags, window int) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	closer, err := setupLogging(fileCfg.Log, false)
	if err != nil {
		return err
	}
	defer closeLogging(closer)

	f, err := flags.resolve(cmd, fileCfg.Dashboard)
	if err != nil {
		return err
	}
	d, err := loadDashboard(path, fileCfg.Dashboard)
	if err != nil {
		return err
	}
	if window <= 0 {
		window = d.Windows()[0]
	}

	log.Info().Str("path", path).Int("solves", len(d.Current().Solves)).Msg("starting dashboard")
	ui := statsui.NewModel(d, statsui.Config{Filter: f, Window: window, PlotHeight: flags.plotHeight})
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard TUI: %w", err)
	}
	return nil
}

func newReportCmd() *cobra.Command {
	flags := &viewFlags{}
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Print a one-shot report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportCmd(cmd, args[0], flags, asJSON)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func runReportCmd(cmd *cobra.Command, path string, flags *viewFlags, asJSON bool) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	closer, err := setupLogging(fileCfg.Log, true)
	if err != nil {
		return err
	}
	defer closeLogging(closer)

	f, err := flags.resolve(cmd, fileCfg.Dashboard)
	if err != nil {
		return err
	}
	d, err := loadDashboard(path, fileCfg.Dashboard)
	if err != nil {
		return err
	}
	view := d.Apply(f)
	out := cmd.OutOrStdout()
	if asJSON {
		return view.WriteJSON(out)
	}
	if err := writeReport(out, view, flags.plotHeight); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func writeReport(w io.Writer, view dashboard.View, plotHeight int) error {
	if _, err := fmt.Fprintf(w, "%s: %d solves\n\n", view.Label(), len(view.Solves)); err != nil {
		return err
	}
	if err := stats.RenderSummary(w, view.Summary, view.Change, view.OutlierCount); err != nil {
		return err
	}
	if view.Summary == nil {
		return stats.RenderInsights(w, view.Insights)
	}
	if err := stats.RenderCurves(w, view.Solves, view.Rolling, stats.PlotOptions{Height: plotHeight}); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if err := stats.RenderFastest(w, view.Fastest); err != nil {
		return err
	}
	if err := stats.RenderSessions(w, view.Sessions); err != nil {
		return err
	}
	if err := stats.RenderHistogram(w, view.Histogram); err != nil {
		return err
	}
	if err := stats.RenderHeatmap(w, view.Heatmap); err != nil {
		return err
	}
	return stats.RenderInsights(w, view.Insights)
}

func newChoicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "choices <file>",
		Short: "List cube types and sessions in a log",
		Args:  cobra.ExactArgs(1),
		RunE:  runChoicesCmd,
	}
}

func runChoicesCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	closer, err := setupLogging(fileCfg.Log, true)
	if err != nil {
		return err
	}
	defer closeLogging(closer)

	d, err := loadDashboard(args[0], fileCfg.Dashboard)
	if err != nil {
		return err
	}
	choices := d.Choices()
	lines := []string{"Cube types:"}
	for _, c := range choices.CubeTypes {
		lines = append(lines, "  "+c)
	}
	lines = append(lines, "Sessions:")
	for _, s := range choices.SessionIDs {
		lines = append(lines, "  "+s)
	}
	if start, end, ok := d.DateRange(); ok {
		lines = append(lines, fmt.Sprintf("Dates: %s to %s", start, end))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func loadDashboard(path string, cfg config.DashboardConfig) (*dashboard.Dashboard, error) {
	solves, err := ingest.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load log: %w", err)
	}
	if len(solves) == 0 {
		logErrf("no usable solves in %s\n", path)
	}
	opts := make([]dashboard.Option, 0, 2)
	if len(cfg.Windows) > 0 {
		opts = append(opts, dashboard.WithWindows(cfg.Windows...))
	}
	if cfg.HistogramBins != nil {
		opts = append(opts, dashboard.WithHistogramBins(*cfg.HistogramBins))
	}
	return dashboard.New(solves, opts...), nil
}

func setupLogging(cfg config.LogConfig, console bool) (io.Closer, error) {
	opts := logging.Options{
		Verbose: verbose,
		Console: console,
		File:    config.DefaultLogPath(),
	}
	if cfg.Level != nil {
		opts.Level = *cfg.Level
	}
	if cfg.File != nil {
		opts.File = *cfg.File
	}
	closer, err := logging.Init(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return closer, nil
}

func closeLogging(closer io.Closer) {
	if cerr := closer.Close(); cerr != nil {
		logErrf("failed to close log file: %v\n", cerr)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# cubelog configuration
# Uncomment a value to enable it. CLI flags override config values.

[dashboard]
# cube = %q               # Initial cube type filter
# session = %q            # Initial session filter
# from = "2024-01-01"       # Initial start date (inclusive)
# to = "2024-12-31"         # Initial end date (inclusive)
# windows = %s       # Rolling average windows
# plot-height = %d          # Progression plot height in rows
# histogram-bins = %d       # Distribution histogram bins

[log]
# level = "info"            # trace, debug, info, warn, error
# file = %q
`,
		model.FilterAll,
		model.FilterAll,
		formatWindows(stats.DefaultWindows),
		defaultPlotHeight,
		stats.DefaultHistogramBins,
		config.DefaultLogPath(),
	)
}

func formatWindows(windows []int) string {
	parts := make([]string, len(windows))
	for i, w := range windows {
		parts[i] = fmt.Sprintf("%d", w)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
