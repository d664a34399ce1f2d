package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/san-kum/rcsim/internal/circuit"
	"github.com/san-kum/rcsim/internal/config"
	"github.com/san-kum/rcsim/internal/figure"
	"github.com/san-kum/rcsim/internal/gui"
	"github.com/san-kum/rcsim/internal/metrics"
	"github.com/san-kum/rcsim/internal/prompt"
	"github.com/san-kum/rcsim/internal/session"
	"github.com/san-kum/rcsim/internal/store"
	"github.com/san-kum/rcsim/internal/viz"
)

var (
	logLevel   = "info"
	logFile    string
	configFile string
	preset     string

	// circuit and simulation overrides
	resistance    float64
	capacitanceUF float64
	voltage       float64
	modeName      string
	numPoints     int
	windowMS      float64
	speed         float64
	theme         string

	output   string
	openFig  bool
	noPrompt bool
	asJSON   bool
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}
	return nil
}

// redirectLogs sends log output to --log-file, or drops it, while the live
// view owns the terminal. The returned func restores stderr.
func redirectLogs() (func(), error) {
	if logFile == "" {
		logrus.SetOutput(io.Discard)
		return func() { logrus.SetOutput(os.Stderr) }, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	logrus.SetOutput(f)
	return func() {
		logrus.SetOutput(os.Stderr)
		closeLog(f)
	}, nil
}

func closeLog(c io.Closer) {
	if err := c.Close(); err != nil {
		logrus.WithError(err).WithField("file", logFile).Warn("failed to close log file, it may be truncated")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		prompt.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rcsim",
		Short: "RC circuit charging and discharging simulator",
		Long: `rcsim simulates the transient response of a series RC circuit.

Without a subcommand it opens the live view: sliders for R, C and V, a
charging/discharging switch and an animated playback cursor. "rcsim gui"
opens the same controls in a window driven with the mouse.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
		RunE: runLive,
	}

	globalFlags := rootCmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&logFile, "log-file", "", "write logs here while the live view runs")
	globalFlags.StringVar(&configFile, "config", "", "config file path (yaml)")
	globalFlags.StringVar(&preset, "preset", "", "use preset configuration")
	globalFlags.Float64VarP(&resistance, "resistance", "R", config.DefaultResistance, "resistance in ohms")
	globalFlags.Float64VarP(&capacitanceUF, "capacitance", "C", config.DefaultCapacitanceUF, "capacitance in microfarads")
	globalFlags.Float64VarP(&voltage, "voltage", "V", config.DefaultVoltage, "source voltage in volts")
	globalFlags.StringVarP(&modeName, "mode", "m", "charging", "charging, discharging or both")
	globalFlags.IntVarP(&numPoints, "points", "n", circuit.DefaultPoints, "number of samples")
	globalFlags.Float64Var(&windowMS, "window", 0, "simulation window in ms (0 = 5τ, 10τ for both)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive RC circuit with sliders and animation",
		RunE:  runLive,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd} {
		c.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "animation speed factor")
		c.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "interactive RC circuit in a window, driven with the mouse",
		RunE:  runGUI,
	}
	guiCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "animation speed factor")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "prompt for a circuit and write its voltage/current figure",
		RunE:  runPlot,
	}
	plotCmd.Flags().StringVarP(&output, "output", "o", config.DefaultOutput, "figure path (.png, .svg or .pdf)")
	plotCmd.Flags().BoolVar(&openFig, "open", false, "open the figure in the system viewer")
	plotCmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "take the circuit from flags and config instead of stdin")

	samplesCmd := &cobra.Command{
		Use:   "samples",
		Short: "print the simulated series as CSV or JSON",
		RunE:  runSamples,
	}
	samplesCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON with metrics instead of CSV")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(liveCmd, guiCmd, plotCmd, samplesCmd, presetsCmd)
	return rootCmd
}

// loadConfig layers defaults, the preset, the config file and finally any
// flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("resistance") {
		cfg.Circuit.Resistance = resistance
	}
	if flags.Changed("capacitance") {
		cfg.Circuit.CapacitanceUF = capacitanceUF
	}
	if flags.Changed("voltage") {
		cfg.Circuit.Voltage = voltage
	}
	if flags.Changed("mode") {
		m, err := circuit.ParseMode(modeName)
		if err != nil {
			return nil, err
		}
		cfg.Sim.Mode = m
	}
	if flags.Changed("points") {
		cfg.Sim.NumPoints = numPoints
	}
	if flags.Changed("window") {
		cfg.Sim.WindowMS = windowMS
	}
	if flags.Lookup("speed") != nil && flags.Changed("speed") {
		cfg.Sim.Speed = speed
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.View.Theme = theme
	}
	if flags.Lookup("output") != nil && flags.Changed("output") {
		cfg.View.Output = output
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"resistance":  cfg.Circuit.Resistance,
		"capacitance": cfg.Circuit.CapacitanceUF,
		"voltage":     cfg.Circuit.Voltage,
		"mode":        cfg.Sim.Mode,
	}).Debug("configuration loaded")
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.InSliderRange() {
		logrus.Warn("circuit values outside the slider ranges will be clamped")
	}
	if cfg.Sim.Mode == circuit.Both {
		logrus.Warn("the live view has no combined mode, starting in charging")
	}

	fmt.Fprintln(cmd.OutOrStdout(), viz.Banner())

	restore, err := redirectLogs()
	if err != nil {
		return err
	}
	defer restore()

	return viz.Run(session.New(cfg), cfg.View.Theme)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.InSliderRange() {
		logrus.Warn("circuit values outside the slider ranges will be clamped")
	}
	if cfg.Sim.Mode == circuit.Both {
		logrus.Warn("the window has no combined mode, starting in charging")
	}
	return gui.Run(session.New(cfg))
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	req := &prompt.Request{
		Params: cfg.Params(),
		Mode:   cfg.Sim.Mode,
		Window: prompt.RoundWindow(cfg.Window()),
	}
	if !noPrompt {
		req, err = prompt.New(cmd.InOrStdin(), out).Run(cfg.Params())
		if err != nil {
			prompt.ReportError(out, err)
			return nil
		}
	} else {
		prompt.PrintSummary(out, req.Params)
	}

	series, err := circuit.Simulate(req.Params, req.Window, cfg.Sim.NumPoints, req.Mode)
	if err != nil {
		return err
	}
	fig := figure.Figure{Params: req.Params, Series: series}
	if err := figure.Save(cfg.View.Output, fig); err != nil {
		return err
	}
	logrus.WithField("path", cfg.View.Output).Info("figure written")

	fmt.Fprintln(out)
	figure.Preview(out, fig)
	fmt.Fprintf(out, "\nFigure saved to %s\n", cfg.View.Output)

	if openFig {
		return figure.Open(cfg.View.Output)
	}
	return nil
}

func runSamples(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.Params()
	series, err := circuit.Simulate(p, cfg.Window(), cfg.Sim.NumPoints, cfg.Sim.Mode)
	if err != nil {
		return err
	}
	results := metrics.Collect(series, metrics.Default(p, series.Mode)...)

	if asJSON {
		return store.WriteJSON(cmd.OutOrStdout(), store.NewExportData(p, series, results))
	}
	return store.WriteCSV(cmd.OutOrStdout(), series)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tR\tC\tV\tMODE\tτ")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%gΩ\t%gμF\t%gV\t%s\t%.2fms\n",
			name,
			cfg.Circuit.Resistance,
			cfg.Circuit.CapacitanceUF,
			cfg.Circuit.Voltage,
			cfg.Sim.Mode,
			cfg.Params().Tau()*1000,
		)
	}
	return w.Flush()
}
