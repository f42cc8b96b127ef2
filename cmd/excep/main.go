package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"excep/internal/cli"
	"excep/pkg/errx"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	debug      = false
	configPath = ""
	output     = ""
	color      = ""
)

// logLevel is raised to Debug once the resolved config enables debug mode.
var logLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)

func main() {
	logger, err := newConsoleLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init logger: %v\n", err)
		os.Exit(errx.ExitFailure)
	}
	defer logger.Sync()

	initCommands(logger)

	if err := rootCmd.Execute(); err != nil {
		_ = logger.Sync()
		exitWithError(os.Stderr, err)
	}
}

// exitWithError reports err as a diagnostic when it carries an errx record.
func exitWithError(w io.Writer, err error) {
	if rec, ok := errx.AsError(err); ok {
		errx.ReportAndAbort(w, rec)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	os.Exit(errx.ExitFailure)
}

var rootCmd = &cobra.Command{
	Use:   "excep",
	Short: "Structured error kinds and diagnostics",
	Long: `excep renders structured error diagnostics:
- List the closed set of error kinds and their display names
- Map raw 8-bit kind tags to names
- Raise and report a single error
- Report a causal chain of errors, outermost first`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode with structured error logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.excep/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&output, "output", "", "Diagnostic stream: stderr or stdout")
	rootCmd.PersistentFlags().StringVar(&color, "color", "", "Color mode: auto, always or never")
}

func initCommands(logger *zap.Logger) {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return resolveConfig(cmd, logger)
	}
	rootCmd.AddCommand(cli.NewKindsCmd(logger))
	rootCmd.AddCommand(cli.NewNameCmd(logger))
	rootCmd.AddCommand(cli.NewThrowCmd(logger))
	rootCmd.AddCommand(cli.NewRenderCmd(logger))
}

// resolveConfig installs the layered config. A config that fails to resolve
// never turns debug mode on, so --debug alone decides whether the failure
// is logged.
func resolveConfig(cmd *cobra.Command, logger *zap.Logger) error {
	overrides := cli.Overrides{Output: output, Color: color}
	if cmd.Flags().Changed("debug") {
		overrides.Debug = &debug
	}
	cfg, err := cli.ResolveConfig(configPath, overrides)
	if err != nil {
		if debug {
			logLevel.SetLevel(zap.DebugLevel)
			errx.Log(zapr.NewLogger(logger), err, "Resolve config failed")
		}
		return err
	}
	cli.SetConfig(cfg)
	if cfg.Debug {
		logLevel.SetLevel(zap.DebugLevel)
	}
	return nil
}

// newConsoleLogger returns a human-friendly console logger with timestamps.
// It starts at ErrorLevel; PersistentPreRunE lowers it to Debug when debug
// mode is enabled.
func newConsoleLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = logLevel
	cfg.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "",
		CallerKey:      "",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}
