package cli

// This file resolves the CLI configuration using precedence:
// flags > environment variables (EXCEP_*) > config file > defaults.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output and color modes.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Environment variables read by ResolveConfig.
const (
	EnvOutput = "EXCEP_OUTPUT"
	EnvColor  = "EXCEP_COLOR"
	EnvDebug  = "EXCEP_DEBUG"
)

// Test seams.
var (
	userHomeDir = os.UserHomeDir
	lookupEnv   = os.LookupEnv
	readFile    = os.ReadFile
)

// Config is the resolved CLI configuration.
type Config struct {
	Output string `yaml:"output,omitempty"`
	Color  string `yaml:"color,omitempty"`
	Debug  bool   `yaml:"debug,omitempty"`
}

// fileConfig mirrors Config with an optional debug flag so an absent key
// does not override a lower layer.
type fileConfig struct {
	Output string `yaml:"output,omitempty"`
	Color  string `yaml:"color,omitempty"`
	Debug  *bool  `yaml:"debug,omitempty"`
}

// Overrides holds values set explicitly on the command line. Empty strings
// and a nil Debug mean "not set".
type Overrides struct {
	Output string
	Color  string
	Debug  *bool
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{Output: OutputStderr, Color: ColorAuto}
}

var (
	currentConfig   = DefaultConfig()
	currentConfigMu sync.RWMutex
)

// SetConfig installs cfg as the process-wide configuration and applies its
// debug and color settings. Color is only ever written to stdout (the kinds
// table), so stdout decides the "auto" mode.
func SetConfig(cfg Config) {
	currentConfigMu.Lock()
	currentConfig = cfg
	currentConfigMu.Unlock()

	SetDebugMode(cfg.Debug)
	configureColor(cfg.Color, int(os.Stdout.Fd()))
}

// CurrentConfig returns the process-wide configuration.
func CurrentConfig() Config {
	currentConfigMu.RLock()
	defer currentConfigMu.RUnlock()
	return currentConfig
}

// DefaultConfigPath returns ~/.excep/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := userHomeDir()
	if err != nil {
		return "", wrapWithSentinel(ErrGetHomeDirectoryFailed, err, "failed to get home directory")
	}
	return filepath.Join(home, ".excep", "config.yaml"), nil
}

// ResolveConfig layers defaults, the config file at path (the default path
// when empty), the environment and flags. A missing file is not an error.
func ResolveConfig(path string, flags Overrides) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}
	fileCfg, err := loadConfigFile(path, explicit)
	if err != nil {
		return Config{}, err
	}
	if fileCfg != nil {
		applyLayer(&cfg, fileCfg.Output, fileCfg.Color, fileCfg.Debug)
	}

	var envDebug *bool
	if raw, ok := lookupEnv(EnvDebug); ok && raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, wrapWithSentinel(ErrInvalidConfigValue, err,
				fmt.Sprintf("%s=%q is not a boolean", EnvDebug, raw))
		}
		envDebug = &parsed
	}
	envOutput, _ := lookupEnv(EnvOutput)
	envColor, _ := lookupEnv(EnvColor)
	applyLayer(&cfg, envOutput, envColor, envDebug)

	applyLayer(&cfg, flags.Output, flags.Color, flags.Debug)

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyLayer(cfg *Config, output, color string, debug *bool) {
	if output != "" {
		cfg.Output = output
	}
	if color != "" {
		cfg.Color = color
	}
	if debug != nil {
		cfg.Debug = *debug
	}
}

// loadConfigFile reads path. A missing file yields (nil, nil) unless the path
// was given explicitly.
func loadConfigFile(path string, explicit bool) (*fileConfig, error) {
	// #nosec G304 -- path is the user's own config file.
	data, err := readFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil, nil
		}
		return nil, wrapWithSentinel(ErrReadConfigFailed, err, fmt.Sprintf("failed to read config %s", path))
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, wrapWithSentinel(ErrUnmarshalConfigFailed, err, fmt.Sprintf("failed to unmarshal config %s", path))
	}
	return &cfg, nil
}

func validateConfig(cfg Config) error {
	switch cfg.Output {
	case OutputStderr, OutputStdout:
	default:
		return newWithSentinel(ErrInvalidConfigValue,
			fmt.Sprintf("output must be %q or %q, got %q", OutputStderr, OutputStdout, cfg.Output))
	}
	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return newWithSentinel(ErrInvalidConfigValue,
			fmt.Sprintf("color must be %q, %q or %q, got %q", ColorAuto, ColorAlways, ColorNever, cfg.Color))
	}
	return nil
}

// reportWriter returns the sink diagnostics are written to.
func reportWriter(cmd *cobra.Command) io.Writer {
	if CurrentConfig().Output == OutputStdout {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}
