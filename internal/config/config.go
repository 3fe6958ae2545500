// Package config holds the settings a gnuplot session is built from.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid reports an unusable configuration.
var ErrInvalid = errors.New("invalid configuration")

// Platforms with built-in presets.
const (
	PlatformUnix    = "unix"
	PlatformMacOSX  = "macosx"
	PlatformWindows = "windows"
	PlatformCygwin  = "cygwin"
)

// Transports select how commands reach gnuplot.
const (
	TransportPipe = "pipe" // Spawn gnuplot and write to its stdin
	TransportFile = "file" // Append commands to a log file
)

// Config describes one gnuplot session.
type Config struct {
	Platform   string `yaml:"platform"`    // Preset the other fields default from
	Command    string `yaml:"command"`     // Engine command line, split shell-style
	Transport  string `yaml:"transport"`   // TransportPipe or TransportFile
	CommandLog string `yaml:"command_log"` // Output path for TransportFile

	Persist               bool `yaml:"persist"`                 // Keep plot windows after the engine exits
	RecognizesPersist     bool `yaml:"recognizes_persist"`      // Skip probing: the engine accepts -persist
	RecognizesBinarySplot bool `yaml:"recognizes_binary_splot"` // Engine reads binary grids

	DefaultTerminal          string `yaml:"default_terminal"`           // Interactive terminal restored after hardcopy
	DefaultPrinter           string `yaml:"default_printer"`            // Hardcopy output when no file is given
	PreferInlineData         bool   `yaml:"prefer_inline_data"`         // Inline transfer unless an item says otherwise
	PreferEnhancedPostscript bool   `yaml:"prefer_enhanced_postscript"` // Default for postscript hardcopies

	TempDir string `yaml:"temp_dir"` // Scratch file directory ("" = system default)
	Debug   bool   `yaml:"debug"`    // Log every command sent
}

// Default returns the unix preset.
func Default() Config {
	cfg, _ := ForPlatform(PlatformUnix)
	return cfg
}

// ForPlatform returns the preset for a platform name.
func ForPlatform(name string) (Config, error) {
	cfg := Config{
		Platform:                 name,
		Command:                  "gnuplot",
		Transport:                TransportPipe,
		RecognizesBinarySplot:    true,
		DefaultTerminal:          "x11",
		DefaultPrinter:           "| lpr",
		PreferEnhancedPostscript: true,
	}

	switch name {
	case PlatformUnix:
	case PlatformMacOSX:
		cfg.DefaultTerminal = "aqua"
	case PlatformCygwin:
		cfg.DefaultTerminal = "windows"
	case PlatformWindows:
		cfg.Command = "pgnuplot.exe"
		cfg.DefaultTerminal = "windows"
		cfg.DefaultPrinter = "PRN"
		cfg.PreferInlineData = true
	default:
		return Config{}, fmt.Errorf("%w: unknown platform %q", ErrInvalid, name)
	}
	return cfg, nil
}

// Parse decodes YAML over the preset named by its platform field (unix if
// absent).
func Parse(data []byte) (Config, error) {
	var probe struct {
		Platform string `yaml:"platform"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if probe.Platform == "" {
		probe.Platform = PlatformUnix
	}

	cfg, err := ForPlatform(probe.Platform)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a YAML config file.
func Load(path string) (Config, error) {
	//nolint:gosec // G304: config path is supplied by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Validate checks the fields that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportPipe:
		if c.Command == "" {
			return fmt.Errorf("%w: pipe transport needs a command", ErrInvalid)
		}
	case TransportFile:
		if c.CommandLog == "" {
			return fmt.Errorf("%w: file transport needs command_log", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown transport %q", ErrInvalid, c.Transport)
	}
	if c.DefaultTerminal == "" {
		return fmt.Errorf("%w: default_terminal is empty", ErrInvalid)
	}
	return nil
}
