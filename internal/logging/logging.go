// Package logging builds a slog.Handler from reefdb's level/format config
// strings and wires the matching CLI flags and shell completions.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Format is a log output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var allFormats = []Format{FormatText, FormatJSON}

var (
	// ErrUnknownLevel indicates an unrecognized log level string.
	ErrUnknownLevel = errors.New("logging: unknown log level")
	// ErrUnknownFormat indicates an unrecognized log format string.
	ErrUnknownFormat = errors.New("logging: unknown log format")
)

// GetLevel parses a log level string into a slog.Level.
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
}

// GetFormat parses a log format string into a Format.
func GetFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if slices.Contains(allFormats, f) {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// NewHandler builds a slog.Handler writing to w at the given level/format.
func NewHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{AddSource: true, Level: level}
	if format == FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// NewHandlerFromStrings parses levelStr/formatStr and builds the matching
// slog.Handler in one step.
func NewHandlerFromStrings(w io.Writer, levelStr, formatStr string) (slog.Handler, error) {
	level, err := GetLevel(levelStr)
	if err != nil {
		return nil, err
	}
	format, err := GetFormat(formatStr)
	if err != nil {
		return nil, err
	}
	return NewHandler(w, level, format), nil
}

// Flags holds the CLI flag names logging config is registered under,
// letting a command customize them while keeping sensible defaults.
type Flags struct {
	Level  string
	Format string
}

// Config holds the CLI flag values for log configuration, with defaults
// applied by RegisterFlags.
type Config struct {
	Level  string
	Format string
	Flags  Flags
}

// NewConfig returns a Config under the conventional --log-level/--log-format
// flag names.
func NewConfig() *Config {
	return &Config{Flags: Flags{Level: "log-level", Format: "log-format"}}
}

// RegisterFlags adds logging flags to flags, seeded from defaultLevel and
// defaultFormat (typically loaded from internal/config).
func (c *Config) RegisterFlags(flags *pflag.FlagSet, defaultLevel, defaultFormat string) {
	flags.StringVar(&c.Level, c.Flags.Level, defaultLevel,
		fmt.Sprintf("log level, one of: %v", allLevelStrings))
	flags.StringVar(&c.Format, c.Flags.Format, defaultFormat,
		fmt.Sprintf("log format, one of: %v", allFormats))
}

// RegisterCompletions registers shell completions for the logging flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	if err := cmd.RegisterFlagCompletionFunc(c.Flags.Level,
		cobra.FixedCompletions(allLevelStrings, cobra.ShellCompDirectiveNoFileComp)); err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Level, err)
	}

	formatStrings := make([]string, len(allFormats))
	for i, f := range allFormats {
		formatStrings[i] = string(f)
	}
	if err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(formatStrings, cobra.ShellCompDirectiveNoFileComp)); err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}
	return nil
}

// NewHandler builds the slog.Handler described by c, writing to w.
func (c *Config) NewHandler(w io.Writer) (slog.Handler, error) {
	return NewHandlerFromStrings(w, c.Level, c.Format)
}

var allLevelStrings = []string{"error", "warn", "info", "debug"}
