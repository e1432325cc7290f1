package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/thoreinstein/themesnap/internal/errors"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// ErrUnknownFormat indicates a --log-format value other than text or json.
var ErrUnknownFormat = errors.New("unknown log format")

// Options configures New.
type Options struct {
	// Level sets the minimum log level.
	Level slog.Level
	// Format selects the console format. Empty means FormatText.
	Format Format
	// Output receives console logs. Defaults to os.Stderr.
	Output io.Writer
	// File, when set, also receives every record as JSON.
	File io.Writer
	// Home is shortened to "~" in text output. Under sudo this should be
	// the invoking user's home, not root's.
	Home string
}

// New builds the logger for a CLI run.
func New(opts Options) (*slog.Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: opts.Level}

	var console slog.Handler
	switch opts.Format {
	case FormatText, "":
		console = NewHandler(out, ho, opts.Home)
	case FormatJSON:
		console = slog.NewJSONHandler(out, ho)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", opts.Format)
	}

	if opts.File == nil {
		return slog.New(console), nil
	}
	return slog.New(newTee(console, slog.NewJSONHandler(opts.File, ho))), nil
}

// LevelFromEnv maps a THEMESNAP_DEBUG value to a verbosity count:
// "1" or "true" is debug (2), "2" is trace (3). Anything else is 0.
func LevelFromEnv(val string) int {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true":
		return 2
	case "2":
		return 3
	default:
		return 0
	}
}
