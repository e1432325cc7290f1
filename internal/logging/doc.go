// Package logging builds the slog logger used by the themesnap CLI.
//
// Console output is either the TTY-aware text [Handler] or slog's JSON
// handler. An optional log file always receives JSON.
//
//	logger, err := logging.New(logging.Options{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//		Home:   paths.Home(),
//	})
//
// The logger travels with the command context; see [NewContext] and
// [FromContext].
package logging
