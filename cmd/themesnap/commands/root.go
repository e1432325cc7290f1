// Package commands implements the CLI commands for themesnap.
package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/themesnap/cmd"
	"github.com/thoreinstein/themesnap/internal/backup"
	"github.com/thoreinstein/themesnap/internal/config"
	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/logging"
	"github.com/thoreinstein/themesnap/internal/paths"
)

// debugEnv raises verbosity when no -v flag is given: 1 or true for debug,
// 2 for trace.
const debugEnv = "THEMESNAP_DEBUG"

// annotationSkipConfig marks commands that must run even when the
// configuration file is invalid.
const annotationSkipConfig = "themesnap/skip-config-check"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// cfg is the loaded configuration, or the defaults when loading failed.
var cfg = config.Default()

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default $XDG_CONFIG_HOME/themesnap/config.yaml)")

	addCreateFlags(rootCmd.Flags(), &createOpts)

	rootCmd.Version = cmd.Current().Version
	rootCmd.SetVersionTemplate("themesnap version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	backup.Version = rootCmd.Version
}

func initConfig() {
	config.Init()
	loaded, err := config.Load(configFile)
	configLoadErr = err
	if err != nil {
		cfg = config.Default()
		return
	}
	cfg = loaded
}

var rootCmd = &cobra.Command{
	Use:   "themesnap",
	Short: "Back up your desktop theme and its configuration",
	Long: `themesnap inspects the desktop configuration active on this machine
(GTK and Qt themes, icons, cursors, fonts, window decorations, boot splash,
login screen, terminal and shell themes), lets you choose which parts to
keep, and copies them into a self-contained theme package.

Run without a subcommand to start the interactive backup.`,
	Example: `  # Interactive backup
  themesnap

  # Show what is currently active
  themesnap detect

  # Non-interactive backup of two components
  themesnap create --yes --select gtk-themes,icons --name nord

  See Also: themesnap create, themesnap doctor, themesnap config`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	RunE: runCreate,
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("--quiet and --verbose are mutually exclusive"),
			"use either -q or -v")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		if v == 0 {
			v = logging.LevelFromEnv(os.Getenv(debugEnv))
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := logging.Options{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
		Home:   paths.Home(),
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(errors.Wrapf(err, "opening log file %s", logFile),
				"check that the log file's directory exists and is writable")
		}
		opts.File = f
	}

	logger, err := logging.New(opts)
	if err != nil {
		if errors.Is(err, logging.ErrUnknownFormat) {
			return errors.NewUserError(err, "use --log-format text or --log-format json")
		}
		return err
	}
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig reports a config load failure unless cmd is annotated to run
// without a valid configuration.
func checkConfig(cmd *cobra.Command) error {
	if configLoadErr == nil {
		return nil
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "help" || c.Name() == "completion" || c.Annotations[annotationSkipConfig] == "true" {
			slog.Warn("configuration not loaded", "error", configLoadErr)
			return nil
		}
	}
	return errors.NewConfigError(configLoadErr)
}

// skipConfigCheck is the annotation set for commands that fix or inspect a
// broken configuration.
func skipConfigCheck() map[string]string {
	return map[string]string{annotationSkipConfig: "true"}
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
