package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/themesnap/internal/config"
	"github.com/thoreinstein/themesnap/internal/editor"
	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/resolve"
)

// configFS is where `config set` and `config edit` write the config file.
var configFS = afero.NewOsFs()

// newEditor returns the launcher used by `config edit`.
var newEditor = editor.New

// settableKeys are the keys `config set` accepts, in display order.
var settableKeys = []string{
	config.KeyVersion,
	config.KeyBackupRoot,
	config.KeyEscalationTools,
	config.KeyClipboard,
	config.KeyDetectTimeout,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage themesnap configuration",
	Long: `Manage themesnap configuration stored in ~/.config/themesnap/config.yaml.

Without a subcommand, lists all configuration values.`,
	Example: `  # List all configuration
  themesnap config

  # Get a specific value
  themesnap config get backup_root

  # Set a value
  themesnap config set escalation.tools pkexec,sudo

See Also: themesnap doctor`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Supports dot notation for nested keys. List values are printed one per line.`,
	Example: `  themesnap config get backup_root
  themesnap config get escalation.tools

See Also: themesnap config set, themesnap config list`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write the config file.

Keys: version, backup_root, escalation.tools (comma-separated), clipboard
(true/false), detect.timeout (duration such as 2s). Extra components are
added with 'themesnap config edit'.`,
	Example: `  themesnap config set backup_root /mnt/usb/themes
  themesnap config set escalation.tools pkexec,sudo
  themesnap config set detect.timeout 5s

See Also: themesnap config get, themesnap config edit`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all configuration",
	Long:    `List all configuration values in YAML format.`,
	Example: `  themesnap config list`,
	Args:    cobra.NoArgs,
	RunE:    runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file location",
	Args:        cobra.NoArgs,
	Annotations: skipConfigCheck(),
	RunE:        runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open configuration in $EDITOR",
	Long: `Open the configuration file in your editor.

Uses $EDITOR or $VISUAL, falling back to nano and then vi. A config file
with default values is created first if none exists. The file is validated
after the editor exits.`,
	Example: `  themesnap config edit
  EDITOR="code --wait" themesnap config edit

See Also: themesnap config list, themesnap doctor`,
	Args:        cobra.NoArgs,
	Annotations: skipConfigCheck(),
	RunE:        runConfigEdit,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	out := cmd.OutOrStdout()

	if !viper.IsSet(key) {
		fmt.Fprintln(out, "not set")
		return nil
	}

	switch v := viper.Get(key).(type) {
	case []any:
		for _, item := range v {
			fmt.Fprintln(out, item)
		}
	case []string:
		for _, item := range v {
			fmt.Fprintln(out, item)
		}
	case time.Duration:
		fmt.Fprintln(out, v)
	case map[string]any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "marshaling config value")
		}
		fmt.Fprint(out, string(data))
	default:
		if key == config.KeyDetectTimeout {
			fmt.Fprintln(out, viper.GetDuration(key))
			return nil
		}
		fmt.Fprintln(out, viper.GetString(key))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	value, err := parseConfigValue(key, raw)
	if err != nil {
		return errors.NewUserError(err, "valid keys: "+strings.Join(settableKeys, ", "))
	}

	viper.Set(key, value)
	c := config.Current()
	if errs := config.Validate(c); len(errs) > 0 {
		return errors.NewUserError(errors.Join(errs...), "run 'themesnap config get "+key+"' to see the current value")
	}

	path := config.Path()
	if err := config.Save(configFS, path, c); err != nil {
		return errors.NewSystemError(err, "check that the config directory is writable")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v\n", key, formatValue(value))
	return nil
}

// parseConfigValue converts raw to the type stored under key.
func parseConfigValue(key, raw string) (any, error) {
	switch key {
	case config.KeyVersion:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.Newf("version must be an integer, got %q", raw)
		}
		return v, nil
	case config.KeyBackupRoot:
		if strings.TrimSpace(raw) == "" {
			return nil, errors.New("backup_root must not be empty")
		}
		return raw, nil
	case config.KeyEscalationTools:
		tools := resolve.SplitIDs(raw)
		if len(tools) == 0 {
			return nil, errors.New("no escalation tools specified")
		}
		return tools, nil
	case config.KeyClipboard:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.Newf("clipboard must be true or false, got %q", raw)
		}
		return v, nil
	case config.KeyDetectTimeout:
		v, err := time.ParseDuration(raw)
		if err != nil {
			return nil, errors.Newf("detect.timeout must be a duration such as 2s, got %q", raw)
		}
		return v, nil
	case config.KeyComponents:
		return nil, errors.New("components cannot be set from the command line; use 'themesnap config edit'")
	default:
		return nil, errors.Newf("unknown config key %q", key)
	}
}

func formatValue(v any) string {
	if list, ok := v.([]string); ok {
		return strings.Join(list, ",")
	}
	return fmt.Sprint(v)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(config.Current())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	path := config.Path()
	exists, _ := afero.Exists(configFS, path)
	if exists {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", path, styleDim("(not created yet)"))
	}
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := config.Path()

	exists, err := afero.Exists(configFS, path)
	if err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "checking %s", path), "check the config directory permissions")
	}
	if !exists {
		if err := config.Save(configFS, path, config.Default()); err != nil {
			return errors.NewSystemError(err, "check that the config directory is writable")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s with default values\n", path)
	}

	launcher := newEditor()
	launcher.Stdin = cmd.InOrStdin()
	launcher.Stdout = cmd.OutOrStdout()
	launcher.Stderr = cmd.ErrOrStderr()
	if err := launcher.Open(cmd.Context(), path); err != nil {
		return errors.NewSystemError(err, "set EDITOR to your preferred editor")
	}

	config.Init()
	loaded, err := config.Load(path)
	configLoadErr = err
	if err != nil {
		return errors.NewConfigError(err)
	}
	cfg = loaded

	if n := len(cfg.Components); n > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d extra component(s) configured\n", n)
	}
	return nil
}
