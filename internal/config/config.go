// Package config provides configuration management for themesnap using Viper.
package config

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/thoreinstein/themesnap/internal/component"
	"github.com/thoreinstein/themesnap/internal/host"
	"github.com/thoreinstein/themesnap/internal/paths"
	"github.com/thoreinstein/themesnap/internal/resolve"
	"github.com/thoreinstein/themesnap/pkg/fileutil"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. THEMESNAP_BACKUP_ROOT or THEMESNAP_DETECT_TIMEOUT.
const EnvPrefix = "THEMESNAP"

// CurrentVersion is the only supported config file version.
const CurrentVersion = 1

// Configuration keys.
const (
	KeyVersion         = "version"
	KeyBackupRoot      = "backup_root"
	KeyEscalationTools = "escalation.tools"
	KeyClipboard       = "clipboard"
	KeyDetectTimeout   = "detect.timeout"
	KeyComponents      = "components"
)

// DefaultBackupRoot is the configured form of the default backup root.
const DefaultBackupRoot = "~/" + paths.DefaultBackupDirName

// Config represents the top-level configuration structure.
type Config struct {
	Version    int               `mapstructure:"version" yaml:"version"`
	BackupRoot string            `mapstructure:"backup_root" yaml:"backup_root"`
	Escalation Escalation        `mapstructure:"escalation" yaml:"escalation"`
	Clipboard  bool              `mapstructure:"clipboard" yaml:"clipboard"`
	Detect     Detect            `mapstructure:"detect" yaml:"detect"`
	Components []component.Entry `mapstructure:"components" yaml:"components,omitempty"`
}

// Escalation configures privilege re-execution.
type Escalation struct {
	// Tools are tried in order; the first one installed is used.
	Tools []string `mapstructure:"tools" yaml:"tools"`
}

// Detect configures style detection.
type Detect struct {
	// Timeout bounds each gsettings or kreadconfig query.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// MarshalYAML writes the timeout as a duration string such as "2s".
func (d Detect) MarshalYAML() (any, error) {
	return map[string]string{"timeout": d.Timeout.String()}, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:    CurrentVersion,
		BackupRoot: DefaultBackupRoot,
		Escalation: Escalation{Tools: append([]string(nil), resolve.DefaultTools...)},
		Clipboard:  true,
		Detect:     Detect{Timeout: host.DefaultQueryTimeout},
	}
}

// Init initializes Viper with default configuration, discarding any
// previously loaded state. Call this once at application startup before
// accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault(KeyVersion, d.Version)
	viper.SetDefault(KeyBackupRoot, d.BackupRoot)
	viper.SetDefault(KeyEscalationTools, d.Escalation.Tools)
	viper.SetDefault(KeyClipboard, d.Clipboard)
	viper.SetDefault(KeyDetectTimeout, d.Detect.Timeout)
}

// Load reads the configuration file and validates the result.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load: defaults apply.
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		case path != "" && errors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "validating config")
	}

	return &cfg, nil
}

// Current returns the configuration currently held by Viper without
// re-reading the file. Defaults are returned if Unmarshal fails.
func Current() *Config {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Default()
	}
	return &cfg
}

// Path returns the config file in use, or the default location when none
// has been read.
func Path() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return paths.ConfigFile()
}

// InUse returns the absolute path of the config file Load read, or "" when
// only defaults apply.
func InUse() string {
	used := viper.ConfigFileUsed()
	if used == "" {
		return ""
	}
	if abs, err := filepath.Abs(used); err == nil {
		return abs
	}
	return used
}

// ResolveBackupRoot expands "~" in the configured backup root against home
// and falls back to the default root when unset.
func (c *Config) ResolveBackupRoot(home string) string {
	if c.BackupRoot == "" {
		return paths.DefaultBackupRoot(home)
	}
	return paths.Expand(c.BackupRoot, home)
}

// Registry returns the built-in component catalog extended with the
// components declared in the configuration.
func (c *Config) Registry() (*component.Registry, error) {
	r := component.Default()
	if err := component.FromConfig(r, c.Components); err != nil {
		return nil, errors.Wrap(err, "loading configured components")
	}
	return r, nil
}

// Save writes cfg as YAML to path atomically, creating the parent directory.
func Save(fsys afero.Fs, path string, cfg *Config) error {
	if err := fsys.MkdirAll(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return errors.Wrapf(err, "creating config directory %s", filepath.Dir(path))
	}
	if err := fileutil.AtomicWriteYAML(fsys, path, cfg); err != nil {
		return errors.Wrapf(err, "writing config file %s", path)
	}
	return nil
}
