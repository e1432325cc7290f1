package component

import (
	"regexp"
	"slices"
	"strings"

	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/host"
)

// Sentinel errors for component definitions.
var (
	// ErrDuplicateComponent indicates a component ID is already registered.
	ErrDuplicateComponent = errors.New("component already registered")

	// ErrInvalidComponent indicates a component definition is incomplete.
	ErrInvalidComponent = errors.New("invalid component")

	// ErrInvalidMethod indicates a detection method is missing parameters.
	ErrInvalidMethod = errors.New("invalid detection method")
)

// Categories used by the built-in catalog.
const (
	CategoryTheming       = "Theming"
	CategoryWindowManager = "Window Manager"
	CategoryBootLogin     = "Boot & Login"
	CategoryTerminal      = "Terminal"
	CategoryShell         = "Shell"
)

// Kind selects how a Method finds the active style.
type Kind string

const (
	// KindSetting queries a desktop setting through gsettings or kreadconfig.
	KindSetting Kind = "setting"
	// KindFileKey reads a key from an ini, toml or yaml file.
	KindFileKey Kind = "file"
	// KindDirScan picks one entry from the first directory with a match.
	KindDirScan Kind = "dir"
	// KindEnv reads an environment variable.
	KindEnv Kind = "env"
	// KindPattern matches a regular expression against a file.
	KindPattern Kind = "pattern"
	// KindPresence lists which of several files exist.
	KindPresence Kind = "presence"
)

// File formats understood by KindFileKey.
const (
	FormatINI  = "ini"
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Probe names a file whose existence KindPresence reports.
type Probe struct {
	Name string `mapstructure:"name" yaml:"name"`
	Path string `mapstructure:"path" yaml:"path"`
}

// Method is one way of detecting a component's active style. Only the fields
// relevant to Kind are read.
type Method struct {
	Kind Kind `mapstructure:"kind" yaml:"kind"`

	// Label prefixes the summary, as in "GTK3: Nordic".
	Label string `mapstructure:"label" yaml:"label,omitempty"`
	// Value replaces whatever was found, for methods that only establish
	// that something is configured.
	Value string `mapstructure:"value" yaml:"value,omitempty"`
	// Ignore lists results treated as no result, compared case-insensitively.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`
	// Basename reduces a path result to its base name without extension.
	Basename bool `mapstructure:"basename" yaml:"basename,omitempty"`

	// KindSetting
	Tool   string `mapstructure:"tool" yaml:"tool,omitempty"`
	Schema string `mapstructure:"schema" yaml:"schema,omitempty"`
	Group  string `mapstructure:"group" yaml:"group,omitempty"`

	// KindSetting, KindFileKey and KindEnv
	Key string `mapstructure:"key" yaml:"key,omitempty"`

	// KindFileKey and KindPattern. May be a glob; matches are tried in
	// lexical order.
	Path    string `mapstructure:"path" yaml:"path,omitempty"`
	Format  string `mapstructure:"format" yaml:"format,omitempty"`
	Section string `mapstructure:"section" yaml:"section,omitempty"`

	// KindPattern, and optionally KindEnv to extract part of the value.
	Pattern string `mapstructure:"pattern" yaml:"pattern,omitempty"`

	// KindDirScan
	Dirs     []string `mapstructure:"dirs" yaml:"dirs,omitempty"`
	Match    string   `mapstructure:"match" yaml:"match,omitempty"`
	DirsOnly bool     `mapstructure:"dirs_only" yaml:"dirs_only,omitempty"`

	// KindPresence
	Probes []Probe `mapstructure:"probes" yaml:"probes,omitempty"`
}

// Validate reports missing or malformed parameters for the method's kind.
func (m Method) Validate() error {
	switch m.Kind {
	case KindSetting:
		if m.Tool != host.ToolGSettings && m.Tool != host.ToolKReadConfig {
			return errors.Wrapf(ErrInvalidMethod, "setting: unknown tool %q", m.Tool)
		}
		if m.Key == "" {
			return errors.Wrap(ErrInvalidMethod, "setting: key is required")
		}
		if m.Tool == host.ToolGSettings && m.Schema == "" {
			return errors.Wrap(ErrInvalidMethod, "setting: gsettings schema is required")
		}
	case KindFileKey:
		if m.Path == "" || m.Key == "" {
			return errors.Wrap(ErrInvalidMethod, "file: path and key are required")
		}
		if !slices.Contains([]string{FormatINI, FormatTOML, FormatYAML}, m.Format) {
			return errors.Wrapf(ErrInvalidMethod, "file: unknown format %q", m.Format)
		}
	case KindDirScan:
		if len(m.Dirs) == 0 {
			return errors.Wrap(ErrInvalidMethod, "dir: at least one directory is required")
		}
	case KindEnv:
		if m.Key == "" {
			return errors.Wrap(ErrInvalidMethod, "env: key is required")
		}
	case KindPattern:
		if m.Path == "" || m.Pattern == "" {
			return errors.Wrap(ErrInvalidMethod, "pattern: path and pattern are required")
		}
	case KindPresence:
		if len(m.Probes) == 0 {
			return errors.Wrap(ErrInvalidMethod, "presence: at least one probe is required")
		}
	default:
		return errors.Wrapf(ErrInvalidMethod, "unknown kind %q", m.Kind)
	}

	if m.Pattern != "" {
		if _, err := regexp.Compile(m.Pattern); err != nil {
			return errors.Wrapf(ErrInvalidMethod, "%s: pattern %q: %v", m.Kind, m.Pattern, err)
		}
	}
	return nil
}

// SourceFunc resolves the paths backed up for a component. It must only read
// host state.
type SourceFunc func(h *host.Host) []string

// StaticSources returns a SourceFunc for a fixed list of paths. "~/" prefixes
// are expanded against the host's home; duplicates are dropped.
func StaticSources(list ...string) SourceFunc {
	list = slices.Clone(list)
	return func(h *host.Host) []string {
		out := make([]string, 0, len(list))
		for _, p := range list {
			expanded := h.Expand(p)
			if expanded == "" || slices.Contains(out, expanded) {
				continue
			}
			out = append(out, expanded)
		}
		return out
	}
}

// Spec describes one configuration domain that can be backed up.
type Spec struct {
	ID            string
	DisplayName   string
	Description   string
	Category      string
	Detectors     []Method
	Sources       SourceFunc
	DestSubfolder string
}

// SourcePaths resolves the component's sources against h.
func (s *Spec) SourcePaths(h *host.Host) []string {
	if s.Sources == nil {
		return nil
	}
	return s.Sources(h)
}

// Validate checks that the component can be registered.
func (s *Spec) Validate() error {
	if s.ID == "" {
		return errors.Wrap(ErrInvalidComponent, "id is required")
	}
	if strings.ContainsAny(s.ID, ", \t\n") {
		return errors.Wrapf(ErrInvalidComponent, "id %q must not contain commas or whitespace", s.ID)
	}
	if s.DisplayName == "" {
		return errors.Wrapf(ErrInvalidComponent, "%s: display name is required", s.ID)
	}
	if s.DestSubfolder == "" {
		return errors.Wrapf(ErrInvalidComponent, "%s: destination subfolder is required", s.ID)
	}
	if s.DestSubfolder == "." || s.DestSubfolder == ".." || containsSeparator(s.DestSubfolder) {
		return errors.Wrapf(ErrInvalidComponent, "%s: destination subfolder %q must be a single directory name", s.ID, s.DestSubfolder)
	}
	for i, m := range s.Detectors {
		if err := m.Validate(); err != nil {
			return errors.Wrapf(err, "%s: detector %d", s.ID, i)
		}
	}
	return nil
}

func containsSeparator(s string) bool {
	for _, r := range s {
		if r == '/' || r == '\\' || r == 0 {
			return true
		}
	}
	return false
}
