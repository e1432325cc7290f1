package host

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/paths"
)

// DefaultQueryTimeout bounds a single settings query.
const DefaultQueryTimeout = 2 * time.Second

// Settings query tools.
const (
	ToolGSettings   = "gsettings"
	ToolKReadConfig = "kreadconfig"
)

// ErrQueryUnavailable reports that no settings query mechanism answered.
var ErrQueryUnavailable = errors.New("settings query unavailable")

// kreadconfigBinaries are tried in order; Plasma 6 ships kreadconfig6.
var kreadconfigBinaries = []string{"kreadconfig6", "kreadconfig5"}

// Host is a read-only view of the machine being backed up. Detection, probing
// and copying only touch the host through it.
type Host struct {
	FS      afero.Fs
	Env     map[string]string
	Home    string
	Runner  CommandRunner
	Timeout time.Duration
	UID     int
}

// Option configures a Host.
type Option func(*Host)

// WithFS sets the filesystem.
func WithFS(fs afero.Fs) Option {
	return func(h *Host) { h.FS = fs }
}

// WithEnv sets the environment.
func WithEnv(env map[string]string) Option {
	return func(h *Host) { h.Env = env }
}

// WithHome sets the invoking user's home directory.
func WithHome(home string) Option {
	return func(h *Host) { h.Home = home }
}

// WithRunner sets the command runner used for settings queries.
func WithRunner(r CommandRunner) Option {
	return func(h *Host) { h.Runner = r }
}

// WithTimeout sets the per-query timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *Host) { h.Timeout = d }
}

// WithUID sets the effective user id.
func WithUID(uid int) Option {
	return func(h *Host) { h.UID = uid }
}

// New returns a Host backed by an in-memory filesystem and an empty
// environment with no settings tools installed. Options override any field.
func New(opts ...Option) *Host {
	h := &Host{
		FS:      afero.NewMemMapFs(),
		Env:     map[string]string{},
		Runner:  NewMockRunner(nil),
		Timeout: DefaultQueryTimeout,
		UID:     1000,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.Env == nil {
		h.Env = map[string]string{}
	}
	return h
}

// Local returns a Host for the running machine. The home directory is the
// invoking user's even under sudo, doas or pkexec.
func Local(opts ...Option) (*Host, error) {
	env := environ()
	home, err := paths.InvokingHome(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	if err != nil {
		return nil, errors.Wrap(err, "resolving home directory")
	}

	h := &Host{
		FS:      afero.NewOsFs(),
		Env:     env,
		Home:    home,
		Runner:  ExecRunner{},
		Timeout: DefaultQueryTimeout,
		UID:     os.Geteuid(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Getenv returns the value of key, or "" when unset.
func (h *Host) Getenv(key string) string {
	return h.Env[key]
}

// LookupEnv reports the value of key and whether it is set.
func (h *Host) LookupEnv(key string) (string, bool) {
	v, ok := h.Env[key]
	return v, ok
}

// Expand resolves a "~/" path against the invoking user's home.
func (h *Host) Expand(path string) string {
	return paths.Expand(path, h.Home)
}

// IsRoot reports whether the process runs with uid 0.
func (h *Host) IsRoot() bool {
	return h.UID == 0
}

// Exists reports whether path exists without following a final symlink.
func (h *Host) Exists(path string) bool {
	if lst, ok := h.FS.(afero.Lstater); ok {
		_, _, err := lst.LstatIfPossible(path)
		return err == nil
	}
	_, err := h.FS.Stat(path)
	return err == nil
}

// QuerySetting reads one desktop setting. For gsettings, schema and key name
// the value; for kreadconfig, schema is the optional config file and group
// and key select the entry. The returned value has surrounding whitespace
// and single quotes removed. Any failure, including an empty answer, yields
// ErrQueryUnavailable.
func (h *Host) QuerySetting(ctx context.Context, tool, schema, group, key string) (string, error) {
	if h.Runner == nil {
		return "", ErrQueryUnavailable
	}

	timeout := h.Timeout
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	switch tool {
	case ToolGSettings:
		out, err := h.Runner.Run(ctx, "gsettings", "get", schema, key)
		if err != nil {
			return "", errors.Wrapf(ErrQueryUnavailable, "gsettings get %s %s: %v", schema, key, err)
		}
		return cleanValue(out)
	case ToolKReadConfig:
		args := make([]string, 0, 6)
		if schema != "" {
			args = append(args, "--file", schema)
		}
		args = append(args, "--group", group, "--key", key)
		for _, bin := range kreadconfigBinaries {
			out, err := h.Runner.Run(ctx, bin, args...)
			if err != nil {
				continue
			}
			if v, err := cleanValue(out); err == nil {
				return v, nil
			}
		}
		return "", errors.Wrapf(ErrQueryUnavailable, "kreadconfig %s/%s", group, key)
	default:
		return "", errors.Wrapf(ErrQueryUnavailable, "unknown settings tool %q", tool)
	}
}

func cleanValue(out string) (string, error) {
	v := strings.TrimSpace(out)
	v = strings.Trim(v, "'")
	v = strings.TrimSpace(v)
	if v == "" {
		return "", ErrQueryUnavailable
	}
	return v, nil
}
