package paths

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "themesnap"

// DefaultBackupDirName is the folder created under the invoking user's home
// when no backup root is configured.
const DefaultBackupDirName = "CustomThemes"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created backup directories.
const DefaultDirPerm = 0o755

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// User lookups are variables so tests can resolve accounts that do not exist
// on the machine running them.
var (
	lookupUser   = user.Lookup
	lookupUserID = user.LookupId
)

// Home returns the invoking user's home directory, or an empty string if it
// cannot be determined. Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the invoking user's home directory using the process
// environment. See InvokingHome.
func ResolveHome() (string, error) {
	return InvokingHome(os.LookupEnv)
}

// InvokingHome returns the home directory of the user who started the
// program, even when it runs under a privilege-elevation tool.
//
// Resolution order:
//   - SUDO_USER (sudo) or DOAS_USER (doas), when not root
//   - PKEXEC_UID (pkexec), when not 0
//   - HOME
//   - os.UserHomeDir
func InvokingHome(lookup LookupFunc) (string, error) {
	for _, key := range []string{"SUDO_USER", "DOAS_USER"} {
		if name, ok := lookup(key); ok && name != "" && name != "root" {
			if u, err := lookupUser(name); err == nil && u.HomeDir != "" {
				return u.HomeDir, nil
			}
		}
	}

	if uid, ok := lookup("PKEXEC_UID"); ok && uid != "" && uid != "0" {
		if u, err := lookupUserID(uid); err == nil && u.HomeDir != "" {
			return u.HomeDir, nil
		}
	}

	if home, ok := lookup("HOME"); ok && home != "" {
		return home, nil
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.Wrap(ErrHomeDirNotFound, "resolving invoking user")
	}
	return home, nil
}

// Elevated reports whether the environment shows the process was started
// through sudo, doas or pkexec.
func Elevated(lookup LookupFunc) bool {
	for _, key := range []string{"SUDO_USER", "DOAS_USER", "PKEXEC_UID"} {
		if v, ok := lookup(key); ok && v != "" {
			return true
		}
	}
	return false
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDirEnv overrides the configuration directory when set.
const ConfigDirEnv = "THEMESNAP_CONFIG_DIR"

// ConfigDir returns the themesnap configuration directory.
// Returns: $THEMESNAP_CONFIG_DIR, or <ConfigHome>/themesnap/. An elevated run
// uses the invoking user's ~/.config instead of root's.
func ConfigDir() string {
	return configDir(os.LookupEnv)
}

func configDir(lookup LookupFunc) string {
	if dir, _ := lookup(ConfigDirEnv); dir != "" {
		return filepath.Clean(dir)
	}
	if Elevated(lookup) {
		if home, err := InvokingHome(lookup); err == nil {
			return filepath.Join(home, ".config", AppName)
		}
	}
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the default configuration file path.
// Returns: <ConfigHome>/themesnap/config.yaml
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultBackupRoot returns the backup root used when none is configured.
// Returns: <home>/CustomThemes, or ./CustomThemes when home is empty.
func DefaultBackupRoot(home string) string {
	if home == "" {
		return DefaultBackupDirName
	}
	return filepath.Join(home, DefaultBackupDirName)
}

// Expand replaces a leading "~" or "~/" with home and cleans the result.
// Other paths are returned cleaned but otherwise unchanged.
func Expand(path, home string) string {
	switch {
	case path == "~":
		return filepath.Clean(home)
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	case path == "":
		return ""
	default:
		return filepath.Clean(path)
	}
}

// HomeRel returns path relative to home and true when path lies inside home.
func HomeRel(path, home string) (string, bool) {
	if home == "" || home == "/" {
		return "", false
	}
	rel, err := filepath.Rel(home, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

// ValidateName checks that name can be used as a single directory name.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return errors.Wrap(ErrInvalidPath, "name is empty")
	case trimmed == "." || trimmed == "..":
		return errors.Wrapf(ErrInvalidPath, "name %q is reserved", trimmed)
	case strings.ContainsRune(trimmed, '/'):
		return errors.Wrapf(ErrInvalidPath, "name %q contains a path separator", trimmed)
	case strings.ContainsRune(trimmed, '\x00'):
		return errors.Wrap(ErrInvalidPath, "name contains a null byte")
	}
	return nil
}
