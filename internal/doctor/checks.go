package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/themesnap/internal/component"
	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/host"
	"github.com/thoreinstein/themesnap/internal/probe"
	"github.com/thoreinstein/themesnap/internal/resolve"
)

// Check categories.
const (
	CategoryConfig    = "config"
	CategoryDetection = "detection"
	CategoryAccess    = "access"
	CategoryBackup    = "backup"
)

// SettingsTools are the desktop setting query binaries looked up by
// SettingsToolsCheck.
var SettingsTools = []string{"gsettings", "kreadconfig6", "kreadconfig5"}

// ConfigCheck reports whether the configuration file loaded and validated.
type ConfigCheck struct {
	Path    string
	LoadErr error
	Exists  bool
}

var _ Check = (*ConfigCheck)(nil)

func (c *ConfigCheck) Name() string     { return "config-file" }
func (c *ConfigCheck) Category() string { return CategoryConfig }

func (c *ConfigCheck) Run(_ context.Context) *CheckResult {
	switch {
	case c.LoadErr != nil:
		return &CheckResult{
			Status:  SeverityError,
			Message: c.LoadErr.Error(),
			Details: map[string]any{"path": c.Path},
			FixHint: "themesnap config edit",
		}
	case !c.Exists:
		return &CheckResult{
			Status:  SeverityInfo,
			Message: "no config file, using defaults",
			Details: map[string]any{"path": c.Path},
		}
	default:
		return &CheckResult{
			Status:  SeverityPass,
			Message: "loaded " + c.Path,
		}
	}
}

// SettingsToolsCheck reports which desktop setting query tools are installed.
// Detection still works without them by reading configuration files.
type SettingsToolsCheck struct {
	Runner host.CommandRunner
}

var _ Check = (*SettingsToolsCheck)(nil)

func (c *SettingsToolsCheck) Name() string     { return "settings-tools" }
func (c *SettingsToolsCheck) Category() string { return CategoryDetection }

func (c *SettingsToolsCheck) Run(ctx context.Context) *CheckResult {
	var found []string
	for _, tool := range SettingsTools {
		if c.Runner.IsInstalled(ctx, tool) {
			found = append(found, tool)
		}
	}
	if len(found) == 0 {
		return &CheckResult{
			Status:  SeverityWarning,
			Message: "neither gsettings nor kreadconfig is installed; detection falls back to configuration files",
			FixHint: "install gsettings (GNOME) or kreadconfig (KDE Plasma) for more accurate detection",
		}
	}
	return &CheckResult{
		Status:  SeverityPass,
		Message: "found " + strings.Join(found, ", "),
		Details: map[string]any{"tools": found},
	}
}

// EscalationCheck reports the privilege escalation tool used for blocked
// paths.
type EscalationCheck struct {
	Runner host.CommandRunner
	Tools  []string
	UID    int
}

var _ Check = (*EscalationCheck)(nil)

func (c *EscalationCheck) Name() string     { return "escalation" }
func (c *EscalationCheck) Category() string { return CategoryAccess }

func (c *EscalationCheck) Run(ctx context.Context) *CheckResult {
	if c.UID == 0 {
		return &CheckResult{
			Status:  SeverityInfo,
			Message: "running as root; escalation is not needed",
		}
	}

	tools := c.Tools
	if len(tools) == 0 {
		tools = resolve.DefaultTools
	}
	for _, t := range tools {
		if c.Runner.IsInstalled(ctx, t) {
			return &CheckResult{
				Status:  SeverityPass,
				Message: "using " + t,
				Details: map[string]any{"tool": t},
			}
		}
	}
	return &CheckResult{
		Status:  SeverityWarning,
		Message: fmt.Sprintf("none of %s is installed; unreadable paths need manual chmod", strings.Join(tools, ", ")),
		FixHint: "themesnap config set escalation.tools <tool>",
	}
}

// ClipboardCheck reports whether generated commands can be copied.
type ClipboardCheck struct {
	Enabled     bool
	Unsupported bool
}

var _ Check = (*ClipboardCheck)(nil)

func (c *ClipboardCheck) Name() string     { return "clipboard" }
func (c *ClipboardCheck) Category() string { return CategoryAccess }

func (c *ClipboardCheck) Run(_ context.Context) *CheckResult {
	switch {
	case !c.Enabled:
		return &CheckResult{Status: SeverityInfo, Message: "disabled in config; commands are printed"}
	case c.Unsupported:
		return &CheckResult{
			Status:  SeverityInfo,
			Message: "no xclip, xsel or wl-copy found; commands are printed",
		}
	default:
		return &CheckResult{Status: SeverityPass, Message: "available"}
	}
}

// SourcesCheck probes every component's source paths.
type SourcesCheck struct {
	Host     *host.Host
	Registry *component.Registry
}

var _ Check = (*SourcesCheck)(nil)

func (c *SourcesCheck) Name() string     { return "sources" }
func (c *SourcesCheck) Category() string { return CategoryAccess }

func (c *SourcesCheck) Run(_ context.Context) *CheckResult {
	var all []string
	for _, spec := range c.Registry.All() {
		all = append(all, spec.SourcePaths(c.Host)...)
	}
	report := probe.Probe(c.Host.FS, all)

	blocked := report.BlockedPaths()
	if len(blocked) == 0 {
		return &CheckResult{
			Status:  SeverityPass,
			Message: fmt.Sprintf("all %d source paths are readable or absent", len(report.Accesses)),
		}
	}
	return &CheckResult{
		Status:  SeverityWarning,
		Message: fmt.Sprintf("%d of %d source paths cannot be read", len(blocked), len(report.Accesses)),
		Details: map[string]any{"blocked": blocked},
		FixHint: "themesnap check --all",
	}
}

// BackupRootCheck verifies the backup root is a writable directory. A
// missing root is fixable.
type BackupRootCheck struct {
	FS   afero.Fs
	Root string

	missing bool
}

var (
	_ Check = (*BackupRootCheck)(nil)
	_ Fixer = (*BackupRootCheck)(nil)
)

func (c *BackupRootCheck) Name() string     { return "backup-root" }
func (c *BackupRootCheck) Category() string { return CategoryBackup }

func (c *BackupRootCheck) Run(_ context.Context) *CheckResult {
	c.missing = false
	details := map[string]any{"path": c.Root}

	info, err := c.FS.Stat(c.Root)
	switch {
	case errors.Is(err, os.ErrNotExist):
		c.missing = true
		return &CheckResult{
			Status:  SeverityInfo,
			Message: c.Root + " does not exist yet; it is created on the first backup",
			Details: details,
			Fixable: true,
			FixHint: "themesnap doctor --fix",
		}
	case err != nil:
		return &CheckResult{
			Status:  SeverityError,
			Message: fmt.Sprintf("cannot stat %s: %v", c.Root, err),
			Details: details,
		}
	case !info.IsDir():
		return &CheckResult{
			Status:  SeverityError,
			Message: c.Root + " exists but is not a directory",
			Details: details,
			FixHint: "themesnap config set backup_root <dir>",
		}
	}

	details["permissions"] = fmt.Sprintf("%04o", info.Mode().Perm())
	if err := writable(c.FS, c.Root); err != nil {
		return &CheckResult{
			Status:  SeverityError,
			Message: fmt.Sprintf("%s is not writable: %v", c.Root, err),
			Details: details,
			FixHint: "chmod u+w " + c.Root,
		}
	}
	return &CheckResult{
		Status:  SeverityPass,
		Message: c.Root + " is writable",
		Details: details,
	}
}

func (c *BackupRootCheck) CanFix() bool {
	return c.missing
}

func (c *BackupRootCheck) Fix() []FixResult {
	if !c.missing {
		return nil
	}
	result := FixResult{Path: c.Root}
	if err := c.FS.MkdirAll(c.Root, 0o755); err != nil {
		result.Description = "failed to create directory"
		result.Error = errors.Wrapf(err, "creating %s", c.Root)
		return []FixResult{result}
	}
	c.missing = false
	result.Fixed = true
	result.Description = "created directory"
	return []FixResult{result}
}

// writable creates and removes a temporary file in dir.
func writable(fsys afero.Fs, dir string) error {
	f, err := afero.TempFile(fsys, dir, ".themesnap-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return fsys.Remove(name)
}
