package backup

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/thoreinstein/themesnap/internal/host"
	"github.com/thoreinstein/themesnap/internal/logging"
	"github.com/thoreinstein/themesnap/internal/paths"
	"github.com/thoreinstein/themesnap/pkg/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Executor copies the sources of selected components into a backup directory.
type Executor struct {
	host *host.Host
	out  afero.Fs
	now  func() time.Time
}

// Option configures an Executor.
type Option func(*Executor)

// WithOutputFS sets the filesystem backups are written to. Defaults to the
// host filesystem.
func WithOutputFS(fs afero.Fs) Option {
	return func(e *Executor) {
		e.out = fs
	}
}

// WithClock sets the time source used when a Job has no CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		if now != nil {
			e.now = now
		}
	}
}

// NewExecutor creates an Executor that reads sources from h.
func NewExecutor(h *host.Host, opts ...Option) *Executor {
	e := &Executor{
		host: h,
		out:  h.FS,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute creates job.Dir() and copies every selected component into its
// destination subfolder, then writes manifest.json and backup_info.txt.
//
// The returned manifest is non-nil whenever the backup directory was
// created, including when the error is ErrAllEntriesFailed.
func (e *Executor) Execute(ctx context.Context, job Job) (*Manifest, error) {
	logger := logging.FromContext(ctx)

	if err := paths.ValidateName(job.Name); err != nil {
		return nil, errors.Wrap(err, "validating backup name")
	}
	job.Name = strings.TrimSpace(job.Name)
	if job.Root == "" {
		job.Root = paths.DefaultBackupRoot(e.host.Home)
	}
	job.Root = e.host.Expand(job.Root)
	if job.CreatedAt.IsZero() {
		job.CreatedAt = e.now()
	}

	dir := job.Dir()
	if err := e.prepare(dir); err != nil {
		return nil, err
	}
	logger.Info("creating backup", "dir", dir)

	m := &Manifest{
		Version:          ManifestVersion,
		Name:             job.Name,
		CreatedAt:        job.CreatedAt.UTC().Truncate(time.Second),
		Location:         dir,
		Entries:          []EntryResult{},
		Runtime:          e.runtime(),
		ThemesnapVersion: Version,
	}

	for _, entry := range job.Entries {
		if !entry.Selected {
			continue
		}
		if err := ctx.Err(); err != nil {
			// No info file is written, so the directory reads as incomplete.
			return m, errors.Wrap(err, "backup interrupted")
		}
		result := e.copyEntry(ctx, dir, entry.Spec, entry.Detected.Display())
		logger.Info("component processed",
			"component", result.ID,
			"status", string(result.Status),
			"files", len(result.Files),
			"skipped", len(result.Skipped))
		m.Entries = append(m.Entries, result)
	}

	if err := fileutil.AtomicWriteJSON(e.out, filepath.Join(dir, ManifestFile), m); err != nil {
		return m, errors.Wrap(err, "writing manifest")
	}

	info, err := RenderInfo(m)
	if err != nil {
		return m, err
	}
	if err := fileutil.AtomicWriteFile(e.out, filepath.Join(dir, InfoFile), info, 0o644); err != nil {
		return m, errors.Wrap(err, "writing backup info")
	}

	if len(m.Entries) > 0 && len(m.Failed()) == len(m.Entries) {
		return m, errors.Wrapf(ErrAllEntriesFailed, "backup %s", dir)
	}
	return m, nil
}

// rootNotCreatable wraps cause and marks it as ErrRootNotCreatable, so both
// the sentinel and the underlying filesystem error match errors.Is.
func rootNotCreatable(cause error, op, dir string) error {
	return errors.Mark(errors.Wrapf(cause, "%v: %s %s", ErrRootNotCreatable, op, dir), ErrRootNotCreatable)
}

// prepare creates dir. An existing empty directory is reused. When creation
// fails, any parent directories created along the way are removed.
func (e *Executor) prepare(dir string) error {
	info, err := e.out.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return errors.Wrapf(ErrBackupExists, "%s is a file", dir)
	case err == nil:
		entries, rerr := afero.ReadDir(e.out, dir)
		if rerr != nil {
			return rootNotCreatable(rerr, "reading", dir)
		}
		if len(entries) > 0 {
			return errors.Wrapf(ErrBackupExists, "%s is not empty", dir)
		}
		return nil
	case !os.IsNotExist(err):
		return rootNotCreatable(err, "checking", dir)
	}

	created := e.firstMissing(dir)
	if err := e.out.MkdirAll(dir, paths.DefaultDirPerm); err != nil {
		if created != "" {
			_ = e.out.RemoveAll(created)
		}
		return rootNotCreatable(err, "creating", dir)
	}
	return nil
}

// firstMissing returns the outermost ancestor of dir (or dir itself) that
// does not exist yet.
func (e *Executor) firstMissing(dir string) string {
	missing := ""
	for p := dir; ; p = filepath.Dir(p) {
		if _, err := e.out.Stat(p); err == nil {
			return missing
		}
		missing = p
		if parent := filepath.Dir(p); parent == p {
			return missing
		}
	}
}

func (e *Executor) runtime() Runtime {
	get := func(key, fallback string) string {
		if v := e.host.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	return Runtime{
		User:     get("USER", "unknown"),
		Home:     get("HOME", "unknown"),
		SudoUser: get("SUDO_USER", "not set"),
	}
}

// relPath maps an absolute source path into a component subfolder.
// Paths under home become "home/<rest>", others lose their leading slash.
func relPath(path, home string) string {
	if rel, ok := paths.HomeRel(path, home); ok {
		return filepath.Join("home", rel)
	}
	return strings.TrimPrefix(filepath.Clean(path), string(filepath.Separator))
}

func joinClean(root, name string) string {
	return filepath.Join(root, strings.TrimSpace(name))
}
