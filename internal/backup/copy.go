package backup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/thoreinstein/themesnap/internal/component"
	"github.com/thoreinstein/themesnap/internal/logging"
)

// copyEntry copies every source of spec into dir/spec.DestSubfolder.
func (e *Executor) copyEntry(ctx context.Context, dir string, spec *component.Spec, summary string) EntryResult {
	result := EntryResult{
		ID:          spec.ID,
		DisplayName: spec.DisplayName,
		Category:    spec.Category,
		Summary:     summary,
		Dest:        spec.DestSubfolder,
		Files:       []File{},
		Skipped:     []Skipped{},
	}

	dest := filepath.Join(dir, spec.DestSubfolder)
	if err := e.out.MkdirAll(dest, 0o755); err != nil {
		result.Status = StatusFailed
		result.Errors = append(result.Errors, errors.Wrapf(err, "creating %s", dest).Error())
		return result
	}

	c := &copier{
		src:    e.host.FS,
		dst:    e.out,
		result: &result,
		logger: logging.FromContext(ctx),
	}

	// Sources are re-resolved here; the host may have changed since detection.
	for _, src := range spec.SourcePaths(e.host) {
		info, err := lstat(e.host.FS, src)
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug("source not found", "path", src)
			result.Skipped = append(result.Skipped, Skipped{Path: src, Reason: "not found"})
			continue
		}
		if err != nil {
			c.fail(errors.Wrapf(err, "inspecting %s", src))
			continue
		}

		rel := relPath(src, e.host.Home)
		c.copyTree(src, filepath.Join(dest, rel), filepath.Join(spec.DestSubfolder, rel), info)
	}

	switch {
	case c.failures == 0 && c.copied == 0:
		result.Status = StatusEmpty
	case c.failures == 0:
		result.Status = StatusCopied
	case c.copied > 0:
		result.Status = StatusPartial
	default:
		result.Status = StatusFailed
		if err := e.out.RemoveAll(dest); err != nil {
			result.Errors = append(result.Errors, errors.Wrapf(err, "removing %s", dest).Error())
		}
	}
	return result
}

// copier walks one source tree. Directory entries are visited in lexical
// order so repeated runs produce identical manifests.
type copier struct {
	src      afero.Fs
	dst      afero.Fs
	result   *EntryResult
	logger   *slog.Logger
	failures int
	// copied counts files and links; directories alone do not make an entry
	// partial.
	copied int
}

func (c *copier) fail(err error) {
	c.failures++
	c.logger.Warn("copy failed", "error", err)
	c.result.Errors = append(c.result.Errors, err.Error())
}

func (c *copier) skip(path, reason string) {
	c.logger.Debug("skipping", "path", path, "reason", reason)
	c.result.Skipped = append(c.result.Skipped, Skipped{Path: path, Reason: reason})
}

func (c *copier) record(f File) {
	c.logger.Log(context.Background(), logging.LevelTrace, "copied", "src", f.Source, "rel", f.RelPath)
	c.result.Files = append(c.result.Files, f)
	if !f.Mode.IsDir() {
		c.copied++
	}
}

func (c *copier) copyTree(src, dst, rel string, info os.FileInfo) {
	mode := info.Mode()
	switch {
	case mode&os.ModeSymlink != 0:
		c.copyLink(src, dst, rel, mode)
	case mode.IsDir():
		c.copyDir(src, dst, rel, mode)
	case mode.IsRegular():
		hash, err := copyFile(c.src, c.dst, src, dst, mode)
		if err != nil {
			c.fail(err)
			return
		}
		c.record(File{Source: src, RelPath: rel, SHA256Hash: hash, Mode: mode})
	default:
		c.skip(src, "unsupported file type "+mode.Type().String())
	}
}

func (c *copier) copyDir(src, dst, rel string, mode fs.FileMode) {
	// afero.ReadDir returns entries sorted by name.
	children, err := afero.ReadDir(c.src, src)
	if err != nil {
		c.fail(errors.Wrapf(err, "reading directory %s", src))
		return
	}
	if err := c.dst.MkdirAll(dst, 0o755); err != nil {
		c.fail(errors.Wrapf(err, "creating directory %s", dst))
		return
	}
	c.record(File{Source: src, RelPath: rel, Mode: mode})

	for _, child := range children {
		name := child.Name()
		c.copyTree(filepath.Join(src, name), filepath.Join(dst, name), filepath.Join(rel, name), child)
	}
}

func (c *copier) copyLink(src, dst, rel string, mode fs.FileMode) {
	reader, ok := c.src.(afero.LinkReader)
	if !ok {
		c.skip(src, "symlinks not supported by source filesystem")
		return
	}
	linker, ok := c.dst.(afero.Linker)
	if !ok {
		c.skip(src, "symlinks not supported by destination filesystem")
		return
	}

	target, err := reader.ReadlinkIfPossible(src)
	if err != nil {
		c.fail(errors.Wrapf(err, "reading link %s", src))
		return
	}
	if err := c.dst.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		c.fail(errors.Wrapf(err, "creating directory %s", filepath.Dir(dst)))
		return
	}
	if err := linker.SymlinkIfPossible(target, dst); err != nil {
		c.fail(errors.Wrapf(err, "creating link %s", dst))
		return
	}
	c.record(File{Source: src, RelPath: rel, LinkTarget: target, Mode: mode})
}

// copyFile copies src to dst, preserving permission bits, and returns the
// hex SHA256 of the copied bytes.
func copyFile(srcFS, dstFS afero.Fs, src, dst string, mode fs.FileMode) (hash string, err error) {
	in, err := srcFS.Open(src)
	if err != nil {
		return "", errors.Wrapf(err, "opening %s", src)
	}
	defer in.Close()

	if err := dstFS.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", errors.Wrapf(err, "creating directory %s", filepath.Dir(dst))
	}

	out, err := dstFS.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm()|0o200)
	if err != nil {
		return "", errors.Wrapf(err, "creating %s", dst)
	}
	defer func() {
		if err != nil {
			_ = dstFS.Remove(dst)
		}
	}()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		out.Close()
		return "", errors.Wrapf(err, "copying %s", src)
	}
	if err := out.Close(); err != nil {
		return "", errors.Wrapf(err, "closing %s", dst)
	}

	// OpenFile is subject to the umask; set the exact source bits.
	if err := dstFS.Chmod(dst, mode.Perm()); err != nil {
		return "", errors.Wrapf(err, "setting permissions on %s", dst)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// hashFile returns the hex SHA256 of path's contents.
func hashFile(fsys afero.Fs, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrapf(err, "hashing %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}
