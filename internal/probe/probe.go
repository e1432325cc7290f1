// Package probe checks whether the process can read the paths a backup
// will copy.
//
// An absent path is accessible: there is nothing to copy, so nothing blocks.
// Only a path that exists and cannot be read or listed is reported blocked.
package probe

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/thoreinstein/themesnap/internal/errors"
)

// Path types reported in Access.Type.
const (
	TypeFile      = "file"
	TypeDirectory = "directory"
	TypeSymlink   = "symlink"
	TypeOther     = "other"
)

// Access is the probe result for one path.
type Access struct {
	Path       string
	Type       string
	Mode       os.FileMode
	Exists     bool
	Accessible bool
	// Err is the failure that made the path inaccessible.
	Err error
}

// Permissions formats the mode like ls, or "" when the path was not found.
func (a Access) Permissions() string {
	if !a.Exists {
		return ""
	}
	return a.Mode.String()
}

// Report is the result of one probe run. It is never reused: host
// permissions may change between runs.
type Report struct {
	Accesses []Access
}

// Blocked returns the inaccessible entries in probe order.
func (r Report) Blocked() []Access {
	var out []Access
	for _, a := range r.Accesses {
		if !a.Accessible {
			out = append(out, a)
		}
	}
	return out
}

// BlockedPaths returns the paths of the inaccessible entries.
func (r Report) BlockedPaths() []string {
	var out []string
	for _, a := range r.Blocked() {
		out = append(out, a.Path)
	}
	return out
}

// Clean reports whether every path is accessible or absent.
func (r Report) Clean() bool {
	for _, a := range r.Accesses {
		if !a.Accessible {
			return false
		}
	}
	return true
}

// Probe checks each path with the least access the copy will need: files
// are opened for reading, directories are opened and listed, and the first
// child is looked up to confirm the directory can be traversed. Paths are
// deduplicated in first-seen order.
func Probe(fsys afero.Fs, paths []string) Report {
	seen := make(map[string]bool, len(paths))
	report := Report{Accesses: make([]Access, 0, len(paths))}
	for _, p := range paths {
		p = filepath.Clean(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		report.Accesses = append(report.Accesses, probeOne(fsys, p))
	}
	return report
}

func probeOne(fsys afero.Fs, path string) Access {
	a := Access{Path: path}

	info, err := lstat(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		a.Accessible = true
		return a
	}
	if err != nil {
		// The path may exist behind an untraversable parent; it cannot be
		// proven absent, so it blocks.
		a.Exists = true
		a.Err = errors.Wrapf(err, "stat %s", path)
		return a
	}

	a.Exists = true
	a.Mode = info.Mode()

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		// Symlinks are recreated rather than followed.
		a.Type = TypeSymlink
		a.Accessible = true
	case info.IsDir():
		a.Type = TypeDirectory
		a.Err = checkDir(fsys, path)
		a.Accessible = a.Err == nil
	case info.Mode().IsRegular():
		a.Type = TypeFile
		a.Err = checkFile(fsys, path)
		a.Accessible = a.Err == nil
	default:
		// Devices, sockets and pipes are skipped by the copy.
		a.Type = TypeOther
		a.Accessible = true
	}
	return a
}

func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

func checkFile(fsys afero.Fs, path string) error {
	f, err := fsys.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	buf := make([]byte, 1)
	if _, err := f.Read(buf); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "read %s", path)
	}
	return nil
}

func checkDir(fsys afero.Fs, path string) error {
	f, err := fsys.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open directory %s", path)
	}
	defer f.Close()

	names, err := f.Readdirnames(1)
	if err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "list %s", path)
	}
	if len(names) == 0 {
		return nil
	}

	child := filepath.Join(path, names[0])
	if _, err := lstat(fsys, child); err != nil {
		return errors.Wrapf(err, "traverse %s", path)
	}
	return nil
}
