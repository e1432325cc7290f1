package host

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// RestrictedFs wraps an afero.Fs and refuses to open chosen paths, and
// everything beneath them, with os.ErrPermission. Stat still succeeds, as it
// does for a real file whose read bits are cleared.
type RestrictedFs struct {
	afero.Fs

	mu     sync.RWMutex
	denied map[string]bool
}

// NewRestrictedFs returns base with reads of paths denied.
func NewRestrictedFs(base afero.Fs, paths ...string) *RestrictedFs {
	r := &RestrictedFs{Fs: base, denied: make(map[string]bool)}
	for _, p := range paths {
		r.Deny(p)
	}
	return r
}

// Deny makes path unreadable.
func (r *RestrictedFs) Deny(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.denied[filepath.Clean(path)] = true
}

// Allow makes path readable again.
func (r *RestrictedFs) Allow(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.denied, filepath.Clean(path))
}

func (r *RestrictedFs) isDenied(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name = filepath.Clean(name)
	for p := range r.denied {
		if name == p || strings.HasPrefix(name, p+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (r *RestrictedFs) Open(name string) (afero.File, error) {
	if r.isDenied(name) {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return r.Fs.Open(name)
}

func (r *RestrictedFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if r.isDenied(name) {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return r.Fs.OpenFile(name, flag, perm)
}

// LstatIfPossible delegates to the wrapped filesystem when it supports Lstat.
func (r *RestrictedFs) LstatIfPossible(name string) (os.FileInfo, bool, error) {
	if l, ok := r.Fs.(afero.Lstater); ok {
		return l.LstatIfPossible(name)
	}
	fi, err := r.Fs.Stat(name)
	return fi, false, err
}

// ReadlinkIfPossible delegates to the wrapped filesystem when it supports it.
func (r *RestrictedFs) ReadlinkIfPossible(name string) (string, error) {
	if l, ok := r.Fs.(afero.LinkReader); ok {
		return l.ReadlinkIfPossible(name)
	}
	return "", &os.PathError{Op: "readlink", Path: name, Err: afero.ErrNoReadlink}
}

func (r *RestrictedFs) Name() string {
	return "RestrictedFs"
}
