package fileutil

import (
	"io"

	"github.com/spf13/afero"

	"github.com/thoreinstein/themesnap/internal/errors"
)

// MaxFileSize is the maximum file size we'll read (1MB).
// Theme configuration files are small; anything larger is not parsed.
const MaxFileSize = 1024 * 1024 // 1MB

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ErrIsDirectory indicates that a file read was attempted on a directory.
var ErrIsDirectory = errors.New("path is a directory")

// ReadFileWithLimit reads a file up to MaxFileSize.
// It returns an error if the file is larger than the limit.
func ReadFileWithLimit(fs afero.Fs, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	// Get file info to fail fast if size is already too large
	info, err := f.Stat()
	if err == nil {
		if info.IsDir() {
			return nil, errors.Wrapf(ErrIsDirectory, "reading %s", path)
		}
		if info.Size() > MaxFileSize {
			return nil, errors.Wrapf(ErrFileTooLarge, "reading %s", path)
		}
	}

	r := io.LimitReader(f, MaxFileSize+1)
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	if len(data) > MaxFileSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "reading %s", path)
	}

	return data, nil
}
