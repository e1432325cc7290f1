// Package fileutil provides file system utilities including atomic write operations.
//
// Every function takes an afero.Fs so the same code writes to the real disk
// (afero.NewOsFs) and to in-memory trees in tests.
package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/themesnap/internal/errors"
)

// tempPattern names in-flight files. A leftover file with this prefix marks
// an interrupted write.
const tempPattern = ".themesnap-atomic-*.tmp"

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// This ensures interrupted writes leave the original file intact.
//
// The caller is responsible for ensuring the parent directory exists.
// Permissions are applied to the final file via the perm parameter.
func AtomicWriteFile(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Create temp file in same directory for atomic rename (same filesystem required)
	tmp, err := afero.TempFile(fs, dir, tempPattern)
	if err != nil {
		return errors.Wrapf(err, "creating temp file in %s", dir)
	}

	tmpName := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = fs.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "writing temp file for %s", path)
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "closing temp file for %s", path)
	}

	if err := fs.Chmod(tmpName, perm); err != nil {
		return errors.Wrapf(err, "setting permissions on %s", path)
	}

	if err := fs.Rename(tmpName, path); err != nil {
		return errors.Wrapf(err, "renaming temp file to %s", path)
	}
	renamed = true

	return nil
}

// MarshalJSON renders v as 2-space indented JSON with a trailing newline.
func MarshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling JSON")
	}
	return append(data, '\n'), nil
}

// AtomicWriteJSONWithPerm writes v as indented JSON to path atomically with specified permissions.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteJSONWithPerm(fs afero.Fs, path string, v any, perm os.FileMode) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return err
	}
	return AtomicWriteFile(fs, path, data, perm)
}

// AtomicWriteJSON writes v as indented JSON to path atomically.
// The file is created with 0644 permissions.
func AtomicWriteJSON(fs afero.Fs, path string, v any) error {
	return AtomicWriteJSONWithPerm(fs, path, v, 0o644)
}

// AtomicWriteYAMLWithPerm writes v as YAML to path atomically with specified permissions.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteYAMLWithPerm(fs afero.Fs, path string, v any, perm os.FileMode) (err error) {
	// yaml.Marshal panics on unmarshalable types; recover and return error
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}

	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	return AtomicWriteFile(fs, path, data, perm)
}

// AtomicWriteYAML writes v as YAML to path atomically.
// The file is created with 0644 permissions.
func AtomicWriteYAML(fs afero.Fs, path string, v any) error {
	return AtomicWriteYAMLWithPerm(fs, path, v, 0o644)
}
