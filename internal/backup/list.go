package backup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// Load reads the manifest of the backup in dir. When the info file is
// missing the manifest is still returned together with ErrIncomplete.
func Load(fsys afero.Fs, dir string) (*Manifest, error) {
	data, err := afero.ReadFile(fsys, filepath.Join(dir, ManifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrIncomplete, "no %s in %s", ManifestFile, dir)
		}
		return nil, errors.Wrapf(err, "reading manifest in %s", dir)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest in %s", dir)
	}

	if ok, _ := afero.Exists(fsys, filepath.Join(dir, InfoFile)); !ok {
		return &m, errors.Wrapf(ErrIncomplete, "no %s in %s", InfoFile, dir)
	}
	return &m, nil
}

// List returns the manifests of the backups under root, newest first.
// Directories that are not complete backups are skipped.
func List(fsys afero.Fs, root string) ([]Manifest, error) {
	entries, err := afero.ReadDir(fsys, root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading backup root %s", root)
	}

	var manifests []Manifest
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m, err := Load(fsys, filepath.Join(root, entry.Name()))
		if err != nil {
			continue
		}
		manifests = append(manifests, *m)
	}

	slices.SortStableFunc(manifests, func(a, b Manifest) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return manifests, nil
}

// Verify re-hashes every regular file recorded in the manifest of dir and
// returns the relative paths that are missing or differ. The error wraps
// ErrBackupCorrupted when any path is returned.
func Verify(fsys afero.Fs, dir string) ([]string, error) {
	m, err := Load(fsys, dir)
	if err != nil {
		return nil, err
	}

	var bad []string
	for _, e := range m.Entries {
		for _, f := range e.Files {
			if f.SHA256Hash == "" {
				continue
			}
			got, err := hashFile(fsys, filepath.Join(dir, f.RelPath))
			if err != nil || got != f.SHA256Hash {
				bad = append(bad, f.RelPath)
			}
		}
	}
	if len(bad) > 0 {
		return bad, errors.Wrapf(ErrBackupCorrupted, "%d file(s) in %s", len(bad), dir)
	}
	return nil, nil
}
