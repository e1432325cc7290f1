package backup

import (
	"io/fs"
	"slices"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/themesnap/internal/selection"
)

// Manifest format version for forward compatibility.
const ManifestVersion = 1

// Files written at the top of every backup directory.
const (
	// ManifestFile is the machine-readable record of the backup.
	ManifestFile = "manifest.json"

	// InfoFile is the human-readable record. It is written last, so its
	// presence marks a complete backup.
	InfoFile = "backup_info.txt"
)

// Sentinel errors for backup operations.
var (
	// ErrBackupExists indicates the target directory already exists and is not empty.
	ErrBackupExists = errors.New("backup already exists")

	// ErrRootNotCreatable indicates the backup directory could not be created.
	ErrRootNotCreatable = errors.New("backup directory cannot be created")

	// ErrAllEntriesFailed indicates every selected component failed to copy.
	// The manifest is still written.
	ErrAllEntriesFailed = errors.New("all selected components failed")

	// ErrIncomplete indicates a backup directory has no info file, either
	// because it was interrupted or because it is not a themesnap backup.
	ErrIncomplete = errors.New("backup is incomplete")

	// ErrBackupCorrupted indicates a copied file no longer matches the
	// SHA256 hash recorded in the manifest.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Status is the outcome of copying one component.
type Status string

// Component outcomes.
const (
	// StatusCopied means every existing source was copied.
	StatusCopied Status = "copied"

	// StatusEmpty means none of the sources existed. The subfolder is kept.
	StatusEmpty Status = "empty"

	// StatusPartial means some sources were copied and some failed.
	StatusPartial Status = "partial"

	// StatusFailed means nothing could be copied. The subfolder is removed.
	StatusFailed Status = "failed"
)

// Job describes one backup run.
type Job struct {
	// Name is the backup directory name under Root.
	Name string

	// Root is the directory that holds backups.
	Root string

	// Entries are the selected components, in registry order. Entries whose
	// Selected flag is false are ignored.
	Entries []selection.Entry

	// CreatedAt is recorded in the manifest and info file. Zero means now.
	CreatedAt time.Time
}

// NewJob builds a Job from the selected entries of sel.
func NewJob(name, root string, sel *selection.State) Job {
	return Job{
		Name:    name,
		Root:    root,
		Entries: slices.Collect(sel.SelectedEntries()),
	}
}

// Dir returns the backup directory, Root/Name.
func (j Job) Dir() string {
	return joinClean(j.Root, j.Name)
}

// Manifest contains metadata about a backup.
// It is stored as manifest.json in each backup directory.
type Manifest struct {
	// Version is the manifest format version for forward compatibility.
	Version int `json:"version"`

	// Name is the backup name.
	Name string `json:"name"`

	// CreatedAt is when the backup was created, in UTC.
	CreatedAt time.Time `json:"created_at"`

	// Location is the absolute backup directory.
	Location string `json:"location"`

	// Entries has one result per selected component, in registry order.
	Entries []EntryResult `json:"entries"`

	// Runtime records who ran the backup.
	Runtime Runtime `json:"runtime"`

	// ThemesnapVersion is the version of themesnap that created this backup.
	ThemesnapVersion string `json:"themesnap_version"`
}

// EntryResult is the outcome for one selected component.
type EntryResult struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Category    string    `json:"category"`
	Summary     string    `json:"summary"`
	Dest        string    `json:"dest"`
	Status      Status    `json:"status"`
	Files       []File    `json:"files"`
	Skipped     []Skipped `json:"skipped"`
	Errors      []string  `json:"errors,omitempty"`
}

// File contains metadata for a single copied item.
type File struct {
	// Source is the absolute path the item was copied from.
	Source string `json:"source"`

	// RelPath is the path within the backup directory.
	RelPath string `json:"rel_path"`

	// SHA256Hash is the hex-encoded SHA256 of a regular file's contents.
	SHA256Hash string `json:"sha256_hash,omitempty"`

	// LinkTarget is set for recreated symbolic links.
	LinkTarget string `json:"link_target,omitempty"`

	// Mode is the source's permission and type bits.
	Mode fs.FileMode `json:"mode"`
}

// Skipped records a source path that was not copied.
type Skipped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Runtime identifies the account that ran the backup.
type Runtime struct {
	User     string `json:"user"`
	Home     string `json:"home"`
	SudoUser string `json:"sudo_user"`
}

// Copied returns the number of items copied across all entries.
func (m *Manifest) Copied() int {
	n := 0
	for _, e := range m.Entries {
		n += len(e.Files)
	}
	return n
}

// SkippedCount returns the number of skipped sources across all entries.
func (m *Manifest) SkippedCount() int {
	n := 0
	for _, e := range m.Entries {
		n += len(e.Skipped)
	}
	return n
}

// Failed returns the entries whose status is StatusFailed.
func (m *Manifest) Failed() []EntryResult {
	var out []EntryResult
	for _, e := range m.Entries {
		if e.Status == StatusFailed {
			out = append(out, e)
		}
	}
	return out
}
