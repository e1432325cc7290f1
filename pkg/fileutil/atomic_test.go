package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{"successful write", []byte("hello world\n"), 0o644},
		{"empty data", []byte{}, 0o644},
		{"binary data", []byte{0x00, 0x01, 0x02, 0xFF}, 0o600},
		{"executable permissions", []byte("#!/bin/sh\necho hello\n"), 0o755},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewOsFs()
			path := filepath.Join(t.TempDir(), "test-file")

			if err := AtomicWriteFile(fs, path, tt.data, tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %q, want %q", got, tt.data)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stating file: %v", err)
			}
			if gotPerm := info.Mode().Perm(); gotPerm != tt.perm {
				t.Errorf("permissions = %o, want %o", gotPerm, tt.perm)
			}
		})
	}
}

func TestAtomicWriteFile_MemMapFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/backups/snap", 0o755); err != nil {
		t.Fatal(err)
	}

	if err := AtomicWriteFile(fs, "/backups/snap/backup_info.txt", []byte("done\n"), 0o644); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	got, err := afero.ReadFile(fs, "/backups/snap/backup_info.txt")
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(got) != "done\n" {
		t.Errorf("content = %q, want %q", got, "done\n")
	}

	entries, err := afero.ReadDir(fs, "/backups/snap")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the target file", len(entries))
	}
}

func TestAtomicWriteFile_DirectoryNotExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "subdir", "file.txt")

	if err := AtomicWriteFile(afero.NewOsFs(), path, []byte("data"), 0o600); err == nil {
		t.Error("AtomicWriteFile() expected error for nonexistent directory")
	}
}

func TestAtomicWriteFile_OverwriteExisting(t *testing.T) {
	fs := afero.NewOsFs()
	path := filepath.Join(t.TempDir(), "existing-file")

	if err := os.WriteFile(path, []byte("original content\n"), 0o600); err != nil {
		t.Fatalf("creating original file: %v", err)
	}

	newContent := []byte("new content\n")
	if err := AtomicWriteFile(fs, path, newContent, 0o600); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(got) != string(newContent) {
		t.Errorf("content = %q, want %q", got, newContent)
	}
}

func TestAtomicWriteFile_ReadOnlyFs(t *testing.T) {
	base := afero.NewMemMapFs()
	if err := base.MkdirAll("/ro", 0o755); err != nil {
		t.Fatal(err)
	}
	fs := afero.NewReadOnlyFs(base)

	if err := AtomicWriteFile(fs, "/ro/file.txt", []byte("data"), 0o644); err == nil {
		t.Fatal("AtomicWriteFile() expected error on read-only filesystem")
	}
	if exists, _ := afero.Exists(base, "/ro/file.txt"); exists {
		t.Error("target should not exist after failed write")
	}
}

func TestAtomicWriteFile_NoTempFileLeft(t *testing.T) {
	fs := afero.NewOsFs()
	dir := t.TempDir()

	if err := AtomicWriteFile(fs, filepath.Join(dir, "file.txt"), []byte("data"), 0o600); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}
	_ = AtomicWriteFile(fs, filepath.Join(dir, "missing", "file.txt"), []byte("data"), 0o600)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading directory: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".themesnap-atomic-") {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestAtomicWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantJSON string
		wantErr  bool
	}{
		{
			name:     "simple struct",
			value:    struct{ Name string }{Name: "test"},
			wantJSON: "{\n  \"Name\": \"test\"\n}\n",
		},
		{
			name:     "map",
			value:    map[string]int{"count": 42},
			wantJSON: "{\n  \"count\": 42\n}\n",
		},
		{
			name:     "slice",
			value:    []string{"a", "b", "c"},
			wantJSON: "[\n  \"a\",\n  \"b\",\n  \"c\"\n]\n",
		},
		{
			name:    "unmarshalable channel",
			value:   make(chan int),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			path := "/out/test.json"
			if err := fs.MkdirAll("/out", 0o755); err != nil {
				t.Fatal(err)
			}

			err := AtomicWriteJSON(fs, path, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AtomicWriteJSON() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if exists, _ := afero.Exists(fs, path); exists {
					t.Error("file should not exist after marshal error")
				}
				return
			}

			got, err := afero.ReadFile(fs, path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != tt.wantJSON {
				t.Errorf("content = %q, want %q", got, tt.wantJSON)
			}

			info, err := fs.Stat(path)
			if err != nil {
				t.Fatalf("stating file: %v", err)
			}
			if gotPerm := info.Mode().Perm(); gotPerm != 0o644 {
				t.Errorf("permissions = %o, want 0644", gotPerm)
			}
		})
	}
}

func TestAtomicWriteYAML(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantYAML string
		wantErr  bool
	}{
		{
			name:     "simple struct",
			value:    struct{ Name string }{Name: "test"},
			wantYAML: "name: test\n",
		},
		{
			name:     "slice",
			value:    []string{"a", "b", "c"},
			wantYAML: "- a\n- b\n- c\n",
		},
		{
			name:    "unmarshalable func",
			value:   func() {},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			path := "/out/test.yaml"
			if err := fs.MkdirAll("/out", 0o755); err != nil {
				t.Fatal(err)
			}

			err := AtomicWriteYAML(fs, path, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AtomicWriteYAML() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if exists, _ := afero.Exists(fs, path); exists {
					t.Error("file should not exist after marshal error")
				}
				return
			}

			got, err := afero.ReadFile(fs, path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != tt.wantYAML {
				t.Errorf("content = %q, want %q", got, tt.wantYAML)
			}
		})
	}
}

func TestMarshalJSON_TrailingNewline(t *testing.T) {
	data, err := MarshalJSON("simple")
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		t.Error("JSON output should have trailing newline")
	}
}
