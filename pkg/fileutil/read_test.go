package fileutil

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/thoreinstein/themesnap/internal/errors"
)

func TestReadFileWithLimit(t *testing.T) {
	fs := afero.NewMemMapFs()

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"small file", 100, false},
		{"exact limit", MaxFileSize, false},
		{"too large", MaxFileSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/data/" + tt.name
			if err := afero.WriteFile(fs, path, make([]byte, tt.size), 0o644); err != nil {
				t.Fatal(err)
			}

			data, err := ReadFileWithLimit(fs, path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFileWithLimit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrFileTooLarge) {
					t.Errorf("expected ErrFileTooLarge, got %v", err)
				}
				return
			}
			if len(data) != tt.size {
				t.Errorf("read %d bytes, want %d", len(data), tt.size)
			}
		})
	}
}

func TestReadFileWithLimit_Directory(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/etc/sddm.conf.d", 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := ReadFileWithLimit(fs, "/etc/sddm.conf.d")
	if !errors.Is(err, ErrIsDirectory) {
		t.Errorf("expected ErrIsDirectory, got %v", err)
	}
}

func TestReadFileWithLimit_Missing(t *testing.T) {
	if _, err := ReadFileWithLimit(afero.NewMemMapFs(), "/nope"); err == nil {
		t.Error("expected error for missing file")
	}
}
