package editor

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func launcher(env map[string]string, installed ...string) *Launcher {
	return &Launcher{
		Lookup: func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		},
		LookPath: func(file string) (string, error) {
			for _, name := range installed {
				if name == file {
					return "/usr/bin/" + file, nil
				}
			}
			return "", exec.ErrNotFound
		},
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		installed []string
		want      []string
	}{
		{"editor wins", map[string]string{"EDITOR": "nvim", "VISUAL": "code"}, nil, []string{"nvim"}},
		{"visual fallback", map[string]string{"VISUAL": "code"}, nil, []string{"code"}},
		{"empty editor treated as unset", map[string]string{"EDITOR": "  ", "VISUAL": "vscode"}, nil, []string{"vscode"}},
		{"editor with arguments", map[string]string{"EDITOR": "code --wait"}, nil, []string{"code", "--wait"}},
		{"nano installed", nil, []string{"nano"}, []string{"nano"}},
		{"vi last resort", nil, nil, []string{"vi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, launcher(tt.env, tt.installed...).Detect())
		})
	}
}

func TestCommand_AppendsPath(t *testing.T) {
	l := launcher(map[string]string{"EDITOR": "code --wait"})
	cmd := l.Command(context.Background(), "/home/alice/.config/themesnap/config.yaml")
	assert.Equal(t, []string{"code", "--wait", "/home/alice/.config/themesnap/config.yaml"}, cmd.Args)
}

func TestOpen_Integration(t *testing.T) {
	tmpDir := t.TempDir()
	mockEditor := filepath.Join(tmpDir, "mock-editor.sh")
	outputFile := filepath.Join(tmpDir, "output.txt")

	// The mock editor writes its arguments to a file.
	script := "#!/bin/sh\necho \"$@\" > " + outputFile + "\n"
	require.NoError(t, os.WriteFile(mockEditor, []byte(script), 0o755))

	targetFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(targetFile, []byte("version: 1\n"), 0o644))

	l := launcher(map[string]string{"EDITOR": mockEditor})
	require.NoError(t, l.Open(context.Background(), targetFile))

	got, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(got), targetFile), "mock editor output = %q", got)
}

func TestOpen_MissingEditor(t *testing.T) {
	l := launcher(map[string]string{"EDITOR": "non-existent-binary-12345"})
	err := l.Open(context.Background(), "config.yaml")
	assert.Error(t, err)
}
