package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/themesnap/internal/errors"
	"github.com/thoreinstein/themesnap/internal/host"
)

func TestDetect_Table(t *testing.T) {
	env := newTestEnv(t)
	env.withFonts(t)

	require.NoError(t, env.run(t, "detect"))

	out := env.out.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "ACTIVE")
	assert.Contains(t, out, "Font: Inter")
	assert.Contains(t, out, "gtk-themes")
	assert.Contains(t, out, "not detected")
}

func TestDetect_Paths(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run(t, "detect", "--paths"))
	assert.Contains(t, env.out.String(), testHome+"/.config/fontconfig")
}

func TestDetect_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.withFonts(t)
	env.runner.Responses[host.ToolGSettings] = host.MockResponse{}
	env.runner.Responses["gsettings get org.gnome.desktop.interface gtk-theme"] = host.MockResponse{Output: "'Nordic'\n"}

	require.NoError(t, env.run(t, "detect", "--json"))

	var got []detectedComponent
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &got))
	require.Len(t, got, 13)

	byID := map[string]detectedComponent{}
	for _, c := range got {
		byID[c.ID] = c
	}

	assert.True(t, byID["fonts"].Detected)
	assert.Equal(t, "Font: Inter", byID["fonts"].Summary)
	assert.Contains(t, byID["fonts"].Paths, testHome+"/.config/fontconfig")

	assert.True(t, byID["gtk-themes"].Detected)
	assert.Contains(t, byID["gtk-themes"].Summary, "Nordic")

	assert.False(t, byID["sddm"].Detected)
	assert.Empty(t, byID["sddm"].Summary)
}

func TestDetect_ConfiguredComponent(t *testing.T) {
	env := newTestEnv(t)
	env.writeFile(t, testHome+"/.config/conky/conky.conf", "conky.config = {}\n")

	cfgPath := t.TempDir() + "/config.yaml"
	env.writeOSFile(t, cfgPath, `version: 1
components:
  - id: conky
    name: Conky
    sources: [~/.config/conky]
    detectors:
      - kind: presence
        probes:
          - name: Conky
            path: ~/.config/conky/conky.conf
`)

	require.NoError(t, env.run(t, "detect", "--json", "--config", cfgPath))

	var got []detectedComponent
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &got))
	require.Len(t, got, 14)
	assert.Equal(t, "conky", got[13].ID)
	assert.Equal(t, "Custom", got[13].Category)
	assert.True(t, got[13].Detected)
}

func TestDetect_RejectsArgs(t *testing.T) {
	env := newTestEnv(t)

	err := env.run(t, "detect", "extra")
	require.Error(t, err)
	assert.NotEqual(t, errors.ExitSuccess, errors.ExitCode(err))
}
