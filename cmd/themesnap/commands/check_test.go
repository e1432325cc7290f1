package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/themesnap/internal/errors"
)

func TestCheck_AllReadable(t *testing.T) {
	env := newTestEnv(t)
	env.withFonts(t)

	require.NoError(t, env.run(t, "check", "--select", "fonts"))

	out := env.out.String()
	assert.Contains(t, out, "✓ "+testHome+"/.config/fontconfig")
	assert.Contains(t, out, testHome+"/.fonts (absent)")
	assert.Contains(t, out, "3 path(s) checked, 0 blocked")
	assert.NotContains(t, out, "chmod")
}

func TestCheck_Blocked(t *testing.T) {
	env := newTestEnv(t)
	env.withFonts(t)
	env.fs.Deny(testHome + "/.config/fontconfig")
	env.esc.tool = "doas"

	err := env.run(t, "check", "--select", "fonts")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.Contains(t, err.Error(), "1 path(s) cannot be read")

	out := env.out.String()
	assert.Contains(t, out, "✗ "+testHome+"/.config/fontconfig")
	assert.Contains(t, out, "doas chmod -R a+rX /home/alice/.config/fontconfig")
	assert.Equal(t, 0, env.esc.calls)
}

func TestCheck_DefaultsToAll(t *testing.T) {
	env := newTestEnv(t)
	env.withFonts(t)
	env.fs.Deny(testHome + "/.config/fontconfig")

	err := env.run(t, "check")
	require.Error(t, err)
	assert.Contains(t, env.out.String(), "/usr/share/themes (absent)")
}

func TestCheck_UnknownComponent(t *testing.T) {
	env := newTestEnv(t)

	err := env.run(t, "check", "--select", "wallpapers")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}
