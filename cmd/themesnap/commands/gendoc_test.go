package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePrepender(t *testing.T) {
	got := filePrepender("/tmp/docs/themesnap_config_set.md")
	assert.Contains(t, got, `title: "themesnap config set"`)
	assert.Contains(t, got, `description: "Reference for themesnap config set"`)
}

func TestLinkHandler(t *testing.T) {
	assert.Equal(t, "/docs/reference/themesnap_create/", linkHandler("themesnap_create.md"))
}

func TestGenDoc(t *testing.T) {
	env := newTestEnv(t)
	dir := filepath.Join(t.TempDir(), "docs")

	require.NoError(t, env.run(t, "gen-doc", "--dir", dir))

	data, err := os.ReadFile(filepath.Join(dir, "themesnap_create.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `title: "themesnap create"`)

	_, err = os.Stat(filepath.Join(dir, "themesnap_gen-doc.md"))
	assert.True(t, os.IsNotExist(err), "hidden commands are not documented")
}
