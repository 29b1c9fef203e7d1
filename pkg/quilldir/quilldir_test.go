package quilldir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_PathAccessors(t *testing.T) {
	d := New("/home/u/.config/quill")

	assert.Equal(t, "/home/u/.config/quill", d.Root())
	assert.Equal(t, "/home/u/.config/quill/config.yaml", d.ConfigPath())
	assert.Equal(t, "/home/u/.config/quill/credentials", d.CredentialsPath())
}

func TestWorkspace(t *testing.T) {
	d := Workspace("/project")
	assert.Equal(t, "/project/.quill/config.yaml", d.ConfigPath())
}

func TestGlobal_UsesUserConfigDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)

	d, err := Global()
	require.NoError(t, err)

	base, err := os.UserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "quill"), d.Root())
}

func TestDir_ExistsAndEnsure(t *testing.T) {
	tmp := t.TempDir()

	d := New(filepath.Join(tmp, "nested", "quill"))
	assert.False(t, d.Exists())

	require.NoError(t, d.Ensure())
	assert.True(t, d.Exists())

	// Idempotent.
	require.NoError(t, d.Ensure())
}
