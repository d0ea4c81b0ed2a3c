package canonical

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCreatesDocument(t *testing.T) {
	root := t.TempDir()

	created, err := Ensure(root, "Instructions.md")
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(filepath.Join(root, "Instructions.md"))
	require.NoError(t, err)
	assert.Equal(t, DefaultContent(), data)
	assert.Contains(t, string(data), "# AI Agent Instructions")
}

func TestEnsureLeavesExistingDocument(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "Instructions.md")
	require.NoError(t, os.WriteFile(path, []byte("mine"), 0644))

	created, err := Ensure(root, "Instructions.md")
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
}

func TestEnsureNestedName(t *testing.T) {
	root := t.TempDir()

	created, err := Ensure(root, "docs/ai/RULES.md")
	require.NoError(t, err)
	assert.True(t, created)
	assert.FileExists(t, filepath.Join(root, "docs", "ai", "RULES.md"))
}

func TestEnsurePermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	root := t.TempDir()
	require.NoError(t, os.Chmod(root, 0555))
	t.Cleanup(func() { os.Chmod(root, 0755) })

	_, err := Ensure(root, "Instructions.md")
	assert.Error(t, err)
}

func TestExists(t *testing.T) {
	root := t.TempDir()

	ok, err := Exists(root, "Instructions.md")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(root, "Instructions.md"), nil, 0644))
	ok, err = Exists(root, "Instructions.md")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPath(t *testing.T) {
	root := t.TempDir()

	p, err := Path(root, "Instructions.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Instructions.md"), p)

	p, err = Path(root, "/abs/RULES.md")
	require.NoError(t, err)
	assert.Equal(t, "/abs/RULES.md", p)
}
