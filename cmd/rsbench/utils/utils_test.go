package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTempOutput(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateTempOutput(dir)
	require.NoError(t, err)
	second, err := CreateTempOutput(dir)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, FileExists(first))
	assert.True(t, strings.HasPrefix(filepath.Base(first), "rsbench-"+RsbenchInstanceId+"-"))
}

func TestResolveArtifactPathStaysInsideDir(t *testing.T) {
	dir := t.TempDir()

	path, err := ResolveArtifactPath(dir, "../../etc/bm1.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "etc", "bm1.png"), path)
	assert.True(t, DirectoryExists(filepath.Join(dir, "etc")))
}

func TestPrepareOutFileTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, []byte("stale content"), 0o644))

	file, err := PrepareOutFile(path)
	require.NoError(t, err)
	_, err = file.WriteString("new")
	require.NoError(t, err)
	require.NoError(t, file.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}
