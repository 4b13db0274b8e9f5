package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/groundsdev/grounds/internal/projectconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand_Defaults(t *testing.T) {
	target := filepath.Join(t.TempDir(), "project")

	out, err := runCLI(t, "", "init", target, "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+filepath.Join(target, projectconfig.FileName))

	cfg, err := projectconfig.LoadFile(filepath.Join(target, projectconfig.FileName))
	require.NoError(t, err)
	assert.Equal(t, projectconfig.DefaultWorkers, cfg.Batch.Workers)
	assert.Len(t, cfg.Scoring.RequiredHeaders, 7)
	assert.False(t, cfg.Publish.Enabled())
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, projectconfig.FileName)
	require.NoError(t, os.WriteFile(path, []byte("batch:\n  workers: 2\n"), 0o644))

	_, err := runCLI(t, "", "init", dir, "--defaults")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runCLI(t, "", "init", dir, "--defaults", "--force")
	require.NoError(t, err)

	cfg, err := projectconfig.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, projectconfig.DefaultWorkers, cfg.Batch.Workers)
}
