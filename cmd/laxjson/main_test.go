package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOverwriteRejectsStdin(t *testing.T) {
	cfg := NewConfig()
	cfg.Overwrite = true

	err := run(cfg, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "standard input")
}

func TestRunOverwriteWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.json")
	require.NoError(t, os.WriteFile(path, []byte("{name: 'John'}"), 0o644))

	cfg := NewConfig()
	cfg.Overwrite = true

	require.NoError(t, run(cfg, path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"name": "John"}`, string(got))
}

func TestRepairUsesStreamWhenWindowSizeSet(t *testing.T) {
	cfg := NewConfig()
	cfg.WindowSize = 64

	out, err := repair(cfg, "{name: 'John'}")
	require.NoError(t, err)
	assert.Equal(t, `{"name": "John"}`, out)
}
