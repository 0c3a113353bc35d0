package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()

	validPath := filepath.Join(dir, "valid.yaml")
	require.NoError(t, os.WriteFile(validPath, []byte(`name: Monthly close
tasks:
  - subject: Collect statements
    checklist:
      - item: Bank
        comment: All accounts
      - item: Cards
  - subject: Reconcile
    previous: Collect statements
`), 0o644))

	schema, err := LoadSchema(validPath)
	require.NoError(t, err)
	assert.Equal(t, "Monthly close", schema.Name)
	require.Len(t, schema.Tasks, 2)
	assert.Equal(t, "Collect statements", schema.Tasks[1].Previous)
	assert.Equal(t, ChecklistConfig{Item: "Bank", Comment: "All accounts"}, schema.Tasks[0].Checklist[0])
	assert.Contains(t, schema.TaskBySubject(), "Reconcile")

	invalidPath := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalidPath, []byte("name: [broken"), 0o644))

	_, err = LoadSchema(invalidPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing template")

	_, err = LoadSchema(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestParseSchema_RejectsUnknownKeys(t *testing.T) {
	_, err := ParseSchema([]byte("name: X\nsteps: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps")
}
