package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every file shipped under templates/ must import cleanly.
func TestBundledTemplates(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(bundledTemplatesDir(t), "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no bundled templates")

	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			schema, err := LoadSchema(path)
			require.NoError(t, err)
			assert.Empty(t, ValidateSchema(schema))
			require.NotEmpty(t, schema.Tasks)

			bySubject := schema.TaskBySubject()
			roots := 0
			for _, task := range schema.Tasks {
				if task.Previous == "" {
					roots++
					continue
				}
				_, ok := bySubject[task.Previous]
				assert.True(t, ok, "%q waits on unknown task %q", task.Subject, task.Previous)
			}
			assert.GreaterOrEqual(t, roots, 1, "no task is visible on creation")
			assert.Equal(t, "", schema.Tasks[0].Previous, "first task should start the chain")
		})
	}
}

func bundledTemplatesDir(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)

	for dir := wd; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, "templates")
		if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
			return candidate
		}
		if filepath.Dir(dir) == dir {
			t.Fatalf("templates directory not found above %s", wd)
		}
	}
}
