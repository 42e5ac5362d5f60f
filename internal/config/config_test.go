package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAbsentFileReturnsDefaults(t *testing.T) {
	cfg, path, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	content := `severityThreshold: medium
rules:
  - SOL-REENTRANCY
  - SOL-TX-ORIGIN
ignore:
  - rule: SOL-TIMESTAMP
    path: vendor/
    reason: third-party code
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, path, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)
	assert.Equal(t, "medium", cfg.SeverityThreshold)
	assert.Equal(t, []string{"SOL-REENTRANCY", "SOL-TX-ORIGIN"}, cfg.Rules)
	require.Len(t, cfg.Ignore, 1)
	assert.Equal(t, "SOL-TIMESTAMP", cfg.Ignore[0].Rule)
	assert.Equal(t, "vendor/", cfg.Ignore[0].Path)
}

func TestLoadSearchesUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "contracts", "core")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("severityThreshold: high\n"), 0o644))

	cfg, path, err := Load(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, FileName), path)
	assert.Equal(t, "high", cfg.SeverityThreshold)
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(":\n\t- broken"), 0o644))

	_, path, err := Load(dir)
	assert.Error(t, err)
	assert.NotEmpty(t, path)
}
