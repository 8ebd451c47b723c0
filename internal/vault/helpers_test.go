package vault

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)

func createTestVault(t *testing.T, files map[string]string) *Vault {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(root, ".obsidian"), 0o755))
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	v, err := New(Settings{
		Path:      root,
		Blacklist: []string{"Assets/", ".obsidian/", ".git/"},
		Clock:     func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return v
}

func readFile(t *testing.T, v *Vault, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(v.Path, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}
