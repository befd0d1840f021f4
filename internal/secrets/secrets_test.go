// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecret(t *testing.T, dir, name, value string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value), 0o600))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeSecret(t, dir, EmailKey, "ops@example.org\n")
	writeSecret(t, dir, "other-key", "  value with padding  ")
	writeSecret(t, dir, ".hidden", "ignored")
	writeSecret(t, dir, "empty", "   \n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	secrets, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		EmailKey:    "ops@example.org",
		"other-key": "value with padding",
	}, secrets)
}

func TestLoadMissingDirectory(t *testing.T) {
	secrets, err := Load(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, secrets)
}

func TestResolveEmail(t *testing.T) {
	withSecret := map[string]string{EmailKey: "ops@example.org"}

	tests := []struct {
		name       string
		configured string
		secrets    map[string]string
		want       string
	}{
		{"configured wins", "cli@example.org", withSecret, "cli@example.org"},
		{"secret wins over fallback", "", withSecret, "ops@example.org"},
		{"fallback when empty", "", map[string]string{}, "fallback@example.org"},
		{"fallback when nil", "", nil, "fallback@example.org"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveEmail(tt.configured, tt.secrets, "fallback@example.org")
			assert.Equal(t, tt.want, got)
		})
	}
}
