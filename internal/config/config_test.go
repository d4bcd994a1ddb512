package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/hosteleria/internal/legacy"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "lib/data/products.json", cfg.Catalog.Products)
	assert.Equal(t, "out/redirects.json", cfg.Redirects.Out)
	assert.Equal(t, 5, cfg.Images.Workers)
	assert.Equal(t, 10*time.Second, cfg.Images.Timeout)
	assert.Equal(t, legacy.DefaultPolicy(), cfg.Legacy.Policy())
	assert.Equal(t, legacy.DefaultRules(), cfg.Legacy.Rules)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
legacy:
  no_rule: slug_tokens
  zero_match: empty
  rules:
    "900":
      title: Cubertería
      include: [tenedor, cuchillo]
images:
  workers: 8
  timeout: 3s
`)
	t.Setenv("IMAGES_WORKERS", "2")
	t.Setenv("DB_DSN", "postgres://localhost/hosteleria")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Images.Workers)
	assert.Equal(t, 3*time.Second, cfg.Images.Timeout)
	assert.Equal(t, "postgres://localhost/hosteleria", cfg.Catalog.DBDSN)
	assert.Equal(t, legacy.Policy{NoRule: legacy.NoRuleSlugTokens, ZeroMatch: legacy.ZeroMatchEmpty}, cfg.Legacy.Policy())
	require.Len(t, cfg.Legacy.Rules, 1)
	assert.Equal(t, "Cubertería", cfg.Legacy.Rules["900"].Title)
	assert.Equal(t, []string{"tenedor", "cuchillo"}, cfg.Legacy.Rules["900"].Include)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"policy", "legacy:\n  zero_match: nada\n", "zero_match"},
		{"workers", "images:\n  workers: 0\n", "workers"},
		{"rule without title", "legacy:\n  rules:\n    \"1\":\n      include: [copa]\n", "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
