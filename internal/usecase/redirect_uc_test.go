package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/hosteleria/internal/adapters/repo/jsonfile"
	"github.com/phenrril/hosteleria/internal/domain"
	"github.com/phenrril/hosteleria/internal/legacy"
)

func redirectUC(dir string) *RedirectUC {
	return &RedirectUC{
		Products:   &memRepo{products: testProducts()},
		MapPath:    filepath.Join(dir, "data", "legacy-map.csv"),
		SamplePath: filepath.Join(dir, "data", "legacy-map.sample.csv"),
		OutPath:    filepath.Join(dir, "out", "redirects.json"),
	}
}

func readEntries(t *testing.T, path string) []domain.RedirectEntry {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []domain.RedirectEntry
	require.NoError(t, json.Unmarshal(raw, &entries))
	return entries
}

func TestRedirectUC_MissingMapWritesSample(t *testing.T) {
	dir := t.TempDir()
	uc := redirectUC(dir)

	sum, err := uc.Build(context.Background())
	require.NoError(t, err)
	assert.True(t, sum.SampleWritten)
	assert.Empty(t, readEntries(t, uc.OutPath))

	sample, err := os.ReadFile(uc.SamplePath)
	require.NoError(t, err)
	assert.Equal(t, legacy.SampleSeedFile, string(sample))

	// el ejemplo existente no se vuelve a escribir
	sum, err = uc.Build(context.Background())
	require.NoError(t, err)
	assert.False(t, sum.SampleWritten)
}

func TestRedirectUC_Build(t *testing.T) {
	dir := t.TempDir()
	uc := redirectUC(dir)
	writeFile(t, dir, "data/legacy-map.csv", "# semillas\n1;/producto/copa-vieja.html\nSRV-40;/servilletas.html\n999;/nada.html\n/p2-otra.html;/x.html\n")

	sum, err := uc.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Seeds)
	require.Len(t, sum.Issues, 2)

	want := []domain.RedirectEntry{
		{Source: "/producto/copa-vieja.html", Destination: "/p1-copa-de-vino.html", Permanent: true},
		{Source: "/servilletas.html", Destination: "/p2-servilleta-airlaid.html", Permanent: true},
	}
	assert.Equal(t, want, sum.Entries)
	assert.Equal(t, want, readEntries(t, uc.OutPath))

	table, err := LoadRedirectTable(uc.OutPath)
	require.NoError(t, err)
	dst, ok := table.Lookup("/servilletas.html")
	assert.True(t, ok)
	assert.Equal(t, "/p2-servilleta-airlaid.html", dst)
}

func TestRedirectUC_Strict(t *testing.T) {
	dir := t.TempDir()
	uc := redirectUC(dir)
	uc.Strict = true
	writeFile(t, dir, "data/legacy-map.csv", "999;/nada.html\n")

	_, err := uc.Build(context.Background())
	assert.True(t, errors.Is(err, domain.ErrStrict))
	_, statErr := os.Stat(uc.OutPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRedirectUC_MissingCatalog(t *testing.T) {
	dir := t.TempDir()
	uc := redirectUC(dir)
	uc.Products = jsonfile.NewCatalogRepo(filepath.Join(dir, "lib", "data", "products.json"))
	writeFile(t, dir, "data/legacy-map.csv", "/viejo.html;/nuevo.html\n1;/producto/copa-vieja.html\n")

	sum, err := uc.Build(context.Background())
	require.NoError(t, err)
	want := []domain.RedirectEntry{{Source: "/viejo.html", Destination: "/nuevo.html", Permanent: true}}
	assert.Equal(t, want, sum.Entries)
	assert.Equal(t, want, readEntries(t, uc.OutPath))
	require.Len(t, sum.Issues, 1)
	assert.Equal(t, domain.IssueUnknownKey, sum.Issues[0].Kind)

	uc.Strict = true
	_, err = uc.Build(context.Background())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLoadRedirectTable_Missing(t *testing.T) {
	table, err := LoadRedirectTable(filepath.Join(t.TempDir(), "redirects.json"))
	require.NoError(t, err)
	assert.Empty(t, table)
}
