package legacy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/hosteleria/internal/domain"
)

func redirectCatalog() *domain.Catalog {
	return domain.NewCatalog([]domain.Product{
		{ID: "8222301", Name: "Copa Aurora", Slug: "copa-aurora-8222301"},
		{ID: "10446447", Name: "Servilleta airlaid", Slug: "servilleta-airlaid-10446447", SKU: "SRV-40"},
	})
}

func TestParseSeeds(t *testing.T) {
	text := "# comentario\n\n8222301;/viejo-producto.html\r\nSRV-40,/servilletas.html\n/a.html;/b.html\nsolo-una-columna\n;/vacio.html\n"
	seeds := ParseSeeds(text)
	require.Len(t, seeds, 3)
	assert.Equal(t, Seed{Line: 3, Key: "8222301", Target: "/viejo-producto.html"}, seeds[0])
	assert.Equal(t, Seed{Line: 4, Key: "SRV-40", Target: "/servilletas.html"}, seeds[1])
	assert.True(t, seeds[2].Explicit())
	assert.False(t, seeds[0].Explicit())
}

func TestBuildRedirects_ProductKey(t *testing.T) {
	entries, issues, err := BuildRedirects(redirectCatalog(), ParseSeeds("8222301;/viejo-producto.html\n"), false)
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.Equal(t, []domain.RedirectEntry{{Source: "/viejo-producto.html", Destination: "/p8222301-copa-aurora.html", Permanent: true}}, entries)
}

func TestBuildRedirects_Rules(t *testing.T) {
	seeds := ParseSeeds(`
SRV-40;servilletas-viejas.html
/a.html;/b.html
/a.html;/b.html
/loop.html;/loop.html
8222301;/p8222301-copa-aurora.html
/c412080-cristaleria.html;/c1.html
8222301;/c412080-otra.html
/x.html;/y.html
`)
	entries, issues, err := BuildRedirects(redirectCatalog(), seeds, false)
	require.NoError(t, err)

	assert.Equal(t, []domain.RedirectEntry{
		{Source: "/servilletas-viejas.html", Destination: "/p10446447-servilleta-airlaid.html", Permanent: true},
		{Source: "/a.html", Destination: "/b.html", Permanent: true},
		{Source: "/x.html", Destination: "/y.html", Permanent: true},
	}, entries)

	require.Len(t, issues, 3)
	for _, is := range issues {
		assert.Equal(t, domain.IssueLegacySource, is.Kind)
	}
	for _, e := range entries {
		assert.False(t, IsLegacyPath(e.Source), e.Source)
		assert.True(t, e.Permanent)
	}
}

func TestBuildRedirects_UnknownKey(t *testing.T) {
	seeds := ParseSeeds("999;/no-existe.html\n8222301;/viejo.html\n")

	entries, issues, err := BuildRedirects(redirectCatalog(), seeds, false)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueUnknownKey, issues[0].Kind)
	assert.Equal(t, 1, issues[0].Line)

	_, _, err = BuildRedirects(redirectCatalog(), seeds, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStrict))
}

func TestBuildRedirects_LegacySourceDroppedBeforeLookup(t *testing.T) {
	seeds := ParseSeeds("999;/p999-copa.html\n8222301;/viejo.html\n")

	entries, issues, err := BuildRedirects(redirectCatalog(), seeds, true)
	require.NoError(t, err)
	assert.Equal(t, []domain.RedirectEntry{{Source: "/viejo.html", Destination: "/p8222301-copa-aurora.html", Permanent: true}}, entries)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueLegacySource, issues[0].Kind)
	assert.Equal(t, 1, issues[0].Line)
}

func TestBuildRedirects_EmptySeeds(t *testing.T) {
	entries, issues, err := BuildRedirects(redirectCatalog(), nil, true)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.Empty(t, issues)
}

func TestRedirectTable(t *testing.T) {
	table := NewRedirectTable([]domain.RedirectEntry{
		{Source: "/a.html", Destination: "/b.html"},
		{Source: "/a.html", Destination: "/c.html"},
		{Source: "/p1-copa.html", Destination: "/x.html"},
	})
	dst, ok := table.Lookup("/a.html")
	assert.True(t, ok)
	assert.Equal(t, "/b.html", dst)
	_, ok = table.Lookup("/p1-copa.html")
	assert.False(t, ok)
}

func TestSampleSeedFileParses(t *testing.T) {
	seeds := ParseSeeds(SampleSeedFile)
	require.Len(t, seeds, 2)
	entries, _, err := BuildRedirects(redirectCatalog(), seeds, true)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
