package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phenrril/hosteleria/internal/domain"
)

// memRepo guarda el último catálogo en memoria.
type memRepo struct {
	products []domain.Product
	replaced int
	err      error
}

func (m *memRepo) Load(ctx context.Context) (*domain.Catalog, error) {
	if m.err != nil {
		return nil, m.err
	}
	return domain.NewCatalog(m.products), nil
}

func (m *memRepo) Replace(ctx context.Context, products []domain.Product) error {
	if m.err != nil {
		return m.err
	}
	m.products = products
	m.replaced++
	return nil
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func fptr(v float64) *float64 { return &v }

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Copa de vino", Slug: "copa-de-vino-1", CategoriesFlat: []string{"Cristalería", "Copas"}, CategoryPaths: [][]string{{"Cristalería", "Copas"}}, Featured: true, Price: fptr(10), DisplayPrice: 10},
		{ID: "2", Name: "Servilleta airlaid", Slug: "servilleta-airlaid-2", SKU: "SRV-40", CategoriesFlat: []string{"Servilletas"}},
		{ID: "3", Name: "Plato llano", Slug: "plato-llano-3", CategoriesFlat: []string{"Vajilla"}},
		{ID: "4", Name: "Copa flauta", Slug: "copa-flauta-4", CategoriesFlat: []string{"Cristalería"}},
	}
}
