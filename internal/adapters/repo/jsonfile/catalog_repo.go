package jsonfile

import (
	"context"

	"github.com/phenrril/hosteleria/internal/domain"
)

// CatalogRepo guarda el catálogo completo en un único archivo (lib/data/products.json).
type CatalogRepo struct{ path string }

func NewCatalogRepo(path string) *CatalogRepo { return &CatalogRepo{path: path} }

func (r *CatalogRepo) Path() string { return r.path }

func (r *CatalogRepo) Load(ctx context.Context) (*domain.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var products []domain.Product
	if err := Read(r.path, &products); err != nil {
		return nil, err
	}
	return domain.NewCatalog(products), nil
}

// Replace reescribe el archivo entero; no hay merges incrementales.
func (r *CatalogRepo) Replace(ctx context.Context, products []domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return Write(r.path, products)
}
