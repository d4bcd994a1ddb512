package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/hosteleria/internal/domain"
	"github.com/phenrril/hosteleria/internal/legacy"
)

// snapshot es inmutable; Load la reemplaza entera.
type snapshot struct {
	catalog  *domain.Catalog
	index    *legacy.Index
	loadedAt time.Time
}

type CatalogUC struct {
	Products domain.CatalogRepo
	snap     atomic.Pointer[snapshot]
}

func NewCatalogUC(repo domain.CatalogRepo) *CatalogUC {
	uc := &CatalogUC{Products: repo}
	uc.Set(domain.NewCatalog(nil))
	return uc
}

// Load lee el catálogo persistido y publica una foto nueva.
func (uc *CatalogUC) Load(ctx context.Context) error {
	cat, err := uc.Products.Load(ctx)
	if err != nil {
		return err
	}
	uc.Set(cat)
	log.Info().Int("productos", cat.Len()).Msg("catálogo cargado")
	return nil
}

func (uc *CatalogUC) Set(cat *domain.Catalog) {
	uc.snap.Store(&snapshot{catalog: cat, index: legacy.NewIndex(cat.Products()), loadedAt: time.Now()})
}

func (uc *CatalogUC) Catalog() *domain.Catalog { return uc.snap.Load().catalog }

func (uc *CatalogUC) Index() *legacy.Index { return uc.snap.Load().index }

func (uc *CatalogUC) LoadedAt() time.Time { return uc.snap.Load().loadedAt }

func (uc *CatalogUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	if f.Page <= 0 {
		f.Page = 1
	}

	var category string
	if f.Category != "" {
		category = legacy.Normalize(f.Category)
	}
	matches := []domain.Product{}
	for _, p := range uc.Index().Search(f.Query) {
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		if category != "" && !inCategory(p, category) {
			continue
		}
		matches = append(matches, p)
	}

	total := int64(len(matches))
	start := (f.Page - 1) * f.PageSize
	if start >= len(matches) {
		return []domain.Product{}, total, nil
	}
	end := min(start+f.PageSize, len(matches))
	return matches[start:end], total, nil
}

func inCategory(p domain.Product, normalized string) bool {
	for _, c := range p.CategoriesFlat {
		if legacy.Normalize(c) == normalized {
			return true
		}
	}
	return false
}

func (uc *CatalogUC) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, errors.New("id vacío")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, ok := uc.Catalog().ByID(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Categories devuelve todos los segmentos de categoría, en el orden en que aparecen.
func (uc *CatalogUC) Categories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []string{}
	seen := map[string]struct{}{}
	for _, p := range uc.Catalog().Products() {
		for _, c := range p.CategoriesFlat {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out, nil
}
