package usecase

import (
	"context"

	"github.com/phenrril/hosteleria/internal/domain"
	"github.com/phenrril/hosteleria/internal/legacy"
)

// Resolution es el modelo de página que recibe la capa de render para una URL legacy.
type Resolution struct {
	Kind      legacy.Kind     `json:"kind"`
	ID        string          `json:"id"`
	Slug      string          `json:"slug"`
	Canonical string          `json:"canonical"`
	Product   *domain.Product `json:"product,omitempty"`
	Category  *CategoryPage   `json:"category,omitempty"`
}

type CategoryPage struct {
	Title    string           `json:"title"`
	Stage    legacy.Stage     `json:"stage"`
	Total    int              `json:"total"`
	Products []domain.Product `json:"products"`
}

type LegacyUC struct {
	Catalog    *CatalogUC
	Classifier *legacy.Classifier
}

// Resolve sirve la URL vieja en su lugar; nunca redirige.
func (uc *LegacyUC) Resolve(ctx context.Context, path string) (*Resolution, error) {
	ref, ok := legacy.Decompose(path)
	if !ok {
		return nil, domain.ErrNotLegacy
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Resolution{Kind: ref.Kind, ID: ref.ID, Slug: ref.Slug}
	switch ref.Kind {
	case legacy.KindProduct:
		p, err := uc.Catalog.GetByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		res.Product = p
		res.Canonical = legacy.CanonicalProductPath(p)
	default:
		cl := uc.Classifier.ClassifyIndex(ref.ID, ref.Slug, uc.Catalog.Index())
		if !cl.Found {
			return nil, domain.ErrNotFound
		}
		res.Category = &CategoryPage{Title: cl.Title, Stage: cl.Stage, Total: len(cl.Products), Products: cl.Products}
		res.Canonical = legacy.CanonicalCategoryPath(ref.ID, ref.Slug)
	}
	return res, nil
}
