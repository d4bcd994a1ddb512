package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/hosteleria/internal/domain"
)

func loadedCatalog(t *testing.T) *CatalogUC {
	t.Helper()
	uc := NewCatalogUC(&memRepo{products: testProducts()})
	require.NoError(t, uc.Load(context.Background()))
	return uc
}

func TestCatalogUC_EmptyBeforeLoad(t *testing.T) {
	uc := NewCatalogUC(&memRepo{})
	list, total, err := uc.List(context.Background(), domain.ProductFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestCatalogUC_LoadError(t *testing.T) {
	uc := NewCatalogUC(&memRepo{err: domain.ErrNotFound})
	err := uc.Load(context.Background())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Zero(t, uc.Catalog().Len())
}

func TestCatalogUC_List(t *testing.T) {
	uc := loadedCatalog(t)
	ctx := context.Background()
	yes := true

	tests := []struct {
		name      string
		filter    domain.ProductFilter
		wantIDs   []string
		wantTotal int64
	}{
		{"all", domain.ProductFilter{}, []string{"1", "2", "3", "4"}, 4},
		{"query", domain.ProductFilter{Query: "copa"}, []string{"1", "4"}, 2},
		{"category ignores accents", domain.ProductFilter{Category: "cristaleria"}, []string{"1", "4"}, 2},
		{"featured", domain.ProductFilter{Featured: &yes}, []string{"1"}, 1},
		{"page 2", domain.ProductFilter{Page: 2, PageSize: 3}, []string{"4"}, 4},
		{"past the end", domain.ProductFilter{Page: 5, PageSize: 3}, []string{}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, total, err := uc.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			got := []string{}
			for _, p := range list {
				got = append(got, p.ID)
			}
			assert.Equal(t, tt.wantIDs, got)
		})
	}
}

func TestCatalogUC_GetByID(t *testing.T) {
	uc := loadedCatalog(t)
	p, err := uc.GetByID(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Servilleta airlaid", p.Name)

	_, err = uc.GetByID(context.Background(), "99")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.GetByID(context.Background(), "")
	assert.Error(t, err)
}

func TestCatalogUC_Categories(t *testing.T) {
	cats, err := loadedCatalog(t).Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Cristalería", "Copas", "Servilletas", "Vajilla"}, cats)
}
