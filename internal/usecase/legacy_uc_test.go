package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/hosteleria/internal/domain"
	"github.com/phenrril/hosteleria/internal/legacy"
)

func legacyUC(t *testing.T, policy legacy.Policy) *LegacyUC {
	return &LegacyUC{Catalog: loadedCatalog(t), Classifier: legacy.NewClassifier(legacy.DefaultRules(), policy)}
}

func TestLegacyUC_Product(t *testing.T) {
	uc := legacyUC(t, legacy.DefaultPolicy())

	res, err := uc.Resolve(context.Background(), "/p1-cualquier-cosa.html")
	require.NoError(t, err)
	assert.Equal(t, legacy.KindProduct, res.Kind)
	require.NotNil(t, res.Product)
	assert.Equal(t, "Copa de vino", res.Product.Name)
	assert.Equal(t, "/p1-copa-de-vino.html", res.Canonical)
	assert.Nil(t, res.Category)

	_, err = uc.Resolve(context.Background(), "/p999-nada.html")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLegacyUC_Category(t *testing.T) {
	uc := legacyUC(t, legacy.DefaultPolicy())

	res, err := uc.Resolve(context.Background(), "/c412080-cristaleria.html")
	require.NoError(t, err)
	require.NotNil(t, res.Category)
	assert.Equal(t, "/c412080-cristaleria.html", res.Canonical)
	assert.Equal(t, legacy.StagePrimary, res.Category.Stage)
	assert.Equal(t, 2, res.Category.Total)

	res, err = uc.Resolve(context.Background(), "/c415714.html")
	require.NoError(t, err)
	assert.Equal(t, "Productos", res.Category.Title)
	assert.Equal(t, 4, res.Category.Total)

	_, err = uc.Resolve(context.Background(), "/c999-copas.html")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLegacyUC_CategorySlugTokens(t *testing.T) {
	uc := legacyUC(t, legacy.Policy{NoRule: legacy.NoRuleSlugTokens})
	res, err := uc.Resolve(context.Background(), "/c999-copas-de-vino.html")
	require.NoError(t, err)
	assert.Equal(t, "Copas De Vino", res.Category.Title)
	require.Len(t, res.Category.Products, 1)
	assert.Equal(t, "1", res.Category.Products[0].ID)
}

func TestLegacyUC_NotLegacy(t *testing.T) {
	uc := legacyUC(t, legacy.DefaultPolicy())
	_, err := uc.Resolve(context.Background(), "/productos/copa")
	assert.True(t, errors.Is(err, domain.ErrNotLegacy))
}
