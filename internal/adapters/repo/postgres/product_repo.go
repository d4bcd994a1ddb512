package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/phenrril/hosteleria/internal/domain"
)

const batchSize = 200

// ProductRepo guarda el catálogo importado en la tabla catalog_products.
// Cada importación reemplaza la tabla entera.
type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&domain.Product{})
}

func (r *ProductRepo) Load(ctx context.Context) (*domain.Catalog, error) {
	var list []domain.Product
	if err := r.db.WithContext(ctx).Order("source_line asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return domain.NewCatalog(list), nil
}

func (r *ProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Replace borra y vuelve a insertar dentro de una transacción: quien lee ve
// el catálogo viejo o el nuevo, nunca una mezcla.
func (r *ProductRepo) Replace(ctx context.Context, products []domain.Product) error {
	now := time.Now()
	rows := make([]domain.Product, len(products))
	copy(rows, products)
	for i := range rows {
		if rows[i].CreatedAt.IsZero() {
			rows[i].CreatedAt = now
		}
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Product{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, batchSize).Error
	})
}
