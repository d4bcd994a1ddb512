package domain

import (
	"time"
)

// Product es un artículo del catálogo reconstruido desde la exportación legacy.
// Los nombres JSON son el contrato con la capa de render.
type Product struct {
	ID                   string            `json:"id" gorm:"primaryKey;size:40"`
	Name                 string            `json:"name" gorm:"size:255;not null"`
	Title                string            `json:"title" gorm:"size:255"`
	Slug                 string            `json:"slug" gorm:"uniqueIndex;size:300"`
	SKU                  string            `json:"sku,omitempty" gorm:"size:120;index"`
	DescriptionHTML      string            `json:"descriptionHtml,omitempty" gorm:"type:text"`
	ShortDescriptionHTML string            `json:"shortDescriptionHtml,omitempty" gorm:"type:text"`
	ShortDescription     string            `json:"shortDescription,omitempty" gorm:"type:text"`
	CategoryPaths        [][]string        `json:"categoryPaths" gorm:"type:jsonb;serializer:json"`
	CategoriesFlat       []string          `json:"categoriesFlat" gorm:"type:jsonb;serializer:json"`
	ImagesSource         []string          `json:"imagesSource" gorm:"type:jsonb;serializer:json"`
	Image                string            `json:"image,omitempty" gorm:"size:500"`
	Price                *float64          `json:"price" gorm:"type:decimal(12,2)"`
	DisplayPrice         float64           `json:"displayPrice" gorm:"type:decimal(12,2);default:0"`
	Cost                 float64           `json:"cost,omitempty" gorm:"type:decimal(12,2);default:0"`
	Tax                  float64           `json:"tax,omitempty" gorm:"type:decimal(6,2);default:0"`
	Brand                string            `json:"brand,omitempty" gorm:"size:140"`
	Tags                 []string          `json:"tags" gorm:"type:jsonb;serializer:json"`
	Status               string            `json:"status,omitempty" gorm:"size:60"`
	Featured             bool              `json:"featured" gorm:"default:false;index"`
	SecondHand           bool              `json:"secondHand" gorm:"default:false"`
	MarketingLabel       string            `json:"marketingLabel,omitempty" gorm:"size:140"`
	MarketingLabelDate   string            `json:"marketingLabelDate,omitempty" gorm:"size:40"`
	VariantName          string            `json:"variantName,omitempty" gorm:"size:140"`
	PersonalizationsRaw  string            `json:"personalizationsRaw,omitempty" gorm:"type:text"`
	Personalizations     []Personalization `json:"personalizations,omitempty" gorm:"type:jsonb;serializer:json"`
	Options              []OptionTier      `json:"options" gorm:"type:jsonb;serializer:json"`
	SourceLine           int               `json:"sourceLine,omitempty" gorm:"type:int"`
	CreatedAt            time.Time         `json:"-"`
}

// TableName fija la tabla del catálogo importado.
func (Product) TableName() string { return "catalog_products" }

// OptionTier es una variante comprable; no tiene identidad propia fuera de su producto.
type OptionTier struct {
	Label          string  `json:"label"`
	Price          float64 `json:"price"`
	Stock          float64 `json:"stock"`
	Weight         float64 `json:"weight"`
	DiscountType   string  `json:"discountType,omitempty"`
	DiscountValue  float64 `json:"discountValue,omitempty"`
	EffectivePrice float64 `json:"effectivePrice"`
}

type PersonalizationKind string

const (
	PersonalizationText     PersonalizationKind = "text"
	PersonalizationTextarea PersonalizationKind = "textarea"
	PersonalizationFile     PersonalizationKind = "file"
	PersonalizationCheckbox PersonalizationKind = "checkbox"
)

// Personalization es un campo de personalización del CMS anterior.
type Personalization struct {
	Label    string              `json:"label"`
	Help     string              `json:"help,omitempty"`
	Required bool                `json:"required"`
	Kind     PersonalizationKind `json:"kind"`
}

// IsVariable indica si el producto tiene opciones.
func (p *Product) IsVariable() bool { return len(p.Options) > 0 }

// OwnPrice devuelve el precio de lista propio, 0 si no hay.
func (p *Product) OwnPrice() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// PriceOnRequest: cero o ausente significa "consultar", nunca "gratis".
func (p *Product) PriceOnRequest() bool { return p.DisplayPrice <= 0 }

type ProductFilter struct {
	Query    string
	Category string
	Featured *bool
	Page     int
	PageSize int
}
