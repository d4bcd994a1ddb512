package domain

import "context"

// Catalog es una foto inmutable del catálogo tras un build completo.
// Se puede leer desde varios handlers a la vez sin locks.
type Catalog struct {
	products []Product
	byID     map[string]int
	bySKU    map[string]int
}

func NewCatalog(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[string]int, len(products)),
		bySKU:    make(map[string]int),
	}
	copy(c.products, products)
	for i, p := range c.products {
		if _, ok := c.byID[p.ID]; !ok {
			c.byID[p.ID] = i
		}
		if p.SKU != "" {
			if _, ok := c.bySKU[p.SKU]; !ok {
				c.bySKU[p.SKU] = i
			}
		}
	}
	return c
}

// Products devuelve el slice interno; los llamadores no deben modificarlo.
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	return c.products
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

func (c *Catalog) ByID(id string) (*Product, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.products[i], true
}

func (c *Catalog) BySKU(sku string) (*Product, bool) {
	if c == nil || sku == "" {
		return nil, false
	}
	i, ok := c.bySKU[sku]
	if !ok {
		return nil, false
	}
	return &c.products[i], true
}

// Lookup busca por id y después por SKU.
func (c *Catalog) Lookup(key string) (*Product, bool) {
	if p, ok := c.ByID(key); ok {
		return p, true
	}
	return c.BySKU(key)
}

// CatalogRepo carga y reemplaza catálogos completos.
type CatalogRepo interface {
	Load(ctx context.Context) (*Catalog, error)
	Replace(ctx context.Context, products []Product) error
}
