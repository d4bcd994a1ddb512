package catalog

import "github.com/phenrril/hosteleria/internal/domain"

// EffectivePrice: precio propio de la opción si es > 0, si no el del padre si es > 0, si no 0.
func EffectivePrice(opt domain.OptionTier, parentPrice float64) float64 {
	if opt.Price > 0 {
		return opt.Price
	}
	if parentPrice > 0 {
		return parentPrice
	}
	return 0
}

// DisplayPrice devuelve el precio propio si es > 0 o el menor precio efectivo
// positivo de las opciones. 0 significa "consultar", nunca "gratis".
func DisplayPrice(p *domain.Product) float64 {
	if own := p.OwnPrice(); own > 0 {
		return own
	}
	best := 0.0
	for _, o := range p.Options {
		if o.EffectivePrice > 0 && (best == 0 || o.EffectivePrice < best) {
			best = o.EffectivePrice
		}
	}
	return best
}

// ResolvePrices recalcula los precios efectivos de las opciones y el precio a mostrar.
func ResolvePrices(p *domain.Product) {
	parent := p.OwnPrice()
	for i := range p.Options {
		p.Options[i].EffectivePrice = EffectivePrice(p.Options[i], parent)
	}
	p.DisplayPrice = DisplayPrice(p)
}
