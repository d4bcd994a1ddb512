package legacy

import "github.com/phenrril/hosteleria/internal/domain"

// DefaultRules es el menú de la web anterior. Devuelve una copia nueva en cada llamada.
func DefaultRules() map[string]domain.LegacyMenuRule {
	return map[string]domain.LegacyMenuRule{
		"415714": {Title: "Productos", Mode: domain.RuleModeAll},
		"412083": {
			Title:    "Servilletas",
			Mode:     domain.RuleModeKeywords,
			Include:  []string{"servilleta", "airlaid", "tissue", "papel", "miniservice", "cocktail", "20x20", "33x33", "40x40"},
			Exclude:  []string{"copa", "vaso", "cristal", "plato", "taza", "cubierto", "tenedor", "cuchillo", "cuchara", "mantel"},
			Fallback: []string{"servilleta", "celulosa", "desechable"},
		},
		"412080": {
			Title:    "Cristalería",
			Mode:     domain.RuleModeKeywords,
			Include:  []string{"copa", "vaso", "cristal", "jarra", "botella", "champ", "vino", "gin", "whisky", "sidra", "brandy", "cognac"},
			Exclude:  []string{"servilleta", "papel", "plato", "taza", "mantel", "cubierto"},
			Fallback: []string{"cristaleria", "vidrio", "bebida"},
		},
		"412082": {
			Title:    "Vajilla",
			Mode:     domain.RuleModeKeywords,
			Include:  []string{"plato", "vajilla", "taza", "porcelana", "bol", "cuenco", "bandeja", "fuente"},
			Exclude:  []string{"copa", "vaso", "servilleta", "mantel", "cubierto"},
			Fallback: []string{"vajilla", "ceramica", "loza"},
		},
		"453874": {
			Title:    "Cubertería",
			Mode:     domain.RuleModeKeywords,
			Include:  []string{"cubierto", "tenedor", "cuchillo", "cuchara", "cuberteria"},
			Exclude:  []string{"copa", "vaso", "servilleta", "mantel", "plato", "taza"},
			Fallback: []string{"cuberteria", "acero inoxidable"},
		},
		"412081": {
			Title:    "Textil Hoteles",
			Mode:     domain.RuleModeKeywords,
			Include:  []string{"mantel", "manteleria", "textil", "hotel", "servilleta", "camino", "salvamantel"},
			Exclude:  []string{"copa", "vaso", "plato", "taza", "cubierto"},
			Fallback: []string{"textil", "algodon", "tela"},
		},
	}
}
