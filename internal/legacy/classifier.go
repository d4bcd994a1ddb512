package legacy

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/phenrril/hosteleria/internal/domain"
)

// NoRulePolicy decide qué pasa con un id de categoría sin regla.
type NoRulePolicy string

const (
	NoRuleNotFound   NoRulePolicy = "not_found"
	NoRuleSlugTokens NoRulePolicy = "slug_tokens"
)

// ZeroMatchPolicy es el último paso de la cascada cuando nada coincide.
type ZeroMatchPolicy string

const (
	ZeroMatchFullCatalog ZeroMatchPolicy = "full_catalog"
	ZeroMatchEmpty       ZeroMatchPolicy = "empty"
)

type Policy struct {
	NoRule    NoRulePolicy
	ZeroMatch ZeroMatchPolicy
}

func DefaultPolicy() Policy {
	return Policy{NoRule: NoRuleNotFound, ZeroMatch: ZeroMatchFullCatalog}
}

// Stage indica qué paso de la clasificación produjo el resultado.
type Stage string

const (
	StageNone        Stage = "none"
	StageAll         Stage = "all"
	StagePrimary     Stage = "primary"
	StageFallback    Stage = "fallback"
	StageFullCatalog Stage = "full_catalog"
	StageEmpty       Stage = "empty"
	StageSlugTokens  Stage = "slug_tokens"
)

type Classification struct {
	Title    string           `json:"title"`
	Products []domain.Product `json:"products"`
	Stage    Stage            `json:"stage"`
	// Found es false solo cuando no hay regla y la política es NoRuleNotFound.
	Found bool `json:"-"`
}

type compiledRule struct {
	rule     domain.LegacyMenuRule
	include  []string
	exclude  []string
	fallback []string
}

// Classifier es inmutable después de NewClassifier; se puede usar desde varios goroutines.
type Classifier struct {
	rules  map[string]compiledRule
	policy Policy
}

func NewClassifier(rules map[string]domain.LegacyMenuRule, policy Policy) *Classifier {
	if policy.NoRule == "" {
		policy.NoRule = NoRuleNotFound
	}
	if policy.ZeroMatch == "" {
		policy.ZeroMatch = ZeroMatchFullCatalog
	}
	c := &Classifier{rules: make(map[string]compiledRule, len(rules)), policy: policy}
	for id, r := range rules {
		c.rules[id] = compiledRule{
			rule:     r,
			include:  keywords(r.Include),
			exclude:  keywords(r.Exclude),
			fallback: keywords(r.Fallback),
		}
	}
	return c
}

func (c *Classifier) Policy() Policy { return c.policy }

// Rule devuelve la regla configurada para un id legacy.
func (c *Classifier) Rule(id string) (domain.LegacyMenuRule, bool) {
	r, ok := c.rules[id]
	return r.rule, ok
}

// RuleIDs lista los ids con regla, útil para el sitemap.
func (c *Classifier) RuleIDs() []string {
	ids := make([]string, 0, len(c.rules))
	for id := range c.rules {
		ids = append(ids, id)
	}
	return ids
}

// Index precalcula el texto de búsqueda de cada producto de una foto del catálogo.
type Index struct {
	products []domain.Product
	text     []string
}

func NewIndex(products []domain.Product) *Index {
	idx := &Index{products: products, text: make([]string, len(products))}
	for i := range products {
		idx.text[i] = SearchText(&products[i])
	}
	return idx
}

func (idx *Index) Products() []domain.Product { return idx.products }

func (idx *Index) filter(match func(text string) bool) []domain.Product {
	out := []domain.Product{}
	for i, t := range idx.text {
		if match(t) {
			out = append(out, idx.products[i])
		}
	}
	return out
}

// Classify evalúa la regla del id sobre los productos dados.
func (c *Classifier) Classify(id, slug string, products []domain.Product) Classification {
	return c.ClassifyIndex(id, slug, NewIndex(products))
}

// ClassifyIndex es Classify sobre un índice ya construido.
func (c *Classifier) ClassifyIndex(id, slug string, idx *Index) Classification {
	cr, ok := c.rules[id]
	if !ok {
		if c.policy.NoRule == NoRuleSlugTokens {
			return c.bySlug(slug, idx)
		}
		return Classification{Stage: StageNone, Found: false}
	}

	title := cr.rule.Title
	if cr.rule.MatchesAll() {
		return Classification{Title: title, Products: idx.products, Stage: StageAll, Found: true}
	}

	primary := idx.filter(func(t string) bool {
		if len(cr.include) > 0 && !containsAny(t, cr.include) {
			return false
		}
		return !containsAny(t, cr.exclude)
	})
	if len(primary) > 0 {
		return Classification{Title: title, Products: primary, Stage: StagePrimary, Found: true}
	}

	if len(cr.fallback) > 0 {
		loose := idx.filter(func(t string) bool { return containsAny(t, cr.fallback) })
		if len(loose) > 0 {
			return Classification{Title: title, Products: loose, Stage: StageFallback, Found: true}
		}
	}

	if c.policy.ZeroMatch == ZeroMatchEmpty {
		return Classification{Title: title, Products: []domain.Product{}, Stage: StageEmpty, Found: true}
	}
	return Classification{Title: title, Products: idx.products, Stage: StageFullCatalog, Found: true}
}

var catalogWords = []string{"productos", "catalogo", "catalog"}

// bySlug deriva un filtro de los tokens del slug de la URL (ids sin regla).
func (c *Classifier) bySlug(slug string, idx *Index) Classification {
	title := TitleFromSlug(slug)
	norm := Normalize(slug)
	if norm == "" || containsAny(norm, catalogWords) {
		return Classification{Title: title, Products: idx.products, Stage: StageSlugTokens, Found: true}
	}

	var tokens []string
	for _, t := range strings.Fields(norm) {
		if len(t) >= 4 {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		return Classification{Title: title, Products: idx.products, Stage: StageSlugTokens, Found: true}
	}

	matches := idx.filter(func(t string) bool { return containsAny(t, tokens) })
	if len(matches) == 0 {
		matches = idx.products
	}
	return Classification{Title: title, Products: matches, Stage: StageSlugTokens, Found: true}
}

// TitleFromSlug: "servilletas-para-hosteleria" -> "Servilletas Para Hosteleria".
func TitleFromSlug(slug string) string {
	slug = strings.TrimSuffix(strings.TrimSuffix(slug, ".html"), ".HTML")
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || unicode.IsSpace(r) })
	if len(words) == 0 {
		return "Catálogo"
	}
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Search devuelve los productos cuyo texto contiene todas las palabras de la consulta.
func (idx *Index) Search(query string) []domain.Product {
	terms := strings.Fields(Normalize(query))
	if len(terms) == 0 {
		return idx.products
	}
	return idx.filter(func(t string) bool {
		for _, term := range terms {
			if !strings.Contains(t, term) {
				return false
			}
		}
		return true
	})
}
