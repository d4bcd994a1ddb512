// Package legacy mantiene vivo el esquema de URLs viejo: /c<ID>-<slug>.html y
// /p<ID>-<slug>.html, la clasificación por palabras clave y las redirecciones.
package legacy

import (
	"regexp"
	"strings"

	"github.com/phenrril/hosteleria/internal/catalog"
	"github.com/phenrril/hosteleria/internal/domain"
	"github.com/phenrril/hosteleria/internal/textfix"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// minKeywordLen evita falsos positivos de subcadenas triviales.
const minKeywordLen = 3

// Normalize pasa a minúsculas, quita acentos y deja solo palabras alfanuméricas
// separadas por un espacio.
func Normalize(s string) string {
	s = strings.ToLower(textfix.StripMarks(s))
	s = nonAlnum.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SearchText es el texto de búsqueda de un producto para las reglas de palabras clave.
func SearchText(p *domain.Product) string {
	parts := []string{p.Name, p.Slug, p.ShortDescription, catalog.PlainText(p.DescriptionHTML)}
	for _, path := range p.CategoryPaths {
		parts = append(parts, path...)
	}
	parts = append(parts, p.CategoriesFlat...)
	return Normalize(strings.Join(parts, " "))
}

// keywords normaliza y descarta las palabras demasiado cortas.
func keywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, k := range in {
		k = Normalize(k)
		if len(k) < minKeywordLen {
			continue
		}
		out = append(out, k)
	}
	return out
}

func containsAny(haystack string, kws []string) bool {
	for _, k := range kws {
		if strings.Contains(haystack, k) {
			return true
		}
	}
	return false
}
