package legacy

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/phenrril/hosteleria/internal/domain"
	"github.com/phenrril/hosteleria/internal/textfix"
)

var (
	legacyPattern = regexp.MustCompile(`(?i)^/?([cp])(\d+)(?:-([^?#]*))?\.html$`)
	// caracteres que PathUnescape deja iguales
	unreservedSlug = regexp.MustCompile(`^[A-Za-z0-9._~\-]+$`)
)

type Kind string

const (
	KindCategory Kind = "c"
	KindProduct  Kind = "p"
)

// LegacyRef es una URL legacy descompuesta.
type LegacyRef struct {
	Kind Kind
	ID   string
	Slug string
}

// IsLegacyPath informa si el path tiene la forma /c<ID>-<slug>.html o /p<ID>-<slug>.html.
func IsLegacyPath(path string) bool {
	return legacyPattern.MatchString(path)
}

// Decompose separa tipo, id y slug. El slug se decodifica; si el escape es
// inválido se devuelve tal cual.
func Decompose(path string) (LegacyRef, bool) {
	m := legacyPattern.FindStringSubmatch(path)
	if m == nil {
		return LegacyRef{}, false
	}
	slug := m[3]
	if dec, err := url.PathUnescape(slug); err == nil {
		slug = dec
	}
	return LegacyRef{Kind: Kind(strings.ToLower(m[1])), ID: m[2], Slug: slug}, true
}

// LegacySlugify replica el slug del sitio viejo: sin acentos, "&" como "y" y
// cualquier otro carácter no alfanumérico como guion.
func LegacySlugify(s string) string {
	s = strings.ToLower(textfix.StripMarks(s))
	s = strings.ReplaceAll(s, "&", "y")
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// LegacySlug es el slug guardado sin el sufijo -<id>; si no hay, se deriva del título.
func LegacySlug(p *domain.Product) string {
	base := strings.Trim(strings.TrimSpace(p.Slug), "/")
	base = strings.TrimSuffix(base, "-"+p.ID)
	if base != "" && base != p.ID {
		if unreservedSlug.MatchString(base) {
			return base
		}
		if s := LegacySlugify(base); s != "" {
			return s
		}
	}
	for _, s := range []string{p.Title, p.Name} {
		if slug := LegacySlugify(s); slug != "" {
			return slug
		}
	}
	return "producto"
}

func CanonicalProductPath(p *domain.Product) string {
	return "/p" + p.ID + "-" + LegacySlug(p) + ".html"
}

// CanonicalCategoryPath arma /c<id>-<slug>.html, o /c<id>.html sin slug.
func CanonicalCategoryPath(id, slug string) string {
	slug = LegacySlugify(slug)
	if slug == "" {
		return "/c" + id + ".html"
	}
	return "/c" + id + "-" + slug + ".html"
}
