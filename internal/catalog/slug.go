package catalog

import (
	"regexp"
	"strings"

	"github.com/phenrril/hosteleria/internal/textfix"
)

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9_\-]+`)
	slugDashes  = regexp.MustCompile(`-{2,}`)
)

// Slugify genera la base del slug del producto: "Copa Aurora Champán" -> "copa-aurora-champan".
func Slugify(s string) string {
	s = strings.ToLower(textfix.StripMarks(s))
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ProductSlug es estable para un par nombre + id.
func ProductSlug(name, id string) string {
	base := Slugify(name)
	if base == "" {
		base = "producto"
	}
	return base + "-" + id
}
