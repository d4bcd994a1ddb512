package textfix

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// StripMarks descompone en NFD y descarta las marcas combinantes: "Cristalería" -> "Cristaleria".
func StripMarks(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, norm.NFD.String(s))
}
