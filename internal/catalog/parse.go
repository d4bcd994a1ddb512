package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/phenrril/hosteleria/internal/domain"
)

var (
	numberNoise      = strings.NewReplacer("€", "", "$", "", "EUR", "", "eur", "", "%", "", " ", "", "\u00a0", "")
	personalizeParts = regexp.MustCompile(`\[(.*?)\]`)
)

// ParseNumber acepta "." o "," como separador decimal ("10,00", "1.234,56",
// "1,234.56"). Vacío es 0 y válido; lo que no se pueda leer es 0 y ok=false.
func ParseNumber(raw string) (float64, bool) {
	s := numberNoise.Replace(strings.TrimSpace(raw))
	if s == "" {
		return 0, true
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		// el último separador es el decimal, el otro agrupa miles
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseBool interpreta las banderas de la exportación ("1", "si", "x", ...).
func ParseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "si", "sí", "true", "x":
		return true
	}
	return false
}

// ParseCategories separa rutas con "|" y segmentos con ">". Devuelve también
// el conjunto plano de nodos en orden de aparición.
func ParseCategories(raw string) ([][]string, []string) {
	paths := [][]string{}
	flat := []string{}
	if strings.TrimSpace(raw) == "" {
		return paths, flat
	}
	seen := map[string]struct{}{}
	for _, p := range strings.Split(raw, "|") {
		var path []string
		for _, seg := range strings.Split(p, ">") {
			seg = strings.TrimSpace(seg)
			if seg == "" {
				continue
			}
			path = append(path, seg)
			if _, ok := seen[seg]; !ok {
				seen[seg] = struct{}{}
				flat = append(flat, seg)
			}
		}
		if len(path) > 0 {
			paths = append(paths, path)
		}
	}
	return paths, flat
}

// SplitImages separa la lista de imágenes por "|" o ",".
func SplitImages(raw string) []string {
	return splitNonEmpty(raw, func(r rune) bool { return r == '|' || r == ',' })
}

// SplitTags usa "|" si aparece en el valor, si no ",".
func SplitTags(raw string) []string {
	sep := ','
	if strings.ContainsRune(raw, '|') {
		sep = '|'
	}
	return splitNonEmpty(raw, func(r rune) bool { return r == sep })
}

func splitNonEmpty(raw string, sep func(rune) bool) []string {
	out := []string{}
	for _, part := range strings.FieldsFunc(raw, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParsePersonalizations lee el formato del CMS anterior:
// [Etiqueta][Ayuda][Precio][Obligatorio][Tipo]|[...]
func ParsePersonalizations(raw string) []domain.Personalization {
	out := []domain.Personalization{}
	for _, chunk := range strings.Split(raw, "|") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		matches := personalizeParts.FindAllStringSubmatch(chunk, -1)
		if len(matches) == 0 {
			continue
		}
		parts := make([]string, 5)
		for i, m := range matches {
			if i >= len(parts) {
				break
			}
			parts[i] = strings.TrimSpace(m[1])
		}

		label := parts[0]
		if label == "" {
			label = "Personalización"
		}
		out = append(out, domain.Personalization{
			Label:    label,
			Help:     parts[1],
			Required: ParseBool(parts[3]),
			Kind:     personalizationKind(parts[4]),
		})
	}
	return out
}

func personalizationKind(code string) domain.PersonalizationKind {
	switch code {
	case "1":
		return domain.PersonalizationText
	case "5":
		return domain.PersonalizationCheckbox
	case "6":
		return domain.PersonalizationFile
	default:
		return domain.PersonalizationTextarea
	}
}
