package legacy

import (
	"fmt"
	"strings"

	"github.com/phenrril/hosteleria/internal/domain"
)

// Seed es una fila del archivo semilla de redirecciones.
//
//	/viejo.html;/nuevo.html   origen y destino explícitos
//	8222301;/viejo.html       id o SKU del producto y path viejo
type Seed struct {
	Line int
	// Key es el path de origen (forma explícita) o el id/SKU del producto.
	Key    string
	Target string
}

// Explicit indica la forma origen;destino.
func (s Seed) Explicit() bool { return strings.HasPrefix(s.Key, "/") }

// SampleSeedFile documenta el formato; se escribe cuando no existe ningún archivo semilla.
const SampleSeedFile = `# key;legacyPath
# key = id de producto o SKU
# legacyPath = path viejo que debe redirigir (301) a /p<ID>-<slug>.html
# También se acepta /origen.html;/destino.html
10446447;/productos/servilleta-airlaid-pliegue-americano.html
8222301;/producto/aurora-champan-nacar.html
`

// ParseSeeds lee el archivo semilla: ignora comentarios (#) y líneas vacías;
// separa por ";" y, si no aparece, por ",".
func ParseSeeds(text string) []Seed {
	var seeds []Seed
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sep := ";"
		if !strings.Contains(line, ";") {
			sep = ","
		}
		parts := strings.SplitN(line, sep, 2)
		if len(parts) < 2 {
			continue
		}
		key, target := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if key == "" || target == "" {
			continue
		}
		seeds = append(seeds, Seed{Line: i + 1, Key: key, Target: target})
	}
	return seeds
}

// NormalizePath asegura la barra inicial. Devuelve "" para valores vacíos.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// BuildRedirects genera la tabla de redirecciones 301. Nunca redirige un path
// que ya tenga forma legacy: esos se sirven directo. En modo estricto una
// clave desconocida corta la construcción.
func BuildRedirects(cat *domain.Catalog, seeds []Seed, strict bool) ([]domain.RedirectEntry, []domain.Issue, error) {
	out := []domain.RedirectEntry{}
	issues := []domain.Issue{}
	seen := map[[2]string]struct{}{}

	warn := func(kind domain.IssueKind, s Seed, msg string) {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Kind:     kind,
			Line:     s.Line,
			Message:  msg,
			Snapshot: map[string]string{"key": s.Key, "target": s.Target},
		})
	}

	for _, s := range seeds {
		source := NormalizePath(s.Target)
		if s.Explicit() {
			source = NormalizePath(s.Key)
		}
		if source == "" {
			continue
		}
		// se descarta antes de buscar la clave: una URL legacy nunca se redirige
		if IsLegacyPath(source) {
			warn(domain.IssueLegacySource, s, fmt.Sprintf("%s ya es una URL legacy activa, no se redirige", source))
			continue
		}

		var destination string
		if s.Explicit() {
			destination = NormalizePath(s.Target)
		} else {
			p, ok := cat.Lookup(s.Key)
			if !ok {
				msg := fmt.Sprintf("la clave %s no existe en el catálogo", s.Key)
				if strict {
					return nil, issues, fmt.Errorf("%w: línea %d: %s", domain.ErrStrict, s.Line, msg)
				}
				warn(domain.IssueUnknownKey, s, msg)
				continue
			}
			destination = CanonicalProductPath(p)
		}
		if destination == "" {
			continue
		}
		if source == destination {
			continue
		}
		key := [2]string{source, destination}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, domain.RedirectEntry{Source: source, Destination: destination, Permanent: true})
	}
	return out, issues, nil
}

// RedirectTable indexa las redirecciones por origen; la primera gana.
type RedirectTable map[string]string

func NewRedirectTable(entries []domain.RedirectEntry) RedirectTable {
	t := make(RedirectTable, len(entries))
	for _, e := range entries {
		if IsLegacyPath(e.Source) {
			continue
		}
		if _, ok := t[e.Source]; !ok {
			t[e.Source] = e.Destination
		}
	}
	return t
}

func (t RedirectTable) Lookup(path string) (string, bool) {
	dst, ok := t[path]
	return dst, ok
}
