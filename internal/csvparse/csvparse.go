// Package csvparse tokeniza la exportación delimitada del CMS anterior.
//
// encoding/csv no sirve acá: rechaza comillas sueltas dentro de campos sin
// comillas y no permite alternar el estado "entre comillas" a mitad de campo,
// cosa que la exportación hace.
package csvparse

import (
	"strings"

	"github.com/phenrril/hosteleria/internal/textfix"
)

type Options struct {
	Separator rune
	Quote     rune
}

// DefaultOptions es el formato de la exportación: ';' y '"'.
func DefaultOptions() Options {
	return Options{Separator: ';', Quote: '"'}
}

type Row struct {
	// Line es la línea física (1-based) donde empieza el registro.
	Line   int
	Fields []string
}

// Field devuelve "" cuando la fila es más corta que los encabezados.
func (r Row) Field(i int) string {
	if i < 0 || i >= len(r.Fields) {
		return ""
	}
	return r.Fields[i]
}

// Blank indica si todos los campos están vacíos o son espacios.
func (r Row) Blank() bool {
	for _, f := range r.Fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

type Table struct {
	Headers []string
	Rows    []Row
}

// Parse recorre el texto una sola vez con un único estado booleano (dentro de
// comillas). La primera fila son los encabezados y no se devuelve como dato.
func Parse(text string, opts Options) Table {
	if opts.Separator == 0 {
		opts.Separator = ';'
	}
	if opts.Quote == 0 {
		opts.Quote = '"'
	}
	// BOM de las planillas exportadas como UTF-8
	text = strings.TrimPrefix(text, "\ufeff")

	var (
		records   []Row
		fields    []string
		field     strings.Builder
		inQuotes  bool
		line      = 1
		startLine = 1
		dirty     bool
	)

	endRow := func() {
		fields = append(fields, field.String())
		records = append(records, Row{Line: startLine, Fields: fields})
		fields = nil
		field.Reset()
		dirty = false
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == opts.Quote:
			if inQuotes && i+1 < len(runes) && runes[i+1] == opts.Quote {
				field.WriteRune(opts.Quote)
				i++
			} else {
				inQuotes = !inQuotes
			}
			dirty = true
		case c == opts.Separator && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
			dirty = true
		case (c == '\r' || c == '\n') && !inQuotes:
			if c == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			endRow()
			line++
			startLine = line
		default:
			if c == '\n' {
				line++
			}
			field.WriteRune(c)
			dirty = true
		}
	}
	if dirty || len(fields) > 0 {
		endRow()
	}

	if len(records) == 0 {
		return Table{}
	}
	headers := make([]string, len(records[0].Fields))
	for i, h := range records[0].Fields {
		headers[i] = textfix.CleanField(h)
	}
	return Table{Headers: headers, Rows: records[1:]}
}
