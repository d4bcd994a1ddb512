package catalog

import "github.com/phenrril/hosteleria/internal/csvparse"

// RowKind es el tipo de fila, calculado una sola vez por Classify.
type RowKind int

const (
	RowBlank RowKind = iota
	RowHeader
	RowOption
	RowMalformed
)

func (k RowKind) String() string {
	switch k {
	case RowHeader:
		return "header"
	case RowOption:
		return "option"
	case RowBlank:
		return "blank"
	default:
		return "malformed"
	}
}

// Classify decide el tipo de fila solo por la presencia de id, nombre y nombre de opción.
func (c Columns) Classify(row csvparse.Row) RowKind {
	id := c.Get(row, FieldID)
	name := c.Get(row, FieldName)
	option := c.Get(row, FieldOptionName)

	switch {
	case id != "" && name != "":
		return RowHeader
	case id == "" && name == "" && option != "":
		return RowOption
	case row.Blank():
		return RowBlank
	default:
		return RowMalformed
	}
}
