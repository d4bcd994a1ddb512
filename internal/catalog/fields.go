package catalog

import (
	"strconv"
	"strings"

	"github.com/phenrril/hosteleria/internal/csvparse"
	"github.com/phenrril/hosteleria/internal/textfix"
)

// Field es un campo lógico de la exportación, independiente de cómo se llame la columna.
type Field string

const (
	FieldID                 Field = "id"
	FieldName               Field = "name"
	FieldOptionName         Field = "optionName"
	FieldSKU                Field = "sku"
	FieldDescription        Field = "description"
	FieldShortDescription   Field = "shortDescription"
	FieldCategories         Field = "categories"
	FieldImages             Field = "images"
	FieldTags               Field = "tags"
	FieldPrice              Field = "price"
	FieldCost               Field = "cost"
	FieldTax                Field = "tax"
	FieldStock              Field = "stock"
	FieldWeight             Field = "weight"
	FieldDiscountType       Field = "discountType"
	FieldDiscountValue      Field = "discountValue"
	FieldVariantName        Field = "variantName"
	FieldBrand              Field = "brand"
	FieldStatus             Field = "status"
	FieldFeatured           Field = "featured"
	FieldSecondHand         Field = "secondHand"
	FieldMarketingLabel     Field = "marketingLabel"
	FieldMarketingLabelDate Field = "marketingLabelDate"
	FieldPersonalizations   Field = "personalizations"
)

// HeaderMapV1 es la versión 1 de la tabla encabezado -> campo. Incluye las
// variantes mal decodificadas que aparecen en exportaciones reales.
var HeaderMapV1 = map[Field][]string{
	FieldID:                 {"ID"},
	FieldName:               {"Nombre", "Name"},
	FieldOptionName:         {"Nombre opción", "Nombre opci¢n", "Opción", "Opci¢n"},
	FieldSKU:                {"SKU", "Referencia", "Código", "C¢digo"},
	FieldDescription:        {"Descripción", "Descripci¢n"},
	FieldShortDescription:   {"Descripción Corta", "Descripci¢n Corta"},
	FieldCategories:         {"Categorías", "Categor¡as"},
	FieldImages:             {"Imágenes", "Im genes", "Imagenes"},
	FieldTags:               {"Tags", "Etiquetas"},
	FieldPrice:              {"Precio"},
	FieldCost:               {"Coste"},
	FieldTax:                {"Impuesto"},
	FieldStock:              {"Stock"},
	FieldWeight:             {"Peso"},
	FieldDiscountType:       {"Tipo Descuento"},
	FieldDiscountValue:      {"Valor Descuento"},
	FieldVariantName:        {"Nombre variante"},
	FieldBrand:              {"Marca"},
	FieldStatus:             {"Estado"},
	FieldFeatured:           {"En Portada"},
	FieldSecondHand:         {"Segunda mano"},
	FieldMarketingLabel:     {"Rótulo de Marketing", "R¢tulo de Marketing"},
	FieldMarketingLabelDate: {"Fecha Etiq. Mark."},
	FieldPersonalizations:   {"Personalizaciones"},
}

// RequiredFields sin los cuales no se pueden distinguir filas de producto y de opción.
var RequiredFields = []Field{FieldID, FieldName, FieldOptionName}

// Columns es el índice campo -> posición, resuelto una sola vez por archivo.
type Columns struct {
	headers []string
	index   map[Field]int
}

func headerKey(h string) string {
	return strings.ToLower(textfix.CleanField(h))
}

// ResolveColumns mapea los encabezados contra HeaderMapV1 y devuelve los
// campos obligatorios que faltan. Si un encabezado aparece repetido gana el primero.
func ResolveColumns(headers []string) (Columns, []Field) {
	pos := make(map[string]int, len(headers))
	for i, h := range headers {
		k := headerKey(h)
		if k == "" {
			continue
		}
		if _, ok := pos[k]; !ok {
			pos[k] = i
		}
	}

	cols := Columns{headers: headers, index: make(map[Field]int, len(HeaderMapV1))}
	for f, aliases := range HeaderMapV1 {
		for _, a := range aliases {
			if i, ok := pos[headerKey(a)]; ok {
				cols.index[f] = i
				break
			}
		}
	}

	var missing []Field
	for _, f := range RequiredFields {
		if !cols.Has(f) {
			missing = append(missing, f)
		}
	}
	return cols, missing
}

func (c Columns) Has(f Field) bool {
	_, ok := c.index[f]
	return ok
}

// Get devuelve el valor limpio del campo, "" si la columna no existe o la fila es corta.
func (c Columns) Get(row csvparse.Row, f Field) string {
	i, ok := c.index[f]
	if !ok {
		return ""
	}
	return textfix.CleanField(row.Field(i))
}

// Snapshot arma un mapa encabezado -> valor con los campos no vacíos de la fila.
func (c Columns) Snapshot(row csvparse.Row) map[string]string {
	out := map[string]string{}
	for i, v := range row.Fields {
		v = textfix.CleanField(v)
		if v == "" {
			continue
		}
		key := ""
		if i < len(c.headers) {
			key = c.headers[i]
		}
		if key == "" {
			key = "col" + strconv.Itoa(i+1)
		}
		out[key] = v
	}
	return out
}
