// Package catalog arma el catálogo normalizado a partir de las filas de la exportación.
package catalog

import (
	"fmt"
	"strings"

	"github.com/phenrril/hosteleria/internal/csvparse"
	"github.com/phenrril/hosteleria/internal/domain"
	"github.com/phenrril/hosteleria/internal/textfix"
)

type Stats struct {
	TotalRows     int
	HeaderRows    int
	OptionRows    int
	BlankRows     int
	MalformedRows int
}

type Result struct {
	Products       []domain.Product
	Issues         []domain.Issue
	Stats          Stats
	MissingHeaders []Field
}

// builder es el acumulador del fold. Vive solo durante una llamada a Build.
type builder struct {
	cols     Columns
	products []domain.Product
	issues   []domain.Issue
	stats    Stats
	seen     map[string]struct{}

	current *domain.Product
	discard bool
}

// Build recorre las filas en orden; el orden define qué opción pertenece a qué producto.
func Build(table csvparse.Table) Result {
	cols, missing := ResolveColumns(table.Headers)
	if len(table.Headers) == 0 {
		return Result{
			Products:       []domain.Product{},
			Issues:         []domain.Issue{{Severity: domain.SeverityError, Kind: domain.IssueMissingHeader, Message: "la exportación no tiene encabezados"}},
			MissingHeaders: RequiredFields,
		}
	}
	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = HeaderMapV1[f][0]
		}
		return Result{
			Products:       []domain.Product{},
			Issues:         []domain.Issue{{Severity: domain.SeverityError, Kind: domain.IssueMissingHeader, Message: "faltan encabezados obligatorios: " + strings.Join(names, ", ")}},
			Stats:          Stats{TotalRows: len(table.Rows)},
			MissingHeaders: missing,
		}
	}

	b := &builder{cols: cols, products: []domain.Product{}, issues: []domain.Issue{}, seen: map[string]struct{}{}}
	for _, row := range table.Rows {
		b.step(row)
	}
	b.close()
	b.stats.TotalRows = len(table.Rows)

	return Result{Products: b.products, Issues: b.issues, Stats: b.stats}
}

func (b *builder) step(row csvparse.Row) {
	switch b.cols.Classify(row) {
	case RowHeader:
		b.stats.HeaderRows++
		b.close()
		b.open(row)
	case RowOption:
		b.stats.OptionRows++
		if b.current == nil {
			b.issue(domain.SeverityError, domain.IssueOrphanOption, row,
				fmt.Sprintf("fila de opción huérfana en la línea %d, no hay producto abierto", row.Line), true)
			return
		}
		b.current.Options = append(b.current.Options, b.option(row))
	case RowBlank:
		b.stats.BlankRows++
	case RowMalformed:
		b.stats.MalformedRows++
		b.issue(domain.SeverityWarning, domain.IssueMalformedRow, row,
			fmt.Sprintf("fila no reconocida en la línea %d, se omite", row.Line), true)
	}
}

// close agrega el producto abierto al catálogo, salvo que sea un id repetido.
func (b *builder) close() {
	if b.current == nil {
		return
	}
	if !b.discard {
		ResolvePrices(b.current)
		b.products = append(b.products, *b.current)
	}
	b.current = nil
	b.discard = false
}

func (b *builder) open(row csvparse.Row) {
	c := b.cols
	id := c.Get(row, FieldID)
	name := c.Get(row, FieldName)

	paths, flat := ParseCategories(c.Get(row, FieldCategories))
	images := SplitImages(c.Get(row, FieldImages))
	desc := c.Get(row, FieldDescription)
	shortHTML := c.Get(row, FieldShortDescription)
	short := PlainText(shortHTML)
	if short == "" {
		short = PlainText(desc)
	}
	persRaw := c.Get(row, FieldPersonalizations)

	p := &domain.Product{
		ID:                   id,
		Name:                 name,
		Title:                name,
		Slug:                 ProductSlug(name, id),
		SKU:                  c.Get(row, FieldSKU),
		DescriptionHTML:      desc,
		ShortDescriptionHTML: shortHTML,
		ShortDescription:     short,
		CategoryPaths:        paths,
		CategoriesFlat:       flat,
		ImagesSource:         images,
		Price:                b.nullableNumber(row, FieldPrice),
		Cost:                 b.number(row, FieldCost),
		Tax:                  b.number(row, FieldTax),
		Brand:                c.Get(row, FieldBrand),
		Tags:                 SplitTags(c.Get(row, FieldTags)),
		Status:               c.Get(row, FieldStatus),
		Featured:             ParseBool(c.Get(row, FieldFeatured)),
		SecondHand:           ParseBool(c.Get(row, FieldSecondHand)),
		MarketingLabel:       c.Get(row, FieldMarketingLabel),
		MarketingLabelDate:   c.Get(row, FieldMarketingLabelDate),
		VariantName:          c.Get(row, FieldVariantName),
		PersonalizationsRaw:  persRaw,
		Personalizations:     ParsePersonalizations(persRaw),
		Options:              []domain.OptionTier{},
		SourceLine:           row.Line,
	}
	if len(images) > 0 {
		p.Image = images[0]
	}

	b.current = p
	if _, dup := b.seen[id]; dup {
		// sigue abierto para consumir sus opciones, pero no entra al catálogo
		b.discard = true
		b.issue(domain.SeverityWarning, domain.IssueDuplicateID, row,
			fmt.Sprintf("id %s repetido en la línea %d, se conserva la primera aparición", id, row.Line), false)
		return
	}
	b.seen[id] = struct{}{}
}

func (b *builder) option(row csvparse.Row) domain.OptionTier {
	c := b.cols
	return domain.OptionTier{
		Label:         c.Get(row, FieldOptionName),
		Price:         b.number(row, FieldPrice),
		Stock:         b.number(row, FieldStock),
		Weight:        b.number(row, FieldWeight),
		DiscountType:  c.Get(row, FieldDiscountType),
		DiscountValue: b.number(row, FieldDiscountValue),
	}
}

func (b *builder) number(row csvparse.Row, f Field) float64 {
	raw := b.cols.Get(row, f)
	v, ok := ParseNumber(raw)
	if !ok {
		b.issue(domain.SeverityWarning, domain.IssueBadNumber, row,
			fmt.Sprintf("valor no numérico en %s: %q", f, raw), false)
	}
	return v
}

// nullableNumber es nil cuando el campo está vacío o no se puede leer.
func (b *builder) nullableNumber(row csvparse.Row, f Field) *float64 {
	raw := b.cols.Get(row, f)
	if raw == "" {
		return nil
	}
	v, ok := ParseNumber(raw)
	if !ok {
		b.issue(domain.SeverityWarning, domain.IssueBadNumber, row,
			fmt.Sprintf("valor no numérico en %s: %q", f, raw), false)
		return nil
	}
	return &v
}

func (b *builder) issue(sev domain.Severity, kind domain.IssueKind, row csvparse.Row, msg string, snapshot bool) {
	is := domain.Issue{Severity: sev, Kind: kind, Line: row.Line, Message: msg}
	if snapshot {
		is.Snapshot = b.cols.Snapshot(row)
	}
	b.issues = append(b.issues, is)
}

// CheckText busca restos de mojibake en los textos visibles de cada producto.
func CheckText(products []domain.Product) []domain.Issue {
	issues := []domain.Issue{}
	for _, p := range products {
		fields := []string{p.Name, p.DescriptionHTML, p.ShortDescriptionHTML, p.MarketingLabel, p.Brand}
		fields = append(fields, p.CategoriesFlat...)
		fields = append(fields, p.Tags...)
		for _, o := range p.Options {
			fields = append(fields, o.Label)
		}
		var bad []rune
		for _, f := range fields {
			bad = append(bad, textfix.Suspicious(f)...)
		}
		if len(bad) == 0 {
			continue
		}
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Kind:     domain.IssueSuspiciousText,
			Line:     p.SourceLine,
			Message:  fmt.Sprintf("producto %s con caracteres sospechosos: %q", p.ID, string(bad)),
		})
	}
	return issues
}
