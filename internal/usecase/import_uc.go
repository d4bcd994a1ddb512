package usecase

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/hosteleria/internal/adapters/repo/jsonfile"
	"github.com/phenrril/hosteleria/internal/adapters/xlsx"
	"github.com/phenrril/hosteleria/internal/catalog"
	"github.com/phenrril/hosteleria/internal/csvparse"
	"github.com/phenrril/hosteleria/internal/domain"
	"github.com/phenrril/hosteleria/internal/textfix"
)

type ImportOptions struct {
	Input      string
	ReportPath string
	ErrorsPath string
	Strict     bool
}

type ImportResult struct {
	Report   domain.ImportReport
	Errors   []domain.Issue
	Products []domain.Product
	// Failures son los chequeos estrictos que no pasaron (vacío fuera de modo estricto).
	Failures []string
}

// ImportUC reconstruye el catálogo completo en cada corrida.
type ImportUC struct {
	Store domain.CatalogRepo
	// Mirrors reciben el mismo catálogo después de Store (p. ej. Postgres).
	Mirrors []domain.CatalogRepo
	Now     func() time.Time
}

func (uc *ImportUC) Run(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	raw, err := os.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("leyendo exportación: %w", err)
	}

	table, encoding, err := readTable(opts.Input, raw)
	if err != nil {
		return nil, err
	}
	log.Info().Int("filas", len(table.Rows)).Str("codificacion", encoding).Strs("encabezados", table.Headers).Msg("exportación leída")

	built := catalog.Build(table)
	issues := append(built.Issues, catalog.CheckText(built.Products)...)

	res := &ImportResult{
		Products: built.Products,
		Errors:   domain.Errors(issues),
		Report:   uc.report(opts.Input, encoding, table, built, issues),
	}
	for _, is := range issues {
		ev := log.Warn()
		if is.Severity == domain.SeverityError {
			ev = log.Error()
		}
		ev.Int("linea", is.Line).Str("tipo", string(is.Kind)).Msg(is.Message)
	}

	if opts.Strict {
		res.Failures = strictFailures(built, issues)
	}

	if err := jsonfile.Write(opts.ReportPath, res.Report); err != nil {
		return nil, err
	}
	if err := jsonfile.Write(opts.ErrorsPath, res.Errors); err != nil {
		return nil, err
	}

	// en modo estricto un build fallido no pisa el catálogo publicado
	if len(res.Failures) > 0 {
		return res, fmt.Errorf("%w: %s", domain.ErrStrict, strings.Join(res.Failures, "; "))
	}

	if err := uc.Store.Replace(ctx, built.Products); err != nil {
		return nil, fmt.Errorf("guardando catálogo: %w", err)
	}
	for _, m := range uc.Mirrors {
		if err := m.Replace(ctx, built.Products); err != nil {
			return nil, fmt.Errorf("replicando catálogo: %w", err)
		}
	}

	log.Info().
		Int("productos", res.Report.ProductsCount).
		Int("opciones", res.Report.OptionsCount).
		Int("avisos", len(res.Report.Warnings)).
		Int("errores", len(res.Errors)).
		Msg("importación terminada")
	return res, nil
}

func readTable(name string, raw []byte) (csvparse.Table, string, error) {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		t, err := xlsx.ReadTable(bytes.NewReader(raw))
		return t, string(textfix.UTF8), err
	}
	fixed := textfix.Repair(raw)
	return csvparse.Parse(fixed.Text, csvparse.DefaultOptions()), string(fixed.Encoding), nil
}

func (uc *ImportUC) report(source, encoding string, table csvparse.Table, built catalog.Result, issues []domain.Issue) domain.ImportReport {
	now := time.Now
	if uc.Now != nil {
		now = uc.Now
	}
	rep := domain.ImportReport{
		RunID:         uuid.NewString(),
		Timestamp:     now().UTC(),
		Source:        source,
		Encoding:      encoding,
		Headers:       table.Headers,
		TotalRows:     built.Stats.TotalRows,
		HeaderRows:    built.Stats.HeaderRows,
		OptionRows:    built.Stats.OptionRows,
		BlankRows:     built.Stats.BlankRows,
		ProductsCount: len(built.Products),
		Warnings:      []domain.Issue{},
	}
	if rep.Headers == nil {
		rep.Headers = []string{}
	}
	for _, p := range built.Products {
		rep.OptionsCount += len(p.Options)
		if len(p.ImagesSource) == 0 {
			rep.MissingImagesCount++
		}
		if p.OwnPrice() <= 0 {
			rep.MissingPriceCount++
		}
	}
	for _, is := range issues {
		if is.Severity == domain.SeverityWarning {
			rep.Warnings = append(rep.Warnings, is)
		}
	}
	return rep
}

func strictFailures(built catalog.Result, issues []domain.Issue) []string {
	var failures []string
	if len(built.MissingHeaders) > 0 {
		failures = append(failures, "faltan encabezados obligatorios")
	}
	if len(built.Products) == 0 {
		failures = append(failures, "no se generó ningún producto")
	}
	if built.Stats.HeaderRows == 0 {
		failures = append(failures, "no hay filas de producto")
	}
	var orphans, suspicious int
	for _, is := range issues {
		switch is.Kind {
		case domain.IssueOrphanOption:
			orphans++
		case domain.IssueSuspiciousText:
			suspicious++
		}
	}
	if orphans > 0 {
		failures = append(failures, fmt.Sprintf("%d filas de opción huérfanas", orphans))
	}
	if suspicious > 0 {
		failures = append(failures, fmt.Sprintf("%d productos con caracteres sospechosos", suspicious))
	}
	return failures
}
