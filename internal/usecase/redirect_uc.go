package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/hosteleria/internal/adapters/repo/jsonfile"
	"github.com/phenrril/hosteleria/internal/domain"
	"github.com/phenrril/hosteleria/internal/legacy"
)

type RedirectUC struct {
	Products   domain.CatalogRepo
	MapPath    string
	SamplePath string
	OutPath    string
	Strict     bool
}

type RedirectSummary struct {
	Entries       []domain.RedirectEntry
	Issues        []domain.Issue
	Seeds         int
	SampleWritten bool
}

// Build genera OutPath a partir del archivo semilla y el catálogo persistido.
// Sin archivo semilla la tabla queda vacía y se deja un ejemplo del formato.
func (uc *RedirectUC) Build(ctx context.Context) (*RedirectSummary, error) {
	sum := &RedirectSummary{Entries: []domain.RedirectEntry{}, Issues: []domain.Issue{}}

	raw, err := os.ReadFile(uc.MapPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn().Str("archivo", uc.MapPath).Msg("no hay archivo de redirecciones, se genera tabla vacía")
		written, err := uc.writeSample()
		if err != nil {
			return nil, err
		}
		sum.SampleWritten = written
		return sum, jsonfile.Write(uc.OutPath, sum.Entries)
	case err != nil:
		return nil, err
	}

	seeds := legacy.ParseSeeds(string(raw))
	sum.Seeds = len(seeds)

	cat, err := uc.Products.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound) && !uc.Strict:
		log.Warn().Err(err).Msg("no hay catálogo, solo se procesan las semillas origen;destino")
		cat = domain.NewCatalog(nil)
	case err != nil:
		return nil, fmt.Errorf("cargando catálogo: %w", err)
	}
	entries, issues, err := legacy.BuildRedirects(cat, seeds, uc.Strict)
	if err != nil {
		return nil, err
	}
	for _, is := range issues {
		log.Warn().Int("linea", is.Line).Str("tipo", string(is.Kind)).Msg(is.Message)
	}
	sum.Entries, sum.Issues = entries, issues

	if err := jsonfile.Write(uc.OutPath, entries); err != nil {
		return nil, err
	}
	log.Info().Int("semillas", len(seeds)).Int("redirecciones", len(entries)).Str("salida", uc.OutPath).Msg("redirecciones generadas")
	return sum, nil
}

// writeSample escribe el ejemplo solo si no existe ni el archivo real ni el ejemplo.
func (uc *RedirectUC) writeSample() (bool, error) {
	if uc.SamplePath == "" {
		return false, nil
	}
	if _, err := os.Stat(uc.SamplePath); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(uc.SamplePath), 0o755); err != nil {
		return false, err
	}
	if err := os.WriteFile(uc.SamplePath, []byte(legacy.SampleSeedFile), 0o644); err != nil {
		return false, err
	}
	log.Info().Str("archivo", uc.SamplePath).Msg("ejemplo de archivo semilla creado")
	return true, nil
}

// LoadRedirectTable lee la tabla generada; si todavía no existe queda vacía.
func LoadRedirectTable(path string) (legacy.RedirectTable, error) {
	var entries []domain.RedirectEntry
	if err := jsonfile.Read(path, &entries); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return legacy.RedirectTable{}, nil
		}
		return nil, err
	}
	return legacy.NewRedirectTable(entries), nil
}
