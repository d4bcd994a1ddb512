package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/hosteleria/internal/adapters/images"
	"github.com/phenrril/hosteleria/internal/adapters/repo/jsonfile"
	"github.com/phenrril/hosteleria/internal/domain"
)

type ImagesUC struct {
	Products domain.CatalogRepo
	Syncer   *images.Syncer
	MapPath  string
	Strict   bool
}

// Sync descarga las imágenes del catálogo y escribe el mapa URL -> ruta local.
func (uc *ImagesUC) Sync(ctx context.Context) (*images.Result, error) {
	cat, err := uc.Products.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("cargando catálogo: %w", err)
	}
	tasks := images.Plan(cat.Products())
	log.Info().Int("productos", cat.Len()).Int("imagenes", len(tasks)).Msg("sincronizando imágenes")

	res := uc.Syncer.Run(ctx, tasks)
	if err := jsonfile.Write(uc.MapPath, res.Map); err != nil {
		return nil, err
	}
	log.Info().
		Int("descargadas", res.Downloaded).
		Int("existentes", res.Skipped).
		Int("fallidas", res.Failed).
		Str("mapa", uc.MapPath).
		Msg("sincronización terminada")

	if res.Failed > 0 && uc.Strict {
		return &res, fmt.Errorf("%w: %d imágenes no se pudieron descargar", domain.ErrStrict, res.Failed)
	}
	return &res, nil
}
