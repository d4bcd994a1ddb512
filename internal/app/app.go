// Package app arma las dependencias compartidas por los comandos.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/phenrril/hosteleria/internal/adapters/httpserver"
	"github.com/phenrril/hosteleria/internal/adapters/images"
	"github.com/phenrril/hosteleria/internal/adapters/repo/jsonfile"
	"github.com/phenrril/hosteleria/internal/adapters/repo/postgres"
	"github.com/phenrril/hosteleria/internal/config"
	"github.com/phenrril/hosteleria/internal/domain"
	"github.com/phenrril/hosteleria/internal/legacy"
	"github.com/phenrril/hosteleria/internal/usecase"
)

type App struct {
	Config *config.Config
	DB     *gorm.DB
	// Store es la fuente de verdad en disco (lib/data/products.json).
	Store  *jsonfile.CatalogRepo
	DBRepo *postgres.ProductRepo

	CatalogUC  *usecase.CatalogUC
	LegacyUC   *usecase.LegacyUC
	RedirectUC *usecase.RedirectUC
	ImportUC   *usecase.ImportUC

	server *httpserver.Server
}

// NewApp conecta Postgres solo si hay DSN configurado.
func NewApp(cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, Store: jsonfile.NewCatalogRepo(cfg.Catalog.Products)}

	if cfg.Catalog.DBDSN != "" {
		db, err := OpenDB(cfg.Catalog.DBDSN)
		if err != nil {
			return nil, err
		}
		a.DB = db
		a.DBRepo = postgres.NewProductRepo(db)
	}

	a.CatalogUC = usecase.NewCatalogUC(a.Source())
	a.LegacyUC = &usecase.LegacyUC{
		Catalog:    a.CatalogUC,
		Classifier: legacy.NewClassifier(cfg.Legacy.Rules, cfg.Legacy.Policy()),
	}
	a.RedirectUC = &usecase.RedirectUC{
		Products:   a.Store,
		MapPath:    cfg.Redirects.Map,
		SamplePath: cfg.Redirects.Sample,
		OutPath:    cfg.Redirects.Out,
		Strict:     cfg.Redirects.Strict,
	}
	a.ImportUC = &usecase.ImportUC{Store: a.Store}
	if a.DBRepo != nil {
		a.ImportUC.Mirrors = append(a.ImportUC.Mirrors, a.DBRepo)
	}
	a.server = httpserver.New(a.CatalogUC, a.LegacyUC, nil, cfg.Server.SiteURL)
	return a, nil
}

// Source es de donde lee el servidor: Postgres si está configurado, si no el JSON.
func (a *App) Source() domain.CatalogRepo {
	if a.DBRepo != nil {
		return a.DBRepo
	}
	return a.Store
}

func (a *App) Migrate(ctx context.Context) error {
	if a.DBRepo == nil {
		return nil
	}
	return a.DBRepo.Migrate(ctx)
}

// NewImagesUC crea el pool de descargas; el llamador cierra el Syncer.
func (a *App) NewImagesUC() *usecase.ImagesUC {
	c := a.Config.Images
	return &usecase.ImagesUC{
		Products: a.Store,
		Syncer: images.NewSyncer(images.Options{
			OutDir:       c.OutDir,
			PublicPrefix: c.PublicPrefix,
			Workers:      c.Workers,
			Timeout:      c.Timeout,
			RPS:          c.RPS,
		}),
		MapPath: c.Map,
		Strict:  c.Strict,
	}
}

// Reload publica una foto nueva del catálogo y de la tabla de redirecciones.
// Un catálogo todavía no importado deja el servidor vacío, no es un error.
func (a *App) Reload(ctx context.Context) error {
	if err := a.CatalogUC.Load(ctx); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		log.Warn().Str("archivo", a.Store.Path()).Msg("catálogo inexistente, se sirve vacío")
	}
	table, err := usecase.LoadRedirectTable(a.Config.Redirects.Out)
	if err != nil {
		return err
	}
	a.server.SetRedirects(table)
	log.Info().Int("redirecciones", len(table)).Msg("tabla de redirecciones cargada")
	return nil
}

func (a *App) HTTPHandler() http.Handler { return a.server.Handler() }

// Watch recarga cada intervalo hasta que se cancele ctx.
func (a *App) Watch(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := a.Reload(ctx); err != nil {
				log.Warn().Err(err).Msg("no se pudo recargar el catálogo")
			}
		}
	}
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
