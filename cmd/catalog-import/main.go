// catalog-import convierte la exportación del CMS anterior en lib/data/products.json.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/phenrril/hosteleria/internal/app"
	"github.com/phenrril/hosteleria/internal/config"
	"github.com/phenrril/hosteleria/internal/domain"
	"github.com/phenrril/hosteleria/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "", "archivo de configuración")
	input := flag.String("input", "", "exportación .csv o .xlsx")
	out := flag.String("out", "", "catálogo JSON de salida")
	report := flag.String("report", "", "reporte de importación")
	errorsOut := flag.String("errors", "", "errores de importación")
	dsn := flag.String("db", "", "DSN de Postgres para replicar el catálogo")
	strict := flag.Bool("strict", false, "falla ante filas huérfanas, encabezados faltantes o texto sospechoso")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	override(&cfg.Catalog.Input, *input)
	override(&cfg.Catalog.Products, *out)
	override(&cfg.Catalog.Report, *report)
	override(&cfg.Catalog.Errors, *errorsOut)
	override(&cfg.Catalog.DBDSN, *dsn)
	cfg.Catalog.Strict = cfg.Catalog.Strict || *strict
	app.SetupLogging(cfg.Log.Level)

	application, err := app.NewApp(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("no se pudo crear la app")
	}
	defer application.Close()

	ctx := context.Background()
	if err := application.Migrate(ctx); err != nil {
		zlog.Fatal().Err(err).Msg("no se pudo migrar la base")
	}

	res, err := application.ImportUC.Run(ctx, usecase.ImportOptions{
		Input:      cfg.Catalog.Input,
		ReportPath: cfg.Catalog.Report,
		ErrorsPath: cfg.Catalog.Errors,
		Strict:     cfg.Catalog.Strict,
	})
	if err != nil {
		if errors.Is(err, domain.ErrStrict) && res != nil {
			for _, f := range res.Failures {
				zlog.Error().Msg(f)
			}
		}
		zlog.Error().Err(err).Msg("importación fallida")
		application.Close()
		os.Exit(1)
	}
	zlog.Info().Str("catalogo", cfg.Catalog.Products).Str("reporte", cfg.Catalog.Report).Msg("listo")
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
