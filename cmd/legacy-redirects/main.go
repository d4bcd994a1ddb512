// legacy-redirects genera out/redirects.json a partir de data/legacy-map.csv.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/phenrril/hosteleria/internal/adapters/repo/jsonfile"
	"github.com/phenrril/hosteleria/internal/app"
	"github.com/phenrril/hosteleria/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "", "archivo de configuración")
	products := flag.String("products", "", "catálogo JSON")
	seedMap := flag.String("map", "", "archivo semilla key;legacyPath")
	sample := flag.String("sample", "", "ejemplo que se escribe si no hay archivo semilla")
	out := flag.String("out", "", "tabla de redirecciones de salida")
	strict := flag.Bool("strict", false, "falla ante claves que no existen en el catálogo")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	app.SetupLogging(cfg.Log.Level)

	// solo lee el JSON: no hace falta conectar Postgres
	cfg.Catalog.DBDSN = ""
	application, err := app.NewApp(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("no se pudo crear la app")
	}
	uc := application.RedirectUC
	if *products != "" {
		uc.Products = jsonfile.NewCatalogRepo(*products)
	}
	if *seedMap != "" {
		uc.MapPath = *seedMap
	}
	if *sample != "" {
		uc.SamplePath = *sample
	}
	if *out != "" {
		uc.OutPath = *out
	}
	uc.Strict = uc.Strict || *strict

	if _, err := uc.Build(context.Background()); err != nil {
		zlog.Error().Err(err).Msg("no se pudieron generar las redirecciones")
		os.Exit(1)
	}
}
