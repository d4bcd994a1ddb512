// images-sync descarga las imágenes externas del catálogo y escribe out/image-map.json.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/phenrril/hosteleria/internal/app"
	"github.com/phenrril/hosteleria/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "", "archivo de configuración")
	products := flag.String("products", "", "catálogo JSON")
	outDir := flag.String("out-dir", "", "carpeta destino de las imágenes")
	mapPath := flag.String("map", "", "mapa URL -> ruta local")
	workers := flag.Int("workers", 0, "descargas simultáneas")
	timeout := flag.Duration("timeout", 0, "timeout por descarga")
	strict := flag.Bool("strict", false, "falla si alguna descarga falla")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *products != "" {
		cfg.Catalog.Products = *products
	}
	if *outDir != "" {
		cfg.Images.OutDir = *outDir
	}
	if *mapPath != "" {
		cfg.Images.Map = *mapPath
	}
	if *workers > 0 {
		cfg.Images.Workers = *workers
	}
	if *timeout > 0 {
		cfg.Images.Timeout = *timeout
	}
	cfg.Images.Strict = cfg.Images.Strict || *strict
	cfg.Catalog.DBDSN = ""
	app.SetupLogging(cfg.Log.Level)

	application, err := app.NewApp(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("no se pudo crear la app")
	}
	uc := application.NewImagesUC()
	defer uc.Syncer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if _, err := uc.Sync(ctx); err != nil {
		zlog.Error().Err(err).Msg("sincronización fallida")
		stop()
		uc.Syncer.Close()
		os.Exit(1)
	}
	zlog.Info().Dur("duracion", time.Since(start)).Msg("listo")
}
