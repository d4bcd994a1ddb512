package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
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

	cfgPath := flag.String("config", "", "archivo de configuración (por defecto ./config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	app.SetupLogging(cfg.Log.Level)

	application, err := app.NewApp(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("no se pudo crear la app")
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Migrate(ctx); err != nil {
		zlog.Fatal().Err(err).Msg("no se pudo migrar la base")
	}
	handler := application.HTTPHandler()
	if err := application.Reload(ctx); err != nil {
		zlog.Fatal().Err(err).Msg("no se pudo cargar el catálogo")
	}
	go application.Watch(ctx, cfg.Server.ReloadEvery)

	ln, err := listen(cfg.Server.Host, cfg.Server.Port)
	if err != nil {
		zlog.Fatal().Err(err).Msg("no se pudo abrir el puerto")
	}

	server := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		zlog.Info().Str("addr", ln.Addr().String()).Msg("servidor escuchando")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error().Err(err).Msg("servidor detenido")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	zlog.Info().Msg("servidor cerrado")
}

// listen prueba el puerto configurado y, si está ocupado, los diez siguientes.
func listen(host string, port int) (net.Listener, error) {
	var firstErr error
	for p := port; p <= port+10; p++ {
		ln, err := net.Listen("tcp", net.JoinHostPort(host, fmt.Sprint(p)))
		if err == nil {
			if p != port {
				zlog.Warn().Int("puerto", port).Int("alternativo", p).Msg("puerto ocupado, se usa otro")
			}
			return ln, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}
