// Package images descarga las imágenes externas del catálogo a disco.
package images

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"
	"resty.dev/v3"

	"github.com/phenrril/hosteleria/internal/domain"
)

const defaultUserAgent = "Mozilla/5.0 (compatible; HosteleriaBot/1.0)"

type Options struct {
	OutDir string
	// PublicPrefix es la ruta pública bajo la que se sirve OutDir.
	PublicPrefix string
	Workers      int
	Timeout      time.Duration
	// RPS limita las peticiones por segundo; 0 es sin límite.
	RPS       int
	UserAgent string
}

// Task es una descarga pendiente. Cada URL aparece una sola vez aunque la
// compartan varios productos: se guarda en la carpeta del primero.
type Task struct {
	URL       string
	ProductID string
	Index     int
}

type Result struct {
	// Map va de URL a ruta pública; nil cuando la descarga falló.
	Map        map[string]*string
	Downloaded int
	Skipped    int
	Failed     int
	Issues     []domain.Issue
}

type Syncer struct {
	opts   Options
	client *resty.Client
	rl     ratelimit.Limiter
}

func NewSyncer(opts Options) *Syncer {
	if opts.Workers <= 0 {
		opts.Workers = 5
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.PublicPrefix == "" {
		opts.PublicPrefix = "/media/products"
	}
	rl := ratelimit.NewUnlimited()
	if opts.RPS > 0 {
		rl = ratelimit.New(opts.RPS)
	}
	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", opts.UserAgent)
	return &Syncer{opts: opts, client: client, rl: rl}
}

func (s *Syncer) Close() error { return s.client.Close() }

// Plan junta las URLs http(s) de todos los productos, sin repetir.
func Plan(products []domain.Product) []Task {
	var tasks []Task
	seen := map[string]struct{}{}
	for _, p := range products {
		candidates := append([]string{p.Image}, p.ImagesSource...)
		idx := 0
		local := map[string]struct{}{}
		for _, u := range candidates {
			if !isRemote(u) {
				continue
			}
			if _, ok := local[u]; ok {
				continue
			}
			local[u] = struct{}{}
			if _, ok := seen[u]; !ok {
				seen[u] = struct{}{}
				tasks = append(tasks, Task{URL: u, ProductID: p.ID, Index: idx})
			}
			idx++
		}
	}
	return tasks
}

func isRemote(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// Run descarga con a lo sumo Workers peticiones en vuelo. Un fallo queda
// registrado en el resultado y no corta a los demás workers.
func (s *Syncer) Run(ctx context.Context, tasks []Task) Result {
	paths := make([]*string, len(tasks))
	errs := make([]error, len(tasks))
	var downloaded, skipped atomic.Int64

	var g errgroup.Group
	g.SetLimit(s.opts.Workers)
	for i, t := range tasks {
		g.Go(func() error {
			public, fetched, err := s.fetch(ctx, t)
			if err != nil {
				log.Warn().Err(err).Str("url", t.URL).Msg("no se pudo descargar la imagen")
				errs[i] = err
				return nil
			}
			if fetched {
				downloaded.Add(1)
			} else {
				skipped.Add(1)
			}
			paths[i] = &public
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Map: make(map[string]*string, len(tasks)), Issues: []domain.Issue{}}
	for i, t := range tasks {
		res.Map[t.URL] = paths[i]
		if errs[i] != nil {
			res.Failed++
			res.Issues = append(res.Issues, domain.Issue{
				Severity: domain.SeverityWarning,
				Kind:     domain.IssueImageFetch,
				Message:  fmt.Sprintf("producto %s: %v", t.ProductID, errs[i]),
				Snapshot: map[string]string{"url": t.URL},
			})
		}
	}
	res.Downloaded = int(downloaded.Load())
	res.Skipped = int(skipped.Load())
	return res
}

// fetch devuelve la ruta pública; fetched es false si el archivo ya existía.
func (s *Syncer) fetch(ctx context.Context, t Task) (string, bool, error) {
	name := fmt.Sprintf("%d%s", t.Index, extension(t.URL))
	dest := filepath.Join(s.opts.OutDir, t.ProductID, name)
	public := path.Join(s.opts.PublicPrefix, t.ProductID, name)

	if _, err := os.Stat(dest); err == nil {
		return public, false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", false, err
	}

	s.rl.Take()
	resp, err := s.client.R().SetContext(ctx).Get(t.URL)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, fmt.Errorf("descarga cancelada: %w", ctx.Err())
		}
		return "", false, fmt.Errorf("descargando %s: %w", t.URL, err)
	}
	if resp.IsError() {
		return "", false, fmt.Errorf("descargando %s: status %d", t.URL, resp.StatusCode())
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", false, err
	}
	if err := os.WriteFile(dest, resp.Bytes(), 0o644); err != nil {
		return "", false, err
	}
	return public, true, nil
}

func extension(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ".jpg"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" || len(ext) > 5 {
		return ".jpg"
	}
	return ext
}
