// Package httpserver expone el catálogo y mantiene vivas las URLs del sitio anterior.
package httpserver

import (
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/hosteleria/internal/domain"
	"github.com/phenrril/hosteleria/internal/legacy"
	"github.com/phenrril/hosteleria/internal/usecase"
)

type Server struct {
	mux       *http.ServeMux
	catalog   *usecase.CatalogUC
	legacy    *usecase.LegacyUC
	redirects atomic.Pointer[legacy.RedirectTable]
	siteURL   string
}

func New(c *usecase.CatalogUC, l *usecase.LegacyUC, redirects legacy.RedirectTable, siteURL string) *Server {
	s := &Server{catalog: c, legacy: l, siteURL: strings.TrimRight(siteURL, "/"), mux: http.NewServeMux()}
	s.SetRedirects(redirects)
	s.routes()
	return s
}

// Handler devuelve el mux con los middlewares.
func (s *Server) Handler() http.Handler {
	return Chain(s.mux,
		RequestID,
		Recovery,
		Logging,
		Gzip,
	)
}

// SetRedirects reemplaza la tabla 301 sin cortar las peticiones en curso.
func (s *Server) SetRedirects(t legacy.RedirectTable) {
	if t == nil {
		t = legacy.RedirectTable{}
	}
	s.redirects.Store(&t)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/robots.txt", s.handleRobots)
	s.mux.HandleFunc("/sitemap.xml", s.handleSitemap)

	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/", s.apiProductByID)
	s.mux.HandleFunc("/api/categories", s.apiCategories)

	// las URLs legacy y las redirecciones no tienen prefijo fijo
	s.mux.HandleFunc("/", s.handleRoot)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path == "/" {
		s.handleHome(w, r)
		return
	}

	// el slug se decodifica en Decompose, así que se pasa el path sin decodificar
	if legacy.IsLegacyPath(r.URL.EscapedPath()) {
		s.handleLegacy(w, r)
		return
	}

	table := *s.redirects.Load()
	for _, p := range []string{r.URL.Path, r.URL.EscapedPath()} {
		if dst, ok := table.Lookup(p); ok {
			http.Redirect(w, r, dst, http.StatusMovedPermanently)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "no encontrado"})
}

func (s *Server) handleLegacy(w http.ResponseWriter, r *http.Request) {
	res, err := s.legacy.Resolve(r.Context(), r.URL.EscapedPath())
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNotLegacy):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no encontrado"})
		return
	case err != nil:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("resolviendo url legacy")
		http.Error(w, "error interno", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Link", "<"+s.canonicalBase(r)+res.Canonical+`>; rel="canonical"`)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	cats, err := s.catalog.Categories(r.Context())
	if err != nil {
		http.Error(w, "error interno", http.StatusInternalServerError)
		return
	}
	featured := true
	list, _, _ := s.catalog.List(r.Context(), domain.ProductFilter{Featured: &featured, PageSize: 12})
	writeJSON(w, http.StatusOK, map[string]any{
		"products":   s.catalog.Catalog().Len(),
		"categories": cats,
		"featured":   list,
		"loadedAt":   s.catalog.LoadedAt(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "products": s.catalog.Catalog().Len()})
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	f := domain.ProductFilter{Query: q.Get("q"), Category: q.Get("category")}
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.PageSize, _ = strconv.Atoi(q.Get("page_size"))
	if f.PageSize > 200 {
		f.PageSize = 200
	}
	if v := q.Get("featured"); v != "" {
		b := v == "1" || strings.EqualFold(v, "true")
		f.Featured = &b
	}
	list, total, err := s.catalog.List(r.Context(), f)
	if err != nil {
		http.Error(w, "error interno", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list, "total": total})
}

func (s *Server) apiProductByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/products/"), "/")
	if id == "" {
		http.Error(w, "id", http.StatusBadRequest)
		return
	}
	p, err := s.catalog.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no encontrado"})
			return
		}
		http.Error(w, "error interno", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": p, "canonical": legacy.CanonicalProductPath(p)})
}

func (s *Server) apiCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.catalog.Categories(r.Context())
	if err != nil {
		http.Error(w, "error interno", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": cats})
}

func (s *Server) canonicalBase(r *http.Request) string {
	if s.siteURL != "" {
		return s.siteURL
	}
	host := r.Header.Get("X-Forwarded-Host")
	if host == "" {
		host = r.Host
	}
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		if r.TLS != nil {
			scheme = "https"
		} else {
			scheme = "http"
		}
	}
	return scheme + "://" + host
}

// handleSitemap publica solo las URLs legacy canónicas: son las que ya indexan los buscadores.
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	base := s.canonicalBase(r)
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString("\n" + `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	writeLoc := func(path string) {
		b.WriteString("\n  <url><loc>" + html.EscapeString(base+path) + "</loc></url>")
	}
	writeLoc("/")

	ids := s.legacy.Classifier.RuleIDs()
	sort.Strings(ids)
	for _, id := range ids {
		rule, _ := s.legacy.Classifier.Rule(id)
		writeLoc(legacy.CanonicalCategoryPath(id, rule.Title))
	}
	for _, p := range s.catalog.Catalog().Products() {
		writeLoc(legacy.CanonicalProductPath(&p))
	}
	b.WriteString("\n</urlset>\n")
	_, _ = w.Write([]byte(b.String()))
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("User-agent: *\nDisallow: /api/\nSitemap: " + s.canonicalBase(r) + "/sitemap.xml\n"))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
