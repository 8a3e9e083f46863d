// Package httpserver serves the public campaign site.
package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"finitefield.org/campaign-site/internal/content"
	"finitefield.org/campaign-site/internal/markdown"
	"finitefield.org/campaign-site/internal/platform/csrf"
	"finitefield.org/campaign-site/internal/platform/observability"
	"finitefield.org/campaign-site/internal/site/sitecontent"
	"finitefield.org/campaign-site/public"
)

const maxFormBytes = 64 << 10

// Config holds runtime options for the public site server.
type Config struct {
	Address          string
	BaseURL          string
	Site             *sitecontent.Store
	Content          content.Service
	Markdown         *markdown.Renderer
	CSRFCookieSecure bool
	Logger           *zap.Logger
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
}

// New constructs the public site server.
func New(cfg Config) (*http.Server, error) {
	if cfg.Site == nil {
		return nil, errors.New("httpserver: site content store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	service := cfg.Content
	if service == nil {
		service = content.NewStaticService()
	}
	md := cfg.Markdown
	if md == nil {
		md = markdown.New()
	}

	staticContent, err := public.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("httpserver: embed static: %w", err)
	}

	h := &handlers{
		site:     cfg.Site,
		content:  service,
		markdown: md,
		baseURL:  cfg.BaseURL,
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.RequestLogger(logger))
	router.Use(observability.Recoverer)
	router.Use(chimw.Timeout(30 * time.Second))
	router.Use(chimw.Compress(5))

	router.Handle("/public/static/*", http.StripPrefix("/public/static/", http.FileServer(http.FS(staticContent))))
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	router.Group(func(r chi.Router) {
		r.Use(chimw.RequestSize(maxFormBytes))
		r.Use(csrf.Protect(csrf.Config{
			CookieName: "campaign_site_csrf",
			Secure:     cfg.CSRFCookieSecure,
		}))

		r.Get("/", h.Home)
		r.Get("/timeline", h.Timeline)
		r.Get("/gallery", h.Gallery)
		r.Get("/press", h.Press)
		r.Get("/press/{id}", h.PressArticle)
		r.Get("/contact", h.Contact)
		r.Post("/contact", h.SubmitContact)
	})
	router.NotFound(h.NotFound)

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  durationOr(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: durationOr(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  durationOr(cfg.IdleTimeout, 60*time.Second),
	}, nil
}

func durationOr(value, fallback time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return fallback
}
