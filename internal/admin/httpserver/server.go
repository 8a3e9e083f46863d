package httpserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	custommw "finitefield.org/campaign-site/internal/admin/httpserver/middleware"
	"finitefield.org/campaign-site/internal/admin/httpserver/ui"
	"finitefield.org/campaign-site/internal/admin/routes"
	appsession "finitefield.org/campaign-site/internal/admin/session"
	"finitefield.org/campaign-site/internal/content"
	"finitefield.org/campaign-site/internal/platform/observability"
	"finitefield.org/campaign-site/public"
)

// Config holds runtime options for the admin HTTP server.
type Config struct {
	Address          string
	LoginPath        string
	Environment      string
	FirebaseProject  string
	Authenticator    custommw.Authenticator
	Content          content.Service
	Sessions         custommw.SessionStore
	CSRFCookieName   string
	CSRFCookieSecure bool
	CSRFHeaderName   string
	Logger           *zap.Logger
	Now              func() time.Time
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
}

// New constructs the HTTP server with middleware stack and embedded assets. The back
// office is always mounted at routes.BasePath so registry templates and request paths
// agree.
func New(cfg Config) (*http.Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	staticContent, err := public.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("httpserver: embed static: %w", err)
	}

	sessions := cfg.Sessions
	if sessions == nil {
		manager, err := appsession.NewManager(appsession.Config{
			HashKey:    appsession.GenerateKey(32),
			CookiePath: routes.BasePath,
		})
		if err != nil {
			return nil, fmt.Errorf("httpserver: session manager: %w", err)
		}
		logger.Warn("session hash key not configured; sessions will not survive restarts")
		sessions = manager
	}

	authenticator := cfg.Authenticator
	if authenticator == nil {
		authenticator = custommw.DefaultAuthenticator()
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.RequestLogger(logger))
	router.Use(observability.Recoverer)
	router.Use(chimw.Timeout(60 * time.Second))

	router.Handle("/public/static/*", http.StripPrefix("/public/static/", http.FileServer(http.FS(staticContent))))
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	handlers := ui.NewHandlers(ui.Dependencies{Content: cfg.Content, Now: cfg.Now})
	registry := routes.AdminRegistry(handlers.Screens())

	mountAdminRoutes(router, routeOptions{
		Authenticator: authenticator,
		LoginPath:     resolveLoginPath(routes.BasePath, cfg.LoginPath),
		Environment:   cfg.Environment,
		ProjectID:     cfg.FirebaseProject,
		Sessions:      sessions,
		Registry:      registry,
		Handlers:      handlers,
		CSRF: custommw.CSRFConfig{
			CookieName: cfg.CSRFCookieName,
			CookiePath: routes.BasePath,
			HeaderName: cfg.CSRFHeaderName,
			Secure:     cfg.CSRFCookieSecure,
		},
	})

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  durationOr(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: durationOr(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  durationOr(cfg.IdleTimeout, 60*time.Second),
	}, nil
}

type routeOptions struct {
	Authenticator custommw.Authenticator
	LoginPath     string
	Environment   string
	ProjectID     string
	Sessions      custommw.SessionStore
	Registry      *routes.Registry
	Handlers      *ui.Handlers
	CSRF          custommw.CSRFConfig
}

func mountAdminRoutes(router chi.Router, opts routeOptions) {
	resolver := routes.NewResolver(opts.Registry)
	authHandlers := newAuthHandlers(opts.Authenticator, routes.BasePath, opts.LoginPath, opts.ProjectID)
	h := opts.Handlers

	router.Route(routes.BasePath, func(r chi.Router) {
		r.Use(custommw.RequestInfoMiddleware(routes.BasePath))
		r.Use(custommw.RouteInfo(resolver))
		r.Use(custommw.HTMX())
		r.Use(custommw.NoStore())
		r.Use(custommw.Session(opts.Sessions))
		r.Use(custommw.CSRF(opts.CSRF))
		r.Use(custommw.Environment(opts.Environment))

		r.Get(relative(opts.LoginPath), authHandlers.LoginForm)
		r.Post(relative(opts.LoginPath), authHandlers.LoginSubmit)
		r.Post("/logout", authHandlers.Logout)

		r.Group(func(r chi.Router) {
			r.Use(custommw.Auth(opts.Authenticator, opts.LoginPath))

			r.Get("/", h.Overview)
			r.Get(relative(routes.PhotoDashboard), h.PhotoDashboard)
			r.Get(relative(routes.VideoDashboard), h.VideoDashboard)
			r.Get(relative(routes.PressDashboard), h.PressDashboard)
			r.Get(relative(routes.MessageDashboard), h.MessageDashboard)

			for _, desc := range opts.Registry.Descriptors() {
				r.Get(chiPattern(desc.Template), h.Screen)
			}

			r.Post("/message/{id}/read", h.MarkMessageRead)
			r.Post("/message/{id}/delete", h.DeleteMessage)
		})
	})
}

// chiPattern converts a registry template into a chi pattern relative to the admin
// mount, turning ":id" wildcards into "{id}".
func chiPattern(template string) string {
	segments := strings.Split(relative(template), "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") && len(seg) > 1 {
			segments[i] = "{" + seg[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

// relative strips the admin mount from an absolute admin path.
func relative(path string) string {
	rest := strings.TrimPrefix(path, routes.BasePath)
	if rest == "" {
		return "/"
	}
	return rest
}

// resolveLoginPath returns the sign-in path. Overrides must live under the admin mount.
func resolveLoginPath(base string, override string) string {
	if override = strings.TrimSpace(override); override != "" && strings.HasPrefix(override, base+"/") {
		return override
	}
	if base == "/" {
		return "/login"
	}
	return base + "/login"
}

func durationOr(value, fallback time.Duration) time.Duration {
	if value > 0 {
		return value
	}
	return fallback
}
