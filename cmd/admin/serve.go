package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	firebase "firebase.google.com/go/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/campaign-site/internal/admin/httpserver"
	"finitefield.org/campaign-site/internal/admin/httpserver/middleware"
	"finitefield.org/campaign-site/internal/admin/routes"
	appsession "finitefield.org/campaign-site/internal/admin/session"
	"finitefield.org/campaign-site/internal/content"
	"finitefield.org/campaign-site/internal/platform/config"
	"finitefield.org/campaign-site/internal/platform/observability"
)

type serveFlags struct {
	addr    string
	envFile string
}

func newRootCmd() *cobra.Command {
	flags := &serveFlags{}

	root := &cobra.Command{
		Use:           "admin",
		Short:         "Campaign back office",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file with local overrides")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the back-office HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	serve.Flags().StringVar(&flags.addr, "addr", "", "listen address (overrides CAMPAIGN_ADMIN_ADDR)")
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newRoutesCmd())
	return root
}

func runServe(ctx context.Context, flags *serveFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(config.WithEnvFile(flags.envFile))
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Server.AdminAddr = flags.addr
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	service, err := content.Open(content.Options{
		BaseURL:  cfg.Backend.BaseURL,
		Timeout:  cfg.Backend.Timeout,
		CacheTTL: cfg.Cache.TTL,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	sessions, err := buildSessions(cfg.Session, logger)
	if err != nil {
		return err
	}

	srv, err := httpserver.New(httpserver.Config{
		Address:          cfg.Server.AdminAddr,
		Environment:      cfg.Admin.Environment,
		FirebaseProject:  cfg.Firebase.ProjectID,
		Authenticator:    buildAuthenticator(ctx, cfg.Firebase.ProjectID, logger),
		Content:          service,
		Sessions:         sessions,
		CSRFCookieSecure: cfg.Admin.CSRFCookieSecure,
		Logger:           logger,
		ReadTimeout:      cfg.Server.ReadTimeout,
		WriteTimeout:     cfg.Server.WriteTimeout,
		IdleTimeout:      cfg.Server.IdleTimeout,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info("admin server listening", zap.String("addr", cfg.Server.AdminAddr), zap.String("base_path", routes.BasePath))

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("admin server stopped")
	return nil
}

// buildSessions returns nil when no hash key is configured, letting the server fall
// back to a per-process key.
func buildSessions(cfg config.SessionConfig, logger *zap.Logger) (middleware.SessionStore, error) {
	if cfg.HashKey == "" {
		return nil, nil
	}
	manager, err := appsession.NewManager(appsession.Config{
		HashKey:      []byte(cfg.HashKey),
		BlockKey:     []byte(cfg.BlockKey),
		CookiePath:   routes.BasePath,
		CookieSecure: cfg.CookieSecure,
		IdleTimeout:  cfg.IdleTimeout,
		Lifetime:     cfg.Lifetime,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("session cookies enabled", zap.Bool("encrypted", cfg.BlockKey != ""))
	return manager, nil
}

func buildAuthenticator(ctx context.Context, projectID string, logger *zap.Logger) middleware.Authenticator {
	if projectID == "" {
		logger.Warn("FIREBASE_PROJECT_ID not set; using passthrough authenticator")
		return nil
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		logger.Error("failed to initialise Firebase app", zap.Error(err))
		return nil
	}

	client, err := app.Auth(ctx)
	if err != nil {
		logger.Error("failed to initialise Firebase auth client", zap.Error(err))
		return nil
	}

	logger.Info("Firebase authenticator enabled", zap.String("project", projectID))
	return middleware.NewFirebaseAuthenticator(client)
}
