package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/campaign-site/internal/content"
	"finitefield.org/campaign-site/internal/platform/config"
	"finitefield.org/campaign-site/internal/platform/observability"
	"finitefield.org/campaign-site/internal/site/httpserver"
	"finitefield.org/campaign-site/internal/site/sitecontent"
)

type serveFlags struct {
	addr       string
	envFile    string
	contentDir string
	watch      bool
}

func newRootCmd() *cobra.Command {
	flags := &serveFlags{}

	root := &cobra.Command{
		Use:           "web",
		Short:         "Public campaign site",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file with local overrides")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the public site HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}
	serve.Flags().StringVar(&flags.addr, "addr", "", "listen address (overrides CAMPAIGN_WEB_ADDR)")
	serve.Flags().StringVar(&flags.contentDir, "content-dir", "", "directory holding site.yaml (overrides CAMPAIGN_CONTENT_DIR)")
	serve.Flags().BoolVar(&flags.watch, "watch", false, "reload site.yaml on change (defaults to CAMPAIGN_DEV)")
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newContentCmd())
	return root
}

func runServe(cmd *cobra.Command, flags *serveFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(config.WithEnvFile(flags.envFile))
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Server.WebAddr = flags.addr
	}
	if flags.contentDir != "" {
		cfg.Web.ContentDir = flags.contentDir
	}
	watch := cfg.Web.DevMode
	if cmd.Flags().Changed("watch") {
		watch = flags.watch
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := sitecontent.NewStore(cfg.Web.ContentDir, logger)
	if err != nil {
		return err
	}

	service, err := content.Open(content.Options{
		BaseURL:  cfg.Backend.BaseURL,
		Timeout:  cfg.Backend.Timeout,
		CacheTTL: cfg.Cache.TTL,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	srv, err := httpserver.New(httpserver.Config{
		Address:          cfg.Server.WebAddr,
		BaseURL:          cfg.Web.BaseURL,
		Site:             store,
		Content:          service,
		CSRFCookieSecure: cfg.Session.CookieSecure,
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

	if watch && store.Dir() != "" {
		go func() {
			if err := store.Watch(ctx, 0); err != nil {
				logger.Warn("site content watcher stopped", zap.Error(err))
			}
		}()
		logger.Info("watching site content", zap.String("dir", store.Dir()))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info("web server listening", zap.String("addr", cfg.Server.WebAddr), zap.String("site", store.Current().Name))

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
	logger.Info("web server stopped")
	return nil
}
