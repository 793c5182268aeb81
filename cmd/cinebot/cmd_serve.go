package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/mantonx/cinebot/internal/config"
	"github.com/mantonx/cinebot/internal/database"
	"github.com/mantonx/cinebot/internal/logger"
	"github.com/mantonx/cinebot/internal/metrics"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/service"
	"github.com/mantonx/cinebot/internal/modules/modulemanager"
	"github.com/mantonx/cinebot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the chatbot HTTP API under /api/chatbot, plus /api/health and the
Prometheus endpoint. SIGINT or SIGTERM drains in-flight requests before exit.
SIGHUP re-reads the config file; chatbot.default_language takes effect
immediately, other settings need a restart.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Get()
	log := logger.Named("serve")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *gorm.DB
	if cfg.Chatbot.CatalogSource == config.CatalogSourceDatabase {
		if err := database.Initialize(cfg.Database); err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		defer database.Close()
		db = database.GetDB()
	}

	modulemanager.Registry.SetLogger(logger.Root())
	mod := chatbotmodule.NewModule(chatbotmodule.Options{
		Config:  &cfg.Chatbot,
		Metrics: metrics.Default(),
		Logger:  logger.Root(),
	})
	chatbotmodule.Register(mod)
	if err := modulemanager.LoadAll(db); err != nil {
		return err
	}
	config.AddWatcher(defaultLanguageWatcher(mod.Service(), log))
	if err := modulemanager.Registry.StartAll(ctx); err != nil {
		return err
	}

	srv := server.NewHTTPServer(cfg.Server, server.SetupRouter(cfg, modulemanager.Registry, logger.Root()))

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

serving:
	for {
		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("http server: %w", err)
			}
			break serving
		case <-hup:
			if err := config.Reload(); err != nil {
				log.Warn("config reload failed, keeping current config", "error", err)
				continue
			}
			log.Info("config reloaded")
		case <-ctx.Done():
			log.Info("shutting down gracefully")
			break serving
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
	}
	if err := modulemanager.Registry.ShutdownAll(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// defaultLanguageWatcher pushes chatbot.default_language changes into svc.
func defaultLanguageWatcher(svc *service.ChatbotService, log hclog.Logger) config.ConfigWatcher {
	return func(oldConfig, newConfig *config.Config) {
		from, to := oldConfig.Chatbot.DefaultLanguage, newConfig.Chatbot.DefaultLanguage
		if from == to {
			return
		}
		svc.SetDefaultLanguage(to)
		log.Info("default language changed", "from", from, "to", to)
	}
}
