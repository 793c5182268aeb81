package main

import (
	"context"

	"github.com/mantonx/cinebot/internal/config"
	"github.com/mantonx/cinebot/internal/database"
	"github.com/mantonx/cinebot/internal/logger"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/repository"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/service"
)

// newService builds a chatbot service for one-shot commands and loads the
// configured catalog. The returned func releases the database, if one was
// opened.
func newService(ctx context.Context, cfg *config.Config) (*service.ChatbotService, func(), error) {
	opts := service.Options{
		Config: cfg.Chatbot,
		Logger: logger.Root(),
	}
	// one-shot commands never watch the catalog file
	opts.Config.HotReload = false

	cleanup := func() {}
	if cfg.Chatbot.CatalogSource == config.CatalogSourceDatabase {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewPersonaRepository(db)
		if err := repo.Migrate(); err != nil {
			return nil, nil, err
		}
		opts.Repository = repo
		cleanup = func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
	}

	svc := service.NewChatbotService(opts)
	if err := svc.Start(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}
