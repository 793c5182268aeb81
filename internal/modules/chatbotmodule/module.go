package chatbotmodule

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/mantonx/cinebot/internal/config"
	"github.com/mantonx/cinebot/internal/metrics"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/api"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/repository"
	"github.com/mantonx/cinebot/internal/modules/chatbotmodule/service"
	"github.com/mantonx/cinebot/internal/modules/modulemanager"
)

const (
	// ModuleID is the unique identifier for the chatbot module
	ModuleID = "system.chatbot"

	// ModuleName is the display name for the chatbot module
	ModuleName = "Chatbot Engine"

	// ModuleVersion is the version of the chatbot module
	ModuleVersion = "1.0.0"
)

// Options configures the module. Config is read from the global config when
// nil.
type Options struct {
	Config    *config.ChatbotConfig
	Responder service.Responder
	Metrics   *metrics.Recorder
	Logger    hclog.Logger
}

// Module implements the chatbot engine as a module
type Module struct {
	opts    Options
	logger  hclog.Logger
	repo    *repository.PersonaRepository
	service *service.ChatbotService
}

// NewModule creates the module. Call Register to add it to the registry.
func NewModule(opts Options) *Module {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Module{opts: opts, logger: logger}
}

// Register adds m to the global module registry.
func Register(m *Module) {
	modulemanager.Register(m)
}

// ID returns the unique module identifier
func (m *Module) ID() string {
	return ModuleID
}

// Name returns the module display name
func (m *Module) Name() string {
	return ModuleName
}

// Core returns whether this is a core module
func (m *Module) Core() bool {
	return true
}

// Migrate creates the persona table. Without a database the module serves
// builtin or file catalogs only.
func (m *Module) Migrate(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	m.repo = repository.NewPersonaRepository(db)
	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate chatbot models: %w", err)
	}
	return nil
}

// Init builds the chatbot service
func (m *Module) Init() error {
	cfg := m.opts.Config
	if cfg == nil {
		cfg = &config.Get().Chatbot
	}
	if cfg.CatalogSource == config.CatalogSourceDatabase && m.repo == nil {
		return fmt.Errorf("catalog source %q needs a database", cfg.CatalogSource)
	}

	var source service.PersonaSource
	if m.repo != nil {
		source = m.repo
	}
	m.service = service.NewChatbotService(service.Options{
		Config:     *cfg,
		Repository: source,
		Responder:  m.opts.Responder,
		Metrics:    m.opts.Metrics,
		Logger:     m.logger,
	})
	return nil
}

// Start loads the configured catalog and starts hot reload.
func (m *Module) Start(ctx context.Context) error {
	return m.service.Start(ctx)
}

// Service returns the chatbot service; nil before Init.
func (m *Module) Service() *service.ChatbotService {
	return m.service
}

// RegisterRoutes registers HTTP routes
func (m *Module) RegisterRoutes(router gin.IRouter) {
	api.RegisterRoutes(router, api.NewHandler(m.service, ModuleVersion))
}

// HealthCheck reports degraded when the catalog is empty.
func (m *Module) HealthCheck(ctx context.Context) modulemanager.HealthStatus {
	status := modulemanager.HealthStatus{
		Status:      modulemanager.HealthStateHealthy,
		LastChecked: time.Now(),
	}
	if m.service == nil {
		status.Status = modulemanager.HealthStateUnknown
		status.Message = "not initialized"
		return status
	}
	n := m.service.Catalog().Len()
	status.Details = map[string]interface{}{"personas": n}
	if n == 0 {
		status.Status = modulemanager.HealthStateDegraded
		status.Message = "persona catalog is empty"
	}
	return status
}

// Shutdown stops the catalog watcher
func (m *Module) Shutdown(ctx context.Context) error {
	if m.service == nil {
		return nil
	}
	return m.service.Stop()
}
