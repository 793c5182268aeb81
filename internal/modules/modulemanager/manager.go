package modulemanager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"
)

// ModuleRegistry manages module registration and initialization. Modules
// are initialized in registration order and shut down in reverse.
type ModuleRegistry struct {
	mu          sync.RWMutex
	modules     []Module
	index       map[string]int
	initialized bool
	logger      hclog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger hclog.Logger) *ModuleRegistry {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ModuleRegistry{
		index:  make(map[string]int),
		logger: logger.Named("modules"),
	}
}

// Registry is the global module registry
var Registry = NewRegistry(nil)

// SetLogger replaces the registry logger.
func (r *ModuleRegistry) SetLogger(logger hclog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger.Named("modules")
}

// Register adds a module to the global registry
func Register(m Module) {
	Registry.Register(m)
}

// Register adds a module to the registry. Registering an id twice replaces
// the earlier module in place.
func (r *ModuleRegistry) Register(m Module) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		r.logger.Warn("module registered after initialization", "id", m.ID())
	}
	if i, ok := r.index[m.ID()]; ok {
		r.modules[i] = m
		return
	}
	r.index[m.ID()] = len(r.modules)
	r.modules = append(r.modules, m)
	r.logger.Debug("module registered", "id", m.ID(), "name", m.Name())
}

// LoadAll initializes all modules in the global registry
func LoadAll(db *gorm.DB) error {
	return Registry.LoadAll(db)
}

// LoadAll migrates and initializes every module.
func (r *ModuleRegistry) LoadAll(db *gorm.DB) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return nil
	}

	r.logger.Info("loading modules", "count", len(r.modules))
	for i, m := range r.modules {
		if err := m.Migrate(db); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", m.Name(), err)
		}
		if err := m.Init(); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", m.Name(), err)
		}
		r.logger.Info("module loaded", "position", i+1, "id", m.ID(), "core", m.Core())
	}

	r.initialized = true
	return nil
}

// StartAll runs Start on every module implementing Starter.
func (r *ModuleRegistry) StartAll(ctx context.Context) error {
	for _, m := range r.Modules() {
		if s, ok := m.(Starter); ok {
			if err := s.Start(ctx); err != nil {
				return fmt.Errorf("failed to start %s: %w", m.Name(), err)
			}
		}
	}
	return nil
}

// ShutdownAll stops modules in reverse registration order and joins their
// errors.
func (r *ModuleRegistry) ShutdownAll(ctx context.Context) error {
	modules := r.Modules()
	var errs []error
	for i := len(modules) - 1; i >= 0; i-- {
		if s, ok := modules[i].(Shutdowner); ok {
			if err := s.Shutdown(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", modules[i].ID(), err))
			}
		}
	}
	return errors.Join(errs...)
}

// Modules returns the registered modules in registration order.
func (r *ModuleRegistry) Modules() []Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Module(nil), r.modules...)
}

// RegisterRoutes registers routes for all modules that implement RouteRegistrar
func RegisterRoutes(router gin.IRouter) {
	Registry.RegisterRoutes(router)
}

// RegisterRoutes registers routes for all modules that implement RouteRegistrar
func (r *ModuleRegistry) RegisterRoutes(router gin.IRouter) {
	for _, m := range r.Modules() {
		if rr, ok := m.(RouteRegistrar); ok {
			r.logger.Debug("registering routes", "id", m.ID())
			rr.RegisterRoutes(router)
		}
	}
}

// HealthCheck collects the health of every module implementing
// HealthChecker, keyed by module id.
func (r *ModuleRegistry) HealthCheck(ctx context.Context) map[string]HealthStatus {
	out := make(map[string]HealthStatus)
	for _, m := range r.Modules() {
		hc, ok := m.(HealthChecker)
		if !ok {
			out[m.ID()] = HealthStatus{Status: HealthStateUnknown, LastChecked: time.Now()}
			continue
		}
		out[m.ID()] = hc.HealthCheck(ctx)
	}
	return out
}
