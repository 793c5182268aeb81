package chatbotmodule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/cinebot/internal/config"
	"github.com/mantonx/cinebot/internal/modules/modulemanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestModule_DatabaseCatalog(t *testing.T) {
	cfg := config.ChatbotConfig{
		DefaultLanguage: "en",
		CatalogSource:   config.CatalogSourceDatabase,
		SeedOnStart:     true,
	}
	m := NewModule(Options{Config: &cfg})

	reg := modulemanager.NewRegistry(nil)
	reg.Register(m)
	require.NoError(t, reg.LoadAll(setupTestDB(t)))
	require.NoError(t, reg.StartAll(context.Background()))
	defer reg.ShutdownAll(context.Background())

	assert.Equal(t, 51, m.Service().Catalog().Len())
	health := m.HealthCheck(context.Background())
	assert.Equal(t, modulemanager.HealthStateHealthy, health.Status)
	assert.Equal(t, 51, health.Details["personas"])
}

func TestModule_UpsertPersonaWritesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.ChatbotConfig{
		DefaultLanguage: "en",
		CatalogSource:   config.CatalogSourceDatabase,
		SeedOnStart:     true,
	}
	m := NewModule(Options{Config: &cfg})

	reg := modulemanager.NewRegistry(nil)
	reg.Register(m)
	require.NoError(t, reg.LoadAll(setupTestDB(t)))
	require.NoError(t, reg.StartAll(context.Background()))
	defer reg.ShutdownAll(context.Background())

	router := gin.New()
	reg.RegisterRoutes(router)

	put := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/api/chatbot/personas/noir_detective", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := put(`{"display_name":"Noir Detective","contexts":["thriller"],"emotions":["thoughtful"]}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 52, m.Service().Catalog().Len())

	stored, err := m.repo.Get(context.Background(), "noir_detective")
	require.NoError(t, err)
	assert.Equal(t, "Noir Detective", stored.DisplayName)

	w = put(`{"display_name":"Hard-Boiled Detective","contexts":["thriller","mystery"],"emotions":["confident"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	p, err := m.Service().Persona("noir_detective")
	require.NoError(t, err)
	assert.Equal(t, "Hard-Boiled Detective", p.DisplayName)
	assert.Equal(t, 52, m.Service().Catalog().Len())
}

func TestModule_DatabaseSourceWithoutDB(t *testing.T) {
	cfg := config.ChatbotConfig{CatalogSource: config.CatalogSourceDatabase}
	m := NewModule(Options{Config: &cfg})

	require.NoError(t, m.Migrate(nil))
	assert.Error(t, m.Init())
}

func TestModule_BuiltinWithoutDB(t *testing.T) {
	cfg := config.ChatbotConfig{CatalogSource: config.CatalogSourceBuiltin}
	m := NewModule(Options{Config: &cfg})

	assert.Equal(t, modulemanager.HealthStateUnknown, m.HealthCheck(context.Background()).Status)
	require.NoError(t, m.Migrate(nil))
	require.NoError(t, m.Init())
	require.NoError(t, m.Start(context.Background()))
	assert.Equal(t, 51, m.Service().Catalog().Len())
	assert.NoError(t, m.Shutdown(context.Background()))
}
