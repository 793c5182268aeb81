package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server"`
	Database DatabaseConfig `yaml:"database" json:"database"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	Chatbot  ChatbotConfig  `yaml:"chatbot" json:"chatbot"`
	Metrics  MetricsConfig  `yaml:"metrics" json:"metrics"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host            string        `yaml:"host" json:"host" env:"CINEBOT_HOST"`
	Port            int           `yaml:"port" json:"port" env:"CINEBOT_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout" env:"CINEBOT_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout" env:"CINEBOT_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout" env:"CINEBOT_SHUTDOWN_TIMEOUT"`
	EnableCORS      bool          `yaml:"enable_cors" json:"enable_cors" env:"CINEBOT_ENABLE_CORS"`
	AllowedOrigins  []string      `yaml:"allowed_origins" json:"allowed_origins" env:"CINEBOT_ALLOWED_ORIGINS"`
	Mode            string        `yaml:"mode" json:"mode" env:"CINEBOT_GIN_MODE"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Type            string        `yaml:"type" json:"type" env:"DATABASE_TYPE"`
	URL             string        `yaml:"url" json:"url" env:"DATABASE_URL"`
	Host            string        `yaml:"host" json:"host" env:"POSTGRES_HOST"`
	Port            int           `yaml:"port" json:"port" env:"POSTGRES_PORT"`
	Username        string        `yaml:"username" json:"username" env:"POSTGRES_USER"`
	Password        string        `yaml:"password" json:"-" env:"POSTGRES_PASSWORD"`
	Database        string        `yaml:"database" json:"database" env:"POSTGRES_DB"`
	DataDir         string        `yaml:"data_dir" json:"data_dir" env:"CINEBOT_DATA_DIR"`
	DatabasePath    string        `yaml:"database_path" json:"database_path" env:"CINEBOT_DATABASE_PATH"`
	MaxOpenConns    int           `yaml:"max_open_conns" json:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" json:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" json:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	LogQueries      bool          `yaml:"log_queries" json:"log_queries" env:"DB_LOG_QUERIES"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level" json:"level" env:"CINEBOT_LOG_LEVEL"`
	Format       string `yaml:"format" json:"format" env:"CINEBOT_LOG_FORMAT"`
	EnableColors bool   `yaml:"enable_colors" json:"enable_colors" env:"CINEBOT_LOG_COLORS"`
}

// Catalog sources
const (
	CatalogSourceBuiltin  = "builtin"
	CatalogSourceFile     = "file"
	CatalogSourceDatabase = "database"
)

// ChatbotConfig controls the classification engine and its catalog
type ChatbotConfig struct {
	DefaultLanguage  string        `yaml:"default_language" json:"default_language" env:"CINEBOT_DEFAULT_LANGUAGE"`
	CatalogSource    string        `yaml:"catalog_source" json:"catalog_source" env:"CINEBOT_CATALOG_SOURCE"`
	CatalogFile      string        `yaml:"catalog_file" json:"catalog_file" env:"CINEBOT_CATALOG_FILE"`
	HotReload        bool          `yaml:"hot_reload" json:"hot_reload" env:"CINEBOT_CATALOG_HOT_RELOAD"`
	ReloadDebounce   time.Duration `yaml:"reload_debounce" json:"reload_debounce" env:"CINEBOT_CATALOG_DEBOUNCE"`
	SeedOnStart      bool          `yaml:"seed_on_start" json:"seed_on_start" env:"CINEBOT_SEED_ON_START"`
	RandomSeed       int64         `yaml:"random_seed" json:"random_seed" env:"CINEBOT_RANDOM_SEED"` // 0 seeds from the clock
	AIEnabled        bool          `yaml:"ai_enabled" json:"ai_enabled" env:"CINEBOT_AI_ENABLED"`
	ResponderTimeout time.Duration `yaml:"responder_timeout" json:"responder_timeout" env:"CINEBOT_RESPONDER_TIMEOUT"`
}

// MetricsConfig controls the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled" env:"CINEBOT_METRICS_ENABLED"`
	Path    string `yaml:"path" json:"path" env:"CINEBOT_METRICS_PATH"`
}

// ConfigManager manages application configuration
type ConfigManager struct {
	config     *Config
	configPath string
	watchers   []ConfigWatcher
	mu         sync.RWMutex
}

// ConfigWatcher is called when configuration changes
type ConfigWatcher func(oldConfig, newConfig *Config)

var (
	globalConfigManager *ConfigManager
	configOnce          sync.Once
)

// GetConfigManager returns the global configuration manager instance
func GetConfigManager() *ConfigManager {
	configOnce.Do(func() {
		globalConfigManager = NewConfigManager()
	})
	return globalConfigManager
}

// NewConfigManager creates a new configuration manager
func NewConfigManager() *ConfigManager {
	return &ConfigManager{
		config:   DefaultConfig(),
		watchers: make([]ConfigWatcher, 0),
	}
}

// DefaultConfig returns the default application configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			EnableCORS:      true,
			AllowedOrigins:  []string{"*"},
			Mode:            "release",
		},
		Database: DatabaseConfig{
			Type:            "sqlite",
			Host:            "localhost",
			Port:            5432,
			Username:        "cinebot",
			Database:        "cinebot",
			DataDir:         "./data",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Chatbot: ChatbotConfig{
			DefaultLanguage:  "en",
			CatalogSource:    CatalogSourceBuiltin,
			ReloadDebounce:   500 * time.Millisecond,
			SeedOnStart:      true,
			ResponderTimeout: 15 * time.Second,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// LoadConfig loads configuration from file and environment variables
func (cm *ConfigManager) LoadConfig(configPath string) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	oldConfig := *cm.config
	cm.configPath = configPath

	newConfig := DefaultConfig()

	if configPath != "" && fileExists(configPath) {
		if err := loadFromFile(configPath, newConfig); err != nil {
			return fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := loadStructFromEnv(reflect.ValueOf(newConfig).Elem()); err != nil {
		return fmt.Errorf("failed to load config from environment: %w", err)
	}

	if err := Validate(newConfig); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	applyDerivedConfig(newConfig)
	cm.config = newConfig

	for _, watcher := range cm.watchers {
		go watcher(&oldConfig, newConfig)
	}
	return nil
}

// GetConfig returns a copy of the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	configCopy := *cm.config
	return &configCopy
}

// AddWatcher adds a configuration change watcher
func (cm *ConfigManager) AddWatcher(watcher ConfigWatcher) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.watchers = append(cm.watchers, watcher)
}

// Reload re-reads the file and environment given to the last LoadConfig and
// notifies watchers.
func (cm *ConfigManager) Reload() error {
	cm.mu.RLock()
	path := cm.configPath
	cm.mu.RUnlock()
	return cm.LoadConfig(path)
}

func loadFromFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, config)
	case ".json":
		return json.Unmarshal(data, config)
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}
}

// loadStructFromEnv overrides fields whose env variable is set. Unset
// variables leave the file or default value alone.
func loadStructFromEnv(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := loadStructFromEnv(field); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}

		envValue, ok := os.LookupEnv(envTag)
		if !ok || envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("failed to set field %s from %s: %w", fieldType.Name, envTag, err)
		}
	}

	return nil
}

func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			duration, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(duration))
		} else {
			intVal, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(intVal)
		}
	case reflect.Bool:
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(boolVal)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %v", field.Type())
		}
		values := strings.Split(value, ",")
		for i, v := range values {
			values[i] = strings.TrimSpace(v)
		}
		field.Set(reflect.ValueOf(values))
	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate checks a configuration for values the server cannot run with
func Validate(config *Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Database.Type != "sqlite" && config.Database.Type != "postgres" {
		return fmt.Errorf("unsupported database type: %s", config.Database.Type)
	}

	switch config.Chatbot.CatalogSource {
	case CatalogSourceBuiltin, CatalogSourceDatabase:
	case CatalogSourceFile:
		if config.Chatbot.CatalogFile == "" {
			return fmt.Errorf("chatbot.catalog_file is required when catalog_source is %q", CatalogSourceFile)
		}
	default:
		return fmt.Errorf("unsupported catalog source: %s", config.Chatbot.CatalogSource)
	}

	if config.Chatbot.ReloadDebounce < 0 {
		return fmt.Errorf("invalid reload debounce: %s", config.Chatbot.ReloadDebounce)
	}

	return nil
}

func applyDerivedConfig(config *Config) {
	if config.Database.DatabasePath == "" && config.Database.Type == "sqlite" {
		config.Database.DatabasePath = filepath.Join(config.Database.DataDir, "cinebot.db")
	}

	if config.Chatbot.ReloadDebounce == 0 {
		config.Chatbot.ReloadDebounce = 500 * time.Millisecond
	}

	if config.Metrics.Path == "" {
		config.Metrics.Path = "/metrics"
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Global convenience functions

// Get returns the current global configuration
func Get() *Config {
	return GetConfigManager().GetConfig()
}

// Load loads configuration from the specified path
func Load(configPath string) error {
	return GetConfigManager().LoadConfig(configPath)
}

// AddWatcher adds a global configuration watcher
func AddWatcher(watcher ConfigWatcher) {
	GetConfigManager().AddWatcher(watcher)
}

// Reload re-reads the global configuration from its last path
func Reload() error {
	return GetConfigManager().Reload()
}
