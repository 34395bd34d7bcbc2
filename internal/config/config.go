// Package config handles loading and validation of service configuration.
// Supports both development (env vars, .env, config file) and production
// (Secret Manager) modes.
package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"wc-invoice-gateway/internal/plugin"
	"wc-invoice-gateway/internal/settings"
)

// Settings sources.
const (
	SourceFile   = "file"
	SourceMemory = "memory"
	SourceSecret = "secret"
)

// Config holds all service configuration.
// Environment determines whether store credentials load from env vars
// (development) or Secret Manager (production).
type Config struct {
	// Server settings
	Port        string `json:"port" yaml:"port"`
	Environment string `json:"environment" yaml:"environment" validate:"oneof=development production test"`
	LogLevel    string `json:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`

	// GCP settings (required in production)
	GCPProject string `json:"gcp_project" yaml:"gcp_project"`
	StoreID    string `json:"store_id" yaml:"store_id"` // Secret Manager secret holding Store

	// Store is the WooCommerce store the gateway is attached to.
	Store StoreConfig `json:"store" yaml:"store"`

	// Plugin locates the plugin's public URL and local assets.
	Plugin PluginConfig `json:"plugin" yaml:"plugin"`

	// Settings selects where the gateway option bucket is read from.
	Settings SettingsConfig `json:"settings" yaml:"settings"`

	// CORSOrigins are the storefront origins allowed to call the service.
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins"`
}

// StoreConfig contains the store connection.
// In production, this is loaded from Secret Manager as JSON.
type StoreConfig struct {
	URL       string `json:"store_url" yaml:"store_url" validate:"required,http_url"`
	AdminURL  string `json:"admin_url,omitempty" yaml:"admin_url" validate:"omitempty,http_url"` // Derived from URL if not set
	APIKey    string `json:"api_key" yaml:"api_key" validate:"required"`
	APISecret string `json:"api_secret" yaml:"api_secret" validate:"required"`

	TLSFingerprint bool `json:"tls_fingerprint,omitempty" yaml:"tls_fingerprint"`
}

// PluginConfig locates the plugin.
type PluginConfig struct {
	URL  string `json:"url" yaml:"url" validate:"omitempty,http_url"` // Derived from store URL if not set
	Dir  string `json:"dir" yaml:"dir"`                               // holds assets/ and languages/
	File string `json:"file" yaml:"file"`                             // plugin basename
}

// SettingsConfig selects the settings store.
type SettingsConfig struct {
	Source       string            `json:"source" yaml:"source" validate:"oneof=file memory secret"`
	File         string            `json:"file,omitempty" yaml:"file" validate:"required_if=Source file"`
	Secret       string            `json:"secret,omitempty" yaml:"secret"`
	TruthyTokens []string          `json:"truthy_tokens,omitempty" yaml:"truthy_tokens"`
	Values       settings.Settings `json:"values,omitempty" yaml:"values"` // initial bucket for the memory source
}

// Load reads configuration from file, environment, or Secret Manager.
// Priority: CONFIG_FILE (if set) → ENV vars (seeded from .env outside
// production) / Secret Manager.
// Validates all required fields and returns an error if any are missing.
func Load(ctx context.Context) (*Config, error) {
	if os.Getenv("ENVIRONMENT") != "production" {
		if err := loadDotEnv(envOrDefault("ENV_FILE", ".env")); err != nil {
			return nil, err
		}
	}

	// If CONFIG_FILE is set, load everything from the file
	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		return loadFromFile(configPath)
	}

	cfg := &Config{
		Port:        envOrDefault("PORT", "8080"),
		Environment: envOrDefault("ENVIRONMENT", "development"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		GCPProject:  os.Getenv("GCP_PROJECT"),
		StoreID:     os.Getenv("STORE_ID"),
		Plugin: PluginConfig{
			URL:  os.Getenv("PLUGIN_URL"),
			Dir:  os.Getenv("PLUGIN_DIR"),
			File: os.Getenv("PLUGIN_FILE"),
		},
		Settings: SettingsConfig{
			Source:       os.Getenv("SETTINGS_SOURCE"),
			File:         os.Getenv("SETTINGS_FILE"),
			Secret:       os.Getenv("SETTINGS_SECRET"),
			TruthyTokens: splitList(os.Getenv("TRUTHY_TOKENS")),
		},
		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
	}

	// Load store config based on environment
	var err error
	if cfg.Environment == "production" {
		if cfg.GCPProject == "" {
			return nil, fmt.Errorf("GCP_PROJECT required in production environment")
		}
		if cfg.StoreID == "" {
			return nil, fmt.Errorf("STORE_ID required in production environment")
		}
		err = cfg.loadFromSecretManager(ctx)
	} else {
		cfg.loadFromEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("loading store config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadDotEnv seeds the environment from path. Variables already set win;
// a missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// loadFromFile reads all configuration from a JSON or YAML file.
// Used for local development to avoid multiple ENV vars.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.Port = withDefault(cfg.Port, "8080")
	cfg.Environment = withDefault(cfg.Environment, "development")
	cfg.LogLevel = withDefault(cfg.LogLevel, "info")

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// withDefault returns val if non-empty, otherwise defaultVal.
func withDefault(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}

// loadFromSecretManager fetches the store config from GCP Secret Manager.
// Secret name format: projects/{project}/secrets/{store_id}/versions/latest
func (c *Config) loadFromSecretManager(ctx context.Context) error {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("creating secret manager client: %w", err)
	}
	defer client.Close()

	secretName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest",
		c.GCPProject, c.StoreID)

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretName,
	})
	if err != nil {
		return fmt.Errorf("accessing secret %s: %w", secretName, err)
	}

	if err := json.Unmarshal(result.Payload.Data, &c.Store); err != nil {
		return fmt.Errorf("parsing secret JSON: %w", err)
	}

	return nil
}

// loadFromEnv reads the store config from individual environment variables.
// Used in development mode for local testing.
func (c *Config) loadFromEnv() {
	c.Store = StoreConfig{
		URL:       os.Getenv("STORE_URL"),
		AdminURL:  os.Getenv("STORE_ADMIN_URL"),
		APIKey:    os.Getenv("WC_CONSUMER_KEY"),
		APISecret: os.Getenv("WC_CONSUMER_SECRET"),

		TLSFingerprint: os.Getenv("STORE_TLS_FINGERPRINT") == "true",
	}
}

// applyDefaults derives the values that follow from the store URL.
func (c *Config) applyDefaults() {
	base := strings.TrimSuffix(c.Store.URL, "/")
	if c.Store.AdminURL == "" && base != "" {
		c.Store.AdminURL = base + "/wp-admin/"
	}
	if c.Plugin.URL == "" && base != "" {
		c.Plugin.URL = base + "/wp-content/plugins/wc-invoice-gateway"
	}
	c.Plugin.Dir = withDefault(c.Plugin.Dir, ".")
	c.Plugin.File = withDefault(c.Plugin.File, plugin.DefaultFile)

	if c.Settings.Source == "" {
		c.Settings.Source = SourceMemory
		if c.Settings.File != "" {
			c.Settings.Source = SourceFile
		}
	}
	if c.Settings.Source == SourceSecret {
		c.Settings.Secret = withDefault(c.Settings.Secret, settings.OptionName)
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report config keys rather than Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validate checks that all required configuration fields are present.
func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating config: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return errors.New(strings.Join(msgs, "; "))
	}

	if c.Settings.Source == SourceSecret && c.GCPProject == "" {
		return fmt.Errorf("gcp_project is required for the secret settings source")
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fe.Field() + " is required"
	case "http_url":
		return fe.Field() + " must be an http(s) URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// SettingsStore returns the store the gateway settings are read from.
func (c *Config) SettingsStore() settings.Store {
	switch c.Settings.Source {
	case SourceFile:
		return &settings.FileStore{Path: c.Settings.File}
	case SourceSecret:
		return settings.NewSecretStore(c.GCPProject, c.Settings.Secret)
	default:
		return settings.NewMemoryStore(c.Settings.Values)
	}
}

// SettingsOptions returns the resolver options from the configuration.
func (c *Config) SettingsOptions() []settings.Option {
	if len(c.Settings.TruthyTokens) == 0 {
		return nil
	}
	return []settings.Option{settings.WithTruthyTokens(c.Settings.TruthyTokens...)}
}

// splitList splits a comma-separated env value, dropping empty entries.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// envOrDefault returns the environment variable value or the default if not set.
func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
