package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton for backwards compatibility with envs package
var globalConfig *Config

// Config holds all environment backed configuration for support-api.
type Config struct {
	// HTTP Server
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"9091"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	// Auth
	JWKSURL             string        `env:"JWKS_URL"`
	OIDCDiscoveryURL    string        `env:"OIDC_DISCOVERY_URL"`
	Issuer              string        `env:"ISSUER,notEmpty"`
	Audience            string        `env:"AUDIENCE,notEmpty"`
	RefreshJWKSInterval time.Duration `env:"JWKS_REFRESH_INTERVAL" envDefault:"5m"`
	AuthClockSkew       time.Duration `env:"AUTH_CLOCK_SKEW" envDefault:"30s"`

	// Identity provider admin API (user provisioning)
	IdentityBaseURL      string `env:"IDENTITY_BASE_URL,notEmpty"`
	IdentityServiceToken string `env:"IDENTITY_SERVICE_TOKEN"`

	// PostgreSQL
	DBPostgresqlWriteDSN string `env:"DB_POSTGRESQL_WRITE_DSN"`
	DBPostgresqlRead1DSN string `env:"DB_POSTGRESQL_READ1_DSN"`

	// Janitor
	JanitorEnabled                bool          `env:"JANITOR_ENABLED" envDefault:"true"`
	JanitorIntervalMinutes        int           `env:"JANITOR_INTERVAL_MINUTES" envDefault:"1"`
	JanitorPackageIntervalMinutes int           `env:"JANITOR_PACKAGE_INTERVAL_MINUTES" envDefault:"60"`
	ConversationMaxAge            time.Duration `env:"CONVERSATION_MAX_AGE" envDefault:"720h"`
	CanceledPackageMaxAge         time.Duration `env:"CANCELED_PACKAGE_MAX_AGE" envDefault:"168h"`
	JanitorSweepTimeout           time.Duration `env:"JANITOR_SWEEP_TIMEOUT" envDefault:"5m"`
	JanitorDeleteConcurrent       int           `env:"JANITOR_DELETE_CONCURRENCY" envDefault:"10"`

	// Mailer webhook
	MailerWebhookURL string        `env:"MAILER_WEBHOOK_URL"`
	MailerSecret     string        `env:"MAILER_SECRET"`
	MailerTimeout    time.Duration `env:"MAILER_TIMEOUT" envDefault:"5s"`

	// Agent seeding
	AgentSeedEnabled bool             `env:"AGENT_SEED_ENABLED" envDefault:"false"`
	AgentSeedSet     string           `env:"AGENT_SEED_SET" envDefault:"default"`
	AgentSeedFile    string           `env:"AGENT_SEED_FILE"`
	AgentBootstrap   *AgentSeedConfig `env:"-"`

	// Observability / Logging
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	OTLPEndpoint     string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string        `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"support-api"`
	ServiceNamespace string        `env:"SERVICE_NAMESPACE" envDefault:"freightdesk"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate   bool `env:"AUTO_MIGRATE" envDefault:"true"`
	EnableSwagger bool `env:"ENABLE_SWAGGER" envDefault:"true"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.AgentSeedSet = strings.TrimSpace(cfg.AgentSeedSet)
	if cfg.AgentSeedSet == "" {
		cfg.AgentSeedSet = "default"
	}

	if cfg.AgentSeedEnabled {
		seedFile := strings.TrimSpace(cfg.AgentSeedFile)
		if seedFile == "" {
			seedFile = DefaultAgentSeedFile
		}
		bootstrap, err := LoadAgentSeedConfig(seedFile)
		if err != nil {
			return nil, fmt.Errorf("load agent seeds: %w", err)
		}
		cfg.AgentBootstrap = bootstrap
		if len(bootstrap.AgentsForSet(cfg.AgentSeedSet)) == 0 {
			return nil, fmt.Errorf("agent seed set %q is missing or empty in %s", cfg.AgentSeedSet, seedFile)
		}
	}

	if cfg.JWKSURL == "" && cfg.OIDCDiscoveryURL == "" {
		return nil, errors.New("either JWKS_URL or OIDC_DISCOVERY_URL must be provided")
	}

	if cfg.JWKSURL != "" {
		if _, err := url.ParseRequestURI(cfg.JWKSURL); err != nil {
			return nil, fmt.Errorf("invalid JWKS_URL: %w", err)
		}
	}

	if cfg.OIDCDiscoveryURL != "" {
		if _, err := url.ParseRequestURI(cfg.OIDCDiscoveryURL); err != nil {
			return nil, fmt.Errorf("invalid OIDC_DISCOVERY_URL: %w", err)
		}
	}

	if _, err := url.ParseRequestURI(cfg.IdentityBaseURL); err != nil {
		return nil, fmt.Errorf("invalid IDENTITY_BASE_URL: %w", err)
	}

	if cfg.MailerWebhookURL != "" {
		if _, err := url.ParseRequestURI(cfg.MailerWebhookURL); err != nil {
			return nil, fmt.Errorf("invalid MAILER_WEBHOOK_URL: %w", err)
		}
	}

	if cfg.JanitorDeleteConcurrent < 1 {
		cfg.JanitorDeleteConcurrent = 1
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	// Update global singletons for backwards compatibility
	globalConfig = cfg

	return cfg, nil
}

// ResolveJWKSURL returns the JWKS endpoint using either the explicit JWKS_URL or the OIDC discovery document.
func (c *Config) ResolveJWKSURL(ctx context.Context) (string, error) {
	if c.JWKSURL != "" {
		return c.JWKSURL, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.OIDCDiscoveryURL, nil)
	if err != nil {
		return "", fmt.Errorf("oidc discovery request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch oidc discovery: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oidc discovery unexpected status: %s", resp.Status)
	}

	var doc struct {
		JWKSURL string `json:"jwks_uri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("decode oidc discovery: %w", err)
	}

	if doc.JWKSURL == "" {
		return "", errors.New("jwks_uri not found in discovery document")
	}

	return doc.JWKSURL, nil
}

// GetDatabaseWriteDSN returns the primary connection string. The
// dedicated write DSN wins over DATABASE_URL when both are set.
func (c *Config) GetDatabaseWriteDSN() string {
	if c.DBPostgresqlWriteDSN != "" {
		return c.DBPostgresqlWriteDSN
	}
	return c.DatabaseURL
}

// GetDatabaseReadDSN returns the replica connection string, empty when
// no replica is configured.
func (c *Config) GetDatabaseReadDSN() string {
	return c.DBPostgresqlRead1DSN
}

// GetGlobal returns the global config instance for backwards compatibility.
// Deprecated: Use dependency injection with Load() instead.
func GetGlobal() *Config {
	return globalConfig
}

// AgentSeedEntries returns the configured agent definitions for the active set.
func (c *Config) AgentSeedEntries() []AgentSeedEntry {
	if c == nil || c.AgentBootstrap == nil {
		return nil
	}
	return c.AgentBootstrap.AgentsForSet(c.AgentSeedSet)
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
