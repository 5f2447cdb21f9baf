package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the unified server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Graph    GraphConfig    `yaml:"graph"`
	Language LanguageConfig `yaml:"language"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Sessions SessionsConfig `yaml:"sessions"`
	Security SecurityConfig `yaml:"security"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Env           string `yaml:"env"`  // dev, staging, production
	Port          string `yaml:"port"`
	PublicBaseURL string `yaml:"public_base_url"` // externally reachable base URL, used for the callback URI
}

// GraphConfig holds conferencing platform API settings.
type GraphConfig struct {
	TenantID       string `yaml:"tenant_id"`
	ClientID       string `yaml:"client_id"`
	ClientSecret   string `yaml:"client_secret"`
	Scope          string `yaml:"scope"`
	TokenURL       string `yaml:"token_url"`  // direct token endpoint; empty = derive from tenant or discover
	IssuerURL      string `yaml:"issuer_url"` // OIDC issuer for token endpoint discovery, optional
	CallsEndpoint  string `yaml:"calls_endpoint"`
	BotDisplayName string `yaml:"bot_display_name"`
}

// LanguageConfig holds summarization service settings.
type LanguageConfig struct {
	Endpoint     string `yaml:"endpoint"`
	APIKey       string `yaml:"api_key"`
	MaxSentences int    `yaml:"max_sentences"`
}

// SMTPConfig holds mail relay settings.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// SessionsConfig holds session store eviction settings.
// A zero TTL disables eviction entirely.
type SessionsConfig struct {
	TTL          time.Duration `yaml:"ttl"`
	ReapInterval time.Duration `yaml:"reap_interval"`
}

// SecurityConfig holds API auth settings.
type SecurityConfig struct {
	APIJWTSecret string `yaml:"api_jwt_secret"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level    string `yaml:"level"` // debug, info, warn, error
	FilePath string `yaml:"file_path"`
}

// LoadConfig builds the configuration from environment variables, then applies
// an optional YAML overlay when CALLSCRIBE_CONFIG points at a file.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Env:           getEnv("ENV", "dev"),
			Port:          getEnv("PORT", "5000"),
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:5000"),
		},
		Graph: GraphConfig{
			TenantID:       getEnv("TEAMS_TENANT_ID", ""),
			ClientID:       getEnv("TEAMS_CLIENT_ID", ""),
			ClientSecret:   getEnv("TEAMS_CLIENT_SECRET", ""),
			Scope:          getEnv("GRAPH_SCOPE", "https://graph.microsoft.com/.default"),
			TokenURL:       getEnv("GRAPH_TOKEN_URL", ""),
			IssuerURL:      getEnv("GRAPH_ISSUER_URL", ""),
			CallsEndpoint:  getEnv("GRAPH_CALLS_ENDPOINT", "https://graph.microsoft.com/v1.0/communications/calls"),
			BotDisplayName: getEnv("BOT_DISPLAY_NAME", "Recording Bot"),
		},
		Language: LanguageConfig{
			Endpoint:     getEnv("AZURE_ENDPOINT", ""),
			APIKey:       getEnv("AZURE_KEY", ""),
			MaxSentences: getEnvInt("SUMMARY_MAX_SENTENCES", 5),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_SERVER", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("EMAIL_USER", ""),
			Password: getEnv("EMAIL_PASS", ""),
			From:     getEnv("EMAIL_FROM", os.Getenv("EMAIL_USER")),
		},
		Sessions: SessionsConfig{
			TTL:          getEnvDuration("SESSION_TTL", 0),
			ReapInterval: getEnvDuration("SESSION_REAP_INTERVAL", 10*time.Minute),
		},
		Security: SecurityConfig{
			APIJWTSecret: getEnv("API_JWT_SECRET", ""),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			FilePath: getEnv("LOG_FILE", ""),
		},
	}

	if path := os.Getenv("CALLSCRIBE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	return cfg, nil
}

// ValidateConfig checks settings required for outbound integrations.
func ValidateConfig(cfg *Config) error {
	var problems []string

	if cfg.Graph.ClientID == "" {
		problems = append(problems, "TEAMS_CLIENT_ID is required")
	}
	if cfg.Graph.ClientSecret == "" {
		problems = append(problems, "TEAMS_CLIENT_SECRET is required")
	}
	if cfg.Graph.TenantID == "" && cfg.Graph.TokenURL == "" && cfg.Graph.IssuerURL == "" {
		problems = append(problems, "one of TEAMS_TENANT_ID, GRAPH_TOKEN_URL or GRAPH_ISSUER_URL is required")
	}
	if cfg.Language.Endpoint == "" {
		problems = append(problems, "AZURE_ENDPOINT is required")
	}
	if cfg.Language.APIKey == "" {
		problems = append(problems, "AZURE_KEY is required")
	}
	if cfg.SMTP.Username == "" {
		problems = append(problems, "EMAIL_USER is required")
	}
	if cfg.SMTP.Password == "" {
		problems = append(problems, "EMAIL_PASS is required")
	}
	if cfg.Sessions.TTL < 0 {
		problems = append(problems, "SESSION_TTL must not be negative")
	}
	if cfg.Sessions.TTL > 0 && cfg.Sessions.ReapInterval <= 0 {
		problems = append(problems, "SESSION_REAP_INTERVAL must be positive when SESSION_TTL is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
