package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 3000
	defaultEnv        = "development"
	defaultSiteURL    = "http://localhost:3000"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "ndu_attendance"
	defaultRedisURL   = "redis://localhost:6379/0"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	SiteURL        string         `yaml:"site_url"`
	DSN            string         `yaml:"dsn"` // MySQL DSN, overrides database section
	Database       DatabaseConfig `yaml:"database"`
	RedisURL       string         `yaml:"redis_url"`
	JWTSecret      string         `yaml:"jwt_secret"`
	QRTokenTTLMin  int            `yaml:"qr_token_ttl_minutes"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
}

// DatabaseConfig describes the MySQL connection when no DSN is given.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// Load reads and validates the YAML config. The signing secret is the one
// hard startup requirement: without it the service must not come up at all
// rather than issue forgeable tokens.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case os.IsNotExist(err):
		// Environment-only deployment.
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("jwt_secret is not configured (set jwt_secret in config or NDU_JWT_SECRET)")
	}
	if cfg.QRTokenTTLMin < 0 {
		return nil, fmt.Errorf("invalid qr_token_ttl_minutes %d, expected >= 0", cfg.QRTokenTTLMin)
	}

	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:     defaultPort,
		Env:      defaultEnv,
		SiteURL:  defaultSiteURL,
		RedisURL: defaultRedisURL,
		Database: DatabaseConfig{
			Host:     defaultDBHost,
			Port:     defaultDBPort,
			User:     defaultDBUser,
			Password: defaultDBPassword,
			Name:     defaultDBName,
		},
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("NDU_JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("NDU_DSN"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("NDU_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("NDU_SITE_URL"); v != "" {
		cfg.SiteURL = v
	}
}

// DSNValue returns the configured DSN, or one assembled from the database
// section.
func (c *AppConfig) DSNValue() string {
	if strings.TrimSpace(c.DSN) != "" {
		return c.DSN
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

// QRTokenTTL returns the configured token validity window, or zero when the
// codec default should apply.
func (c *AppConfig) QRTokenTTL() time.Duration {
	return time.Duration(c.QRTokenTTLMin) * time.Minute
}

// ScanURL builds the URL encoded into session QR codes.
func (c *AppConfig) ScanURL(token string) string {
	return strings.TrimRight(c.SiteURL, "/") + "/attendance/scan?token=" + token
}

func (c *AppConfig) IsDev() bool {
	return !strings.EqualFold(strings.TrimSpace(c.Env), "production")
}
