package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Tipos de backend para el storage de sesión.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreFile     = "file"
)

// Panel es la configuración del panel web (cmd/panel).
type Panel struct {
	Port string `env:"PORT" envDefault:"8080"`

	API API

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	AppName   string `env:"APP_NAME" envDefault:"nutri-admin"`

	SessionStore        string `env:"SESSION_STORE" envDefault:"memory"`
	DBDSN               string `env:"DB_DSN"`
	SQLitePath          string `env:"SQLITE_PATH" envDefault:"data/panel.db"`
	SessionFile         string `env:"SESSION_FILE" envDefault:"data/sessions.json"`
	SessionCookie       string `env:"SESSION_COOKIE" envDefault:"panel_session"`
	SessionCookieSecure bool   `env:"SESSION_COOKIE_SECURE" envDefault:"false"`

	Tracing Tracing
}

// Tracing usa los nombres de variables estándar de OpenTelemetry.
type Tracing struct {
	Endpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" yaml:"endpoint"`
	Disabled bool   `env:"OTEL_SDK_DISABLED" yaml:"disabled"`
}

// API apunta al backend externo.
type API struct {
	BaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:3000" yaml:"base_url"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s" yaml:"timeout"`
}

// CLI es la configuración de panelctl. Se arma con env y, si existe,
// un archivo YAML que pisa los valores.
type CLI struct {
	API API `yaml:"api"`

	SessionFile string  `env:"PANELCTL_SESSION_FILE" yaml:"session_file"`
	LogLevel    string  `env:"LOG_LEVEL" envDefault:"warn" yaml:"log_level"`
	Tracing     Tracing `yaml:"tracing"`
}

// ParseEnv carga configuración desde variables de entorno.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotEnv carga .env si existe. Un archivo ausente no es error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// LoadPanel lee la config del panel web y normaliza valores.
func LoadPanel() (Panel, error) {
	var cfg Panel
	if err := ParseEnv(&cfg); err != nil {
		return Panel{}, err
	}
	cfg.SessionStore = strings.ToLower(strings.TrimSpace(cfg.SessionStore))
	switch cfg.SessionStore {
	case StoreMemory, StoreFile, StoreSQLite:
	case StorePostgres:
		if strings.TrimSpace(cfg.DBDSN) == "" {
			return Panel{}, errors.New("config: DB_DSN is required when SESSION_STORE=postgres")
		}
	default:
		return Panel{}, fmt.Errorf("config: unknown SESSION_STORE %q", cfg.SessionStore)
	}
	return cfg, nil
}

// LoadCLI lee env y luego el YAML opcional en path.
func LoadCLI(path string) (CLI, error) {
	var cfg CLI
	if err := ParseEnv(&cfg); err != nil {
		return CLI{}, err
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return CLI{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return CLI{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Exitf escribe a stderr y termina con código 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
