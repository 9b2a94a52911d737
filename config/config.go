package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa de la herramienta.
type Config struct {
	Stats StatsConfig `yaml:"stats"`
	API   APIConfig   `yaml:"api"`
	Log   LogConfig   `yaml:"log"`
}

// StatsConfig controla qué productos se agregan y con qué ventana.
type StatsConfig struct {
	Products          []string `yaml:"products"`
	RefreshTTLSeconds int      `yaml:"refresh_ttl_seconds"` // cache de stats, protege el rate limit
	RangeDays         int      `yaml:"range_days"`          // ventana hacia atrás desde ahora
}

// APIConfig contiene el base URL y las credenciales de Coinbase Pro.
// Las credenciales solo se cargan de variables de entorno, nunca del YAML.
type APIConfig struct {
	BaseURL    string `yaml:"base_url"`
	Key        string `yaml:"-"`
	Passphrase string `yaml:"-"`
	Secret     string `yaml:"-"` // base64-encoded, tal como lo entrega el exchange
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Si el archivo YAML no existe, se usan solo defaults y entorno.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	case os.IsNotExist(err):
		// opcional: todo tiene default o viene del entorno
	default:
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// RefreshTTL devuelve el TTL del cache como time.Duration.
func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.Stats.RefreshTTLSeconds) * time.Second
}

// Range devuelve la ventana de tiempo [start, end] terminando ahora.
func (c *Config) Range(now time.Time) (start, end time.Time) {
	end = now.UTC()
	start = end.AddDate(0, 0, -c.Stats.RangeDays)
	return start, end
}

// HasCredentials reporta si las tres credenciales están presentes.
func (c *Config) HasCredentials() bool {
	return c.API.Key != "" && c.API.Passphrase != "" && c.API.Secret != ""
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("COINBASE_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("COINBASE_PASSPHRASE"); v != "" {
		cfg.API.Passphrase = v
	}
	if v := os.Getenv("COINBASE_SECRET"); v != "" {
		cfg.API.Secret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if len(cfg.Stats.Products) == 0 {
		cfg.Stats.Products = []string{"BTC-USD", "ETH-USD", "LTC-USD"}
	}
	if cfg.Stats.RefreshTTLSeconds <= 0 {
		cfg.Stats.RefreshTTLSeconds = 30
	}
	if cfg.Stats.RangeDays <= 0 {
		cfg.Stats.RangeDays = 365
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.pro.coinbase.com"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
