package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	BackendLive = "live"
	BackendMock = "mock"
)

type AppConfig struct {
	API        *APIConfig        `mapstructure:"api"`
	Gin        *GinConfig        `mapstructure:"gin"`
	Postgres   *PostgresConfig   `mapstructure:"postgres"`
	Data       *DataConfig       `mapstructure:"data"`
	Production *ProductionConfig `mapstructure:"production"`
	Loyalty    *LoyaltyConfig    `mapstructure:"loyalty"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	TokenTTL           time.Duration `mapstructure:"token_ttl"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode,
	)
}

// DataConfig selects the entity store. There is no automatic fallback from
// live to mock: a live backend that cannot be reached stops the start-up.
type DataConfig struct {
	Backend string `mapstructure:"backend"`
}

type ProductionConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

type LoyaltyConfig struct {
	PointsPerUnit string `mapstructure:"points_per_unit"`
	Rounding      string `mapstructure:"rounding"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("api.token_ttl", 24*time.Hour)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("data.backend", BackendLive)
	v.SetDefault("production.refresh_interval", 30*time.Second)
	v.SetDefault("loyalty.points_per_unit", "1")
	v.SetDefault("loyalty.rounding", "floor")
}

// Load reads the yaml file at path. Every key can be overridden from the
// environment, with dots replaced by underscores (api.port -> API_PORT).
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf, err := unmarshal(v)
	if err != nil {
		return nil, err
	}

	current = v
	return conf, nil
}

func unmarshal(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *AppConfig) validate() error {
	if c.API == nil || c.API.JWTSigningKey == "" {
		return errors.New("api.jwt_signing_key is required")
	}

	switch c.Data.Backend {
	case BackendLive, BackendMock:
	default:
		return fmt.Errorf("data.backend must be %q or %q, got %q", BackendLive, BackendMock, c.Data.Backend)
	}

	if c.Production.RefreshInterval <= 0 {
		return errors.New("production.refresh_interval must be positive")
	}

	return nil
}

var current *viper.Viper

// Watch reloads the config file on change and hands the new config to
// onChange. Invalid edits are reported through onError and ignored.
func Watch(onChange func(fsnotify.Event, *AppConfig), onError func(error)) {
	if current == nil {
		return
	}

	v := current
	v.OnConfigChange(func(e fsnotify.Event) {
		conf, err := unmarshal(v)
		if err != nil {
			onError(err)
			return
		}
		onChange(e, conf)
	})
	v.WatchConfig()
}
