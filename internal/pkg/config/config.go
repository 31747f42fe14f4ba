package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/samirrijal/routemap/internal/core/domain"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mapbox    MapboxConfig    `mapstructure:"mapbox"`
	Map       MapConfig       `mapstructure:"map"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	AllowOrigins string `mapstructure:"allow_origins"`
}

// MapboxConfig configures the map-tile service. The access token is handed
// to the page as is; an empty or invalid token only degrades tile rendering.
type MapboxConfig struct {
	AccessToken string `mapstructure:"access_token"`
	StyleURL    string `mapstructure:"style_url"`
}

type MapConfig struct {
	Container string  `mapstructure:"container"`
	CenterLng float64 `mapstructure:"center_lng"`
	CenterLat float64 `mapstructure:"center_lat"`
	Zoom      float64 `mapstructure:"zoom"`
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

type ValkeyConfig struct {
	Addr    string `mapstructure:"addr"`
	Enabled bool   `mapstructure:"enabled"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MapOptions returns the widget construction options.
func (c *Config) MapOptions() domain.MapOptions {
	return domain.MapOptions{
		Container: c.Map.Container,
		StyleURL:  c.Mapbox.StyleURL,
		Center:    domain.GeoPoint{Lng: c.Map.CenterLng, Lat: c.Map.CenterLat},
		Zoom:      c.Map.Zoom,
	}
}

// Load reads configuration from .env, file and environment variables.
func Load(service string) (*Config, error) {
	// .env is optional and never overrides variables already set.
	_ = godotenv.Load()

	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.allow_origins", "http://localhost:3000, http://localhost:5173")
	v.SetDefault("mapbox.access_token", "")
	v.SetDefault("mapbox.style_url", domain.DefaultStyleURL)
	v.SetDefault("map.container", domain.DefaultContainer)
	v.SetDefault("map.center_lng", domain.DefaultCenter.Lng)
	v.SetDefault("map.center_lat", domain.DefaultCenter.Lat)
	v.SetDefault("map.zoom", domain.DefaultZoom)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.enabled", false)
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("valkey.enabled", false)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: ROUTEMAP_MAPBOX_ACCESS_TOKEN → mapbox.access_token
	v.SetEnvPrefix("ROUTEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The token is also accepted under the names the front-end tooling uses.
	_ = v.BindEnv("mapbox.access_token",
		"ROUTEMAP_MAPBOX_ACCESS_TOKEN", "MAPBOX_ACCESS_TOKEN", "VITE_MAPBOX_ACCESS_TOKEN")
	_ = v.BindEnv("log.level", "ROUTEMAP_LOG_LEVEL", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
// The Mapbox access token is not checked.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Map.Container == "" {
		errs = append(errs, "map.container is required")
	}
	if c.Mapbox.StyleURL == "" {
		errs = append(errs, "mapbox.style_url is required")
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > 24 {
		errs = append(errs, fmt.Sprintf("map.zoom must be 0-24, got %g", c.Map.Zoom))
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		errs = append(errs, "nats.url is required when nats is enabled")
	}
	if c.Valkey.Enabled && c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required when valkey is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
