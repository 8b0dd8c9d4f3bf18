package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // часовые пояса бизнесов не должны зависеть от tzdata в образе

	"github.com/BurntSushi/toml"
)

// Режимы поставщика данных
const (
	ProviderPostgres = "postgres"
	ProviderHTTP     = "http"
)

var (
	// ErrInvalidConfig возвращается при некорректной конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Provider  ProviderConfig  `toml:"provider"`
	Database  DatabaseConfig  `toml:"database"`
	Backend   BackendConfig   `toml:"backend"`
	Booking   BookingConfig   `toml:"booking"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig параметры Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ProviderConfig откуда берутся услуги, расписание и бронирования
type ProviderConfig struct {
	Mode string `toml:"mode"` // postgres | http
}

// DatabaseConfig параметры подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// BackendConfig внешний backend Turnate (режим http)
type BackendConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig параметры расчета слотов
type BookingConfig struct {
	DefaultTimeZone    string `toml:"default_time_zone"`
	MaxRangeDays       int    `toml:"max_range_days"`
	AdvanceBookingDays int    `toml:"advance_booking_days"` // 0 = без ограничения
}

// Location возвращает часовой пояс по умолчанию
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.DefaultTimeZone)
}

// RateLimitConfig ограничение частоты запросов к публичным маршрутам
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	TrustForwarded    bool    `toml:"trust_forwarded"` // доверять X-Forwarded-For (сервис за прокси)
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			Path:        "/metrics",
			ServiceName: "turnate-booking",
		},
		Provider: ProviderConfig{
			Mode: ProviderPostgres,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Backend: BackendConfig{
			Timeout: 5,
		},
		Booking: BookingConfig{
			DefaultTimeZone:    "America/Argentina/Buenos_Aires",
			MaxRangeDays:       31,
			AdvanceBookingDays: 0,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 5,
			Burst:             20,
		},
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	switch c.Provider.Mode {
	case ProviderPostgres:
		if c.Database.DBName == "" {
			return fmt.Errorf("%w: database.dbname is required for provider %q", ErrInvalidConfig, c.Provider.Mode)
		}
	case ProviderHTTP:
		if c.Backend.URL == "" {
			return fmt.Errorf("%w: backend.url is required for provider %q", ErrInvalidConfig, c.Provider.Mode)
		}
		if c.Backend.Timeout <= 0 {
			return fmt.Errorf("%w: backend.timeout must be positive", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown provider.mode %q", ErrInvalidConfig, c.Provider.Mode)
	}

	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.default_time_zone: %v", ErrInvalidConfig, err)
	}

	if c.Booking.MaxRangeDays <= 0 {
		return fmt.Errorf("%w: booking.max_range_days must be positive", ErrInvalidConfig)
	}

	if c.Booking.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: booking.advance_booking_days must not be negative", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit requires positive requests_per_second and burst", ErrInvalidConfig)
	}

	return nil
}
