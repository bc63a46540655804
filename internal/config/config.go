package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/avlasov/PFR-BookingService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Booking        BookingConfig        `toml:"booking"`
	Workers        WorkersConfig        `toml:"workers"`
	PaymentGateway PaymentGatewayConfig `toml:"payment_gateway"`
	MQ             MQConfig             `toml:"mq"`
	Admin          AdminConfig          `toml:"admin"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// DSN возвращает строку подключения к базе данных
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// BookingConfig временные правила бронирования, минуты
type BookingConfig struct {
	MinLeadTimeMinutes        int `toml:"min_lead_time_minutes"`
	MinDurationMinutes        int `toml:"min_duration_minutes"`
	MaxDurationMinutes        int `toml:"max_duration_minutes"`
	CancellationCutoffMinutes int `toml:"cancellation_cutoff_minutes"`
	PendingTTLMinutes         int `toml:"pending_ttl_minutes"`
}

// Rules возвращает доменные правила бронирования.
// Незаполненные значения берутся из доменных значений по умолчанию.
func (b *BookingConfig) Rules() domain.BookingRules {
	rules := domain.DefaultBookingRules()

	if b.MinLeadTimeMinutes > 0 {
		rules.MinLeadTime = time.Duration(b.MinLeadTimeMinutes) * time.Minute
	}
	if b.MinDurationMinutes > 0 {
		rules.MinDuration = time.Duration(b.MinDurationMinutes) * time.Minute
	}
	if b.MaxDurationMinutes > 0 {
		rules.MaxDuration = time.Duration(b.MaxDurationMinutes) * time.Minute
	}
	if b.CancellationCutoffMinutes > 0 {
		rules.CancellationCutoff = time.Duration(b.CancellationCutoffMinutes) * time.Minute
	}
	if b.PendingTTLMinutes > 0 {
		rules.PendingTTL = time.Duration(b.PendingTTLMinutes) * time.Minute
	}

	return rules
}

// WorkersConfig интервалы фоновых процессов, секунды
type WorkersConfig struct {
	SweepInterval    int `toml:"sweep_interval"`
	DispatchInterval int `toml:"dispatch_interval"`
}

// PaymentGatewayConfig настройки клиента платежного шлюза
type PaymentGatewayConfig struct {
	URL      string `toml:"url"`
	APIKey   string `toml:"api_key"`
	Currency string `toml:"currency"`
	Timeout  int    `toml:"timeout"` // секунды
}

// MQConfig настройки публикации событий в RabbitMQ
type MQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// AdminConfig список администраторов сервиса
type AdminConfig struct {
	UserIDs []int64 `toml:"user_ids"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}

	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}

	if cfg.Logs.File == "" {
		cfg.Logs.File = "logs/app.log"
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}

	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "pfr-booking-service"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	if cfg.Workers.SweepInterval == 0 {
		cfg.Workers.SweepInterval = 60
	}
	if cfg.Workers.DispatchInterval == 0 {
		cfg.Workers.DispatchInterval = 15
	}

	if cfg.PaymentGateway.Currency == "" {
		cfg.PaymentGateway.Currency = "RUB"
	}
	if cfg.PaymentGateway.Timeout == 0 {
		cfg.PaymentGateway.Timeout = 10
	}
}
