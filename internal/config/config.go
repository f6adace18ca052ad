package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Tracing   TracingConfig   `toml:"tracing"`
	Booking   BookingConfig   `toml:"booking"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Kafka     KafkaConfig     `toml:"kafka"`
	Outbox    OutboxConfig    `toml:"outbox"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type TracingConfig struct {
	Enabled     bool    `toml:"enabled"`
	Endpoint    string  `toml:"endpoint"`
	Insecure    bool    `toml:"insecure"`
	SampleRatio float64 `toml:"sample_ratio"`
}

type BookingConfig struct {
	HoldTTLMinutes        int    `toml:"hold_ttl_minutes"`
	HoldSweepCron         string `toml:"hold_sweep_cron"`
	HoldSweepGraceMinutes int    `toml:"hold_sweep_grace_minutes"`
	DefaultPhoneRegion    string `toml:"default_phone_region"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type RateLimitConfig struct {
	Enabled       bool `toml:"enabled"`
	HoldPerWindow int  `toml:"hold_per_window"`
	WindowSeconds int  `toml:"window_seconds"`
	FailOpen      bool `toml:"fail_open"`
}

type KafkaConfig struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type OutboxConfig struct {
	Enabled        bool `toml:"enabled"`
	PollIntervalMs int  `toml:"poll_interval_ms"`
	BatchSize      int  `toml:"batch_size"`
}

// Load читает .env (если есть), подставляет переменные окружения в TOML и валидирует результат
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", configPath, err)
	}

	return Parse(os.ExpandEnv(string(data)))
}

// Parse разбирает TOML, применяет значения по умолчанию и валидирует конфигурацию
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode toml: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "scheduling_service"
	}

	if c.Tracing.SampleRatio == 0 {
		c.Tracing.SampleRatio = 1
	}

	if c.Booking.HoldTTLMinutes == 0 {
		c.Booking.HoldTTLMinutes = 10
	}
	if c.Booking.HoldSweepCron == "" {
		c.Booking.HoldSweepCron = "*/5 * * * *"
	}
	if c.Booking.HoldSweepGraceMinutes == 0 {
		c.Booking.HoldSweepGraceMinutes = 60
	}
	if c.Booking.DefaultPhoneRegion == "" {
		c.Booking.DefaultPhoneRegion = "CZ"
	}

	if c.RateLimit.HoldPerWindow == 0 {
		c.RateLimit.HoldPerWindow = 20
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "booking.confirmed"
	}
	if c.Outbox.PollIntervalMs == 0 {
		c.Outbox.PollIntervalMs = 1000
	}
	if c.Outbox.BatchSize == 0 {
		c.Outbox.BatchSize = 100
	}
}

// Validate проверяет обязательные поля и диапазоны значений
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return errors.New("database host is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database name is required")
	}
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server http_port %d is out of range", c.Server.HTTPPort)
	}
	if c.Booking.HoldTTLMinutes < 1 {
		return fmt.Errorf("booking hold_ttl_minutes must be positive, got %d", c.Booking.HoldTTLMinutes)
	}
	if c.Booking.HoldSweepGraceMinutes < 0 {
		return fmt.Errorf("booking hold_sweep_grace_minutes must not be negative, got %d", c.Booking.HoldSweepGraceMinutes)
	}
	if c.RateLimit.Enabled && c.Redis.Addr == "" {
		return errors.New("redis addr is required when rate_limit is enabled")
	}
	if c.Outbox.Enabled && len(c.Kafka.NormalizedBrokers()) == 0 {
		return errors.New("kafka brokers are required when outbox is enabled")
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return errors.New("tracing endpoint is required when tracing is enabled")
	}
	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL строка подключения в формате postgres:// (для golang-migrate)
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// HoldTTL время жизни холда
func (b BookingConfig) HoldTTL() time.Duration {
	return time.Duration(b.HoldTTLMinutes) * time.Minute
}

// SweepGrace сколько истекший холд хранится до удаления
func (b BookingConfig) SweepGrace() time.Duration {
	return time.Duration(b.HoldSweepGraceMinutes) * time.Minute
}

// Window окно ограничения частоты запросов
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// PollInterval период опроса таблицы outbox
func (o OutboxConfig) PollInterval() time.Duration {
	return time.Duration(o.PollIntervalMs) * time.Millisecond
}

// NormalizedBrokers список брокеров без пустых значений (поддерживает "a:9092,b:9092" из env)
func (k KafkaConfig) NormalizedBrokers() []string {
	var out []string
	for _, b := range k.Brokers {
		for _, part := range strings.Split(b, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
