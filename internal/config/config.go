package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
const EnvPrefix = "FIELDBOOKING"

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

var (
	// ErrLoadConfig ошибка чтения или разбора конфигурации
	ErrLoadConfig = errors.New("config: failed to load")

	// ErrInvalidConfig конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid")
)

type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	App          AppConfig          `toml:"app"`
	FieldService FieldServiceConfig `toml:"field_service"`
	Redis        RedisConfig        `toml:"redis"`
	RabbitMQ     RabbitMQConfig     `toml:"rabbitmq"`
	Storage      StorageConfig      `toml:"storage"`
}

// ServerConfig таймауты в секундах
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type AppConfig struct {
	DefaultTimezone    string `toml:"default_timezone"`
	HidePastSlots      bool   `toml:"hide_past_slots"`
	AdvanceBookingDays int    `toml:"advance_booking_days"` // 0 - без ограничения
}

// Location часовой пояс полей без собственного
func (c AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.DefaultTimezone)
}

type FieldServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Address  string `toml:"address"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	PoolSize int    `toml:"pool_size"`
	TTL      int    `toml:"ttl"` // секунды
}

type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

type StorageConfig struct {
	Driver string `toml:"driver"` // postgres | memory
}

// envOverrides секреты и адреса из окружения, например FIELDBOOKING_DB_PASSWORD
type envOverrides struct {
	HTTPPort        *int    `envconfig:"HTTP_PORT"`
	DBHost          *string `envconfig:"DB_HOST"`
	DBPort          *int    `envconfig:"DB_PORT"`
	DBUser          *string `envconfig:"DB_USER"`
	DBPassword      *string `envconfig:"DB_PASSWORD"`
	DBName          *string `envconfig:"DB_NAME"`
	RedisAddress    *string `envconfig:"REDIS_ADDRESS"`
	RedisPassword   *string `envconfig:"REDIS_PASSWORD"`
	RabbitMQURL     *string `envconfig:"RABBITMQ_URL"`
	FieldServiceURL *string `envconfig:"FIELD_SERVICE_URL"`
	StorageDriver   *string `envconfig:"STORAGE_DRIVER"`
	LogLevel        *string `envconfig:"LOG_LEVEL"`
}

// Default значения для ключей, отсутствующих в config.toml
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			ServiceName: "fieldbooking",
			Path:        "/metrics",
		},
		App: AppConfig{
			DefaultTimezone: "UTC",
			HidePastSlots:   true,
		},
		FieldService: FieldServiceConfig{
			Timeout: 5,
		},
		Redis: RedisConfig{
			Address:  "localhost:6379",
			PoolSize: 10,
			TTL:      300,
		},
		RabbitMQ: RabbitMQConfig{
			Exchange: "fieldbooking.events",
		},
		Storage: StorageConfig{
			Driver: StorageDriverPostgres,
		},
	}
}

// Load читает .env (если есть), config.toml и переопределения из окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrLoadConfig, err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	setInt(&c.Server.HTTPPort, env.HTTPPort)
	setString(&c.Database.Host, env.DBHost)
	setInt(&c.Database.Port, env.DBPort)
	setString(&c.Database.User, env.DBUser)
	setString(&c.Database.Password, env.DBPassword)
	setString(&c.Database.DBName, env.DBName)
	setString(&c.Redis.Address, env.RedisAddress)
	setString(&c.Redis.Password, env.RedisPassword)
	setString(&c.RabbitMQ.URL, env.RabbitMQURL)
	setString(&c.FieldService.URL, env.FieldServiceURL)
	setString(&c.Storage.Driver, env.StorageDriver)
	setString(&c.Logs.Level, env.LogLevel)
	return nil
}

// Validate проверяет значения, без которых сервис не стартует
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Port <= 0 {
			return fmt.Errorf("%w: database.port %d", ErrInvalidConfig, c.Database.Port)
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if _, err := c.App.Location(); err != nil {
		return fmt.Errorf("%w: app.default_timezone %q: %v", ErrInvalidConfig, c.App.DefaultTimezone, err)
	}
	if c.App.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: app.advance_booking_days must not be negative", ErrInvalidConfig)
	}

	if c.FieldService.URL == "" {
		return fmt.Errorf("%w: field_service.url is required", ErrInvalidConfig)
	}
	if c.FieldService.Timeout <= 0 {
		return fmt.Errorf("%w: field_service.timeout must be positive", ErrInvalidConfig)
	}

	if c.Redis.Enabled && c.Redis.TTL <= 0 {
		return fmt.Errorf("%w: redis.ttl must be positive", ErrInvalidConfig)
	}
	if c.RabbitMQ.Enabled && (c.RabbitMQ.URL == "" || c.RabbitMQ.Exchange == "") {
		return fmt.Errorf("%w: rabbitmq.url and rabbitmq.exchange are required", ErrInvalidConfig)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
