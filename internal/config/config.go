package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Типы key-value хранилища
const (
	StoreTypePostgres = "postgres"
	StoreTypeMemory   = "memory"
)

// Config представляет полную конфигурацию приложения
type Config struct {
	Logs     LogsConfig     `toml:"logs"`
	Server   ServerConfig   `toml:"server"`
	Store    StoreConfig    `toml:"store"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Scoring  ScoringConfig  `toml:"scoring"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Worker   WorkerConfig   `toml:"worker"`
}

// LogsConfig содержит настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// StoreConfig содержит настройки key-value хранилища
type StoreConfig struct {
	// Type тип хранилища: postgres или memory (запуск без БД)
	Type string `toml:"type"`
	// QueryTimeout таймаут одного обращения к хранилищу (в миллисекундах).
	// По истечении обращение считается промахом, а не ошибкой запроса
	QueryTimeout int `toml:"query_timeout"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
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
}

// AuthConfig содержит секреты проверки подписи запроса.
// Значения по умолчанию повторяют эталонное задание, но считаются
// политикой развертывания, а не константами системы
type AuthConfig struct {
	Salt       string `toml:"salt"`
	AdminSalt  string `toml:"admin_salt"`
	AdminLogin string `toml:"admin_login"`
}

// ScoringConfig содержит политику вычисления скоринга
type ScoringConfig struct {
	// CacheTTL время жизни закешированного скоринга (в секундах)
	CacheTTL int `toml:"cache_ttl"`
	// AdminScore фиксированный скоринг для администратора
	AdminScore float64 `toml:"admin_score"`
	// Веса слагаемых скоринга
	PhoneWeight    float64 `toml:"phone_weight"`
	EmailWeight    float64 `toml:"email_weight"`
	BirthdayWeight float64 `toml:"birthday_weight"`
	NameWeight     float64 `toml:"name_weight"`
}

// MetricsConfig содержит настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// WorkerConfig содержит настройки фоновой очистки хранилища
type WorkerConfig struct {
	// CleanupInterval интервал удаления просроченных записей (в секундах)
	CleanupInterval int `toml:"cleanup_interval"`
}

// DSN формирует строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из TOML файла с поддержкой переменных окружения
func Load(path string) (*Config, error) {
	var cfg Config

	// Читаем TOML файл
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	// Переопределяем значения из переменных окружения (если они установлены)
	overrideFromEnv(&cfg)

	// Валидация конфигурации
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// overrideFromEnv переопределяет значения из переменных окружения
func overrideFromEnv(cfg *Config) {
	// Database
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.DBName = v
	}
	if v := os.Getenv("DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}

	// Server
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}

	// Logs
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logs.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Logs.File = v
	}

	// Store
	if v := os.Getenv("STORE_TYPE"); v != "" {
		cfg.Store.Type = v
	}
	if v := os.Getenv("STORE_QUERY_TIMEOUT"); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			cfg.Store.QueryTimeout = timeout
		}
	}

	// Auth: секреты обычно приходят из окружения, а не из файла
	if v := os.Getenv("AUTH_SALT"); v != "" {
		cfg.Auth.Salt = v
	}
	if v := os.Getenv("AUTH_ADMIN_SALT"); v != "" {
		cfg.Auth.AdminSalt = v
	}
	if v := os.Getenv("AUTH_ADMIN_LOGIN"); v != "" {
		cfg.Auth.AdminLogin = v
	}

	// Metrics
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}
	if v := os.Getenv("METRICS_SERVICE_NAME"); v != "" {
		cfg.Metrics.ServiceName = v
	}

	// Worker
	if v := os.Getenv("WORKER_CLEANUP_INTERVAL"); v != "" {
		if interval, err := strconv.Atoi(v); err == nil {
			cfg.Worker.CleanupInterval = interval
		}
	}
}

// validate проверяет корректность конфигурации
func validate(cfg *Config) error {
	// Store validation
	if cfg.Store.Type == "" {
		cfg.Store.Type = StoreTypePostgres
	}
	if cfg.Store.Type != StoreTypePostgres && cfg.Store.Type != StoreTypeMemory {
		return fmt.Errorf("store type must be %q or %q", StoreTypePostgres, StoreTypeMemory)
	}
	if cfg.Store.QueryTimeout == 0 {
		cfg.Store.QueryTimeout = 500 // 500ms
	}

	// Database validation: БД нужна только postgres-хранилищу
	if cfg.Store.Type == StoreTypePostgres {
		if cfg.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
			return fmt.Errorf("database port must be between 1 and 65535")
		}
		if cfg.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if cfg.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	}

	// Server validation
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("HTTP port must be between 1 and 65535")
	}

	// Logs validation
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info" // default
	}

	// Auth defaults
	if cfg.Auth.Salt == "" {
		cfg.Auth.Salt = "Otus"
	}
	if cfg.Auth.AdminSalt == "" {
		cfg.Auth.AdminSalt = "42"
	}
	if cfg.Auth.AdminLogin == "" {
		cfg.Auth.AdminLogin = "admin"
	}

	// Scoring defaults
	if cfg.Scoring.CacheTTL == 0 {
		cfg.Scoring.CacheTTL = 3600 // 1 hour
	}
	if cfg.Scoring.AdminScore == 0 {
		cfg.Scoring.AdminScore = 42
	}
	if cfg.Scoring.PhoneWeight == 0 {
		cfg.Scoring.PhoneWeight = 1.5
	}
	if cfg.Scoring.EmailWeight == 0 {
		cfg.Scoring.EmailWeight = 1.5
	}
	if cfg.Scoring.BirthdayWeight == 0 {
		cfg.Scoring.BirthdayWeight = 1.5
	}
	if cfg.Scoring.NameWeight == 0 {
		cfg.Scoring.NameWeight = 0.5
	}

	// Set defaults for timeouts if not specified
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

	// Set defaults for database connection pool
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300 // 5 minutes
	}

	// Metrics validation and defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "scoringservice"
	}

	// Worker validation and defaults
	if cfg.Worker.CleanupInterval == 0 {
		cfg.Worker.CleanupInterval = 300 // 5 minutes
	}

	return nil
}
