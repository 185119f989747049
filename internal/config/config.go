package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Поддерживаемые драйверы базы данных
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Quiz      QuizConfig
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int      `mapstructure:"read_timeout"`
	WriteTimeout int      `mapstructure:"write_timeout"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig содержит настройки подключения к БД.
// Driver "sqlite" использует файл Path, "postgres" - параметры Host/Port/...
type DatabaseConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит настройки Redis (кеш банка вопросов и rate limit логина).
// Redis опционален: при Enabled=false сервис работает только с БД.
type RedisConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	Addrs    []string `mapstructure:"addrs"`
	Addr     string   `mapstructure:"addr"`
	Password string   `mapstructure:"password"`
	DB       int      `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`
}

// JWTConfig содержит настройки токенов администратора
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expiration_hrs"`
	Issuer        string `mapstructure:"issuer"`
}

// AuthConfig содержит настройки аутентификации администраторов
type AuthConfig struct {
	// BootstrapUsername/BootstrapPassword: учетная запись администратора,
	// создаваемая при старте, если ее нет. Пустой пароль отключает создание.
	BootstrapUsername string `mapstructure:"bootstrap_username"`
	BootstrapPassword string `mapstructure:"bootstrap_password"`

	// RequireAdminToken: требовать Bearer токен на /admin/* маршрутах
	RequireAdminToken bool `mapstructure:"require_admin_token"`
}

// QuizConfig содержит настройки каналов и банка вопросов
type QuizConfig struct {
	CodeLength       int           `mapstructure:"code_length"`
	CodeAttempts     int           `mapstructure:"code_attempts"`
	QuestionCacheTTL time.Duration `mapstructure:"question_cache_ttl"`
}

// RateLimitConfig содержит лимиты для /admin/login
type RateLimitConfig struct {
	LoginMaxRequests int           `mapstructure:"login_max_requests"`
	LoginWindow      time.Duration `mapstructure:"login_window"`
}

// LogConfig содержит настройки логирования
type LogConfig struct {
	Level  string
	Pretty bool
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// SQLiteDSN формирует DSN для файловой SQLite с включенными внешними ключами
func (d *DatabaseConfig) SQLiteDSN() string {
	path := d.Path
	if path == "" {
		path = "quiz.db"
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8000")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 15)
	vip.SetDefault("server.allow_origins", []string{"http://localhost:3000"})

	vip.SetDefault("database.driver", DriverSQLite)
	vip.SetDefault("database.path", "quiz.db")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")

	vip.SetDefault("redis.enabled", false)
	vip.SetDefault("redis.mode", "single")

	vip.SetDefault("jwt.expiration_hrs", 12)
	vip.SetDefault("jwt.issuer", "quiz-channels-api")

	vip.SetDefault("auth.bootstrap_username", "admin")
	vip.SetDefault("auth.require_admin_token", true)

	vip.SetDefault("quiz.code_length", 6)
	vip.SetDefault("quiz.code_attempts", 5)
	vip.SetDefault("quiz.question_cache_ttl", 5*time.Minute)

	vip.SetDefault("rate_limit.login_max_requests", 5)
	vip.SetDefault("rate_limit.login_window", time.Minute)

	vip.SetDefault("log.level", "info")
	vip.SetDefault("log.pretty", false)
}

func bindEnv(vip *viper.Viper) {
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.allow_origins", "SERVER_ALLOW_ORIGINS")

	vip.BindEnv("database.driver", "DATABASE_DRIVER")
	vip.BindEnv("database.path", "DATABASE_PATH")
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.enabled", "REDIS_ENABLED")
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expiration_hrs", "JWT_EXPIRATION_HRS")

	vip.BindEnv("auth.bootstrap_username", "ADMIN_BOOTSTRAP_USERNAME")
	vip.BindEnv("auth.bootstrap_password", "ADMIN_BOOTSTRAP_PASSWORD")
	vip.BindEnv("auth.require_admin_token", "AUTH_REQUIRE_ADMIN_TOKEN")

	vip.BindEnv("log.level", "LOG_LEVEL")
	vip.BindEnv("log.pretty", "LOG_PRETTY")
}

// Load загружает конфигурацию: .env -> файл конфигурации -> переменные окружения
func Load(configPath string) (*Config, error) {
	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("Не удалось прочитать .env")
	}

	vip := viper.New() // Новый экземпляр, чтобы избежать глобального состояния
	setDefaults(vip)
	bindEnv(vip)

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
				log.Info().Str("path", configPath).Msg("Файл конфигурации не найден, используются переменные окружения/умолчания")
			} else {
				log.Warn().Err(err).Str("path", configPath).Msg("Не удалось прочитать файл конфигурации")
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Переменная окружения со списком origin'ов приходит одной строкой
	if len(cfg.Server.AllowOrigins) == 1 && strings.Contains(cfg.Server.AllowOrigins[0], ",") {
		cfg.Server.AllowOrigins = strings.Split(cfg.Server.AllowOrigins[0], ",")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Debug().
			Str("db_driver", cfg.Database.Driver).
			Str("db_path", cfg.Database.Path).
			Str("db_host", cfg.Database.Host).
			Bool("redis_enabled", cfg.Redis.Enabled).
			Bool("jwt_secret_set", cfg.JWT.Secret != "").
			Bool("bootstrap_admin", cfg.Auth.BootstrapPassword != "").
			Str("port", cfg.Server.Port).
			Msg("Загруженная конфигурация")
	}

	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
			return fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	if c.Auth.RequireAdminToken && c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required when admin tokens are enabled (check JWT_SECRET env var)")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" && len(c.Redis.Addrs) == 0 {
		return fmt.Errorf("redis is enabled but no address is configured (check REDIS_ADDR env var)")
	}
	if c.Quiz.CodeLength <= 0 {
		return fmt.Errorf("quiz.code_length must be positive")
	}
	if c.Quiz.CodeAttempts <= 0 {
		c.Quiz.CodeAttempts = 1
	}
	return nil
}
