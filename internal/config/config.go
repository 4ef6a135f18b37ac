// Package config は環境変数（.envを含む）からアプリケーション設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

type Config struct {
	AppEnv             string
	AppPort            string
	AppName            string
	AppVersion         string
	DB                 DBConfig
	JWT                JWTConfig
	CORSAllowedOrigins []string
	TrustedProxies     []string
	SeedData           bool
	AdminEmail         string
	AdminPassword      string
	ShutdownTimeout    time.Duration
}

type DBConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	Params          string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Expiry   time.Duration
}

// LoadConfig は .env があれば読み込み、環境変数から設定を組み立てます。
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		AppPort:    getEnv("APP_PORT", "8080"),
		AppName:    getEnv("APP_NAME", "go-task-manager"),
		AppVersion: getEnv("APP_VERSION", "dev"),
		DB: DBConfig{
			Driver:          getEnv("DB_DRIVER", DriverMySQL),
			Host:            getEnv("DB_HOST", "db"),
			Port:            getEnv("DB_PORT", "3306"),
			User:            getEnv("DB_USER", "taskmanager"),
			Password:        getEnv("DB_PASS", ""),
			Name:            getEnv("DB_NAME", "taskmanager"),
			Params:          getEnv("DB_PARAMS", "parseTime=true"),
			SQLitePath:      getEnv("SQLITE_PATH", "taskmanager.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:   os.Getenv("JWT_SECRET"),
			Issuer:   getEnv("JWT_ISSUER", "go-task-manager"),
			Audience: getEnv("JWT_AUDIENCE", "go-task-manager-clients"),
			Expiry:   time.Duration(getEnvInt("JWT_EXPIRY_MINUTES", 1440)) * time.Minute,
		},
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		TrustedProxies:     splitList(os.Getenv("TRUSTED_PROXIES")),
		SeedData:           getEnvBool("SEED_DATA", true),
		AdminEmail:         getEnv("ADMIN_EMAIL", "admin@domain.com"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", "Aa@112233@"),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は起動に必須の設定を確認します。
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET environment variable not set")
	}
	if c.JWT.Expiry <= 0 {
		return errors.New("JWT_EXPIRY_MINUTES must be positive")
	}
	switch c.DB.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	return nil
}

// IsProduction は本番用ロガーやginのリリースモードの切り替えに使います。
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// DSN はドライバーに応じた接続文字列を返します。
func (c DBConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath + "?_foreign_keys=1"
	}
	params := c.Params
	if params == "" {
		params = "parseTime=true"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", c.User, c.Password, c.Host, c.Port, c.Name, params)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return value
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil
	}
	return items
}
