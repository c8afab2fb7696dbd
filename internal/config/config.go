package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env              string
	LogLevel         string
	HTTPPort         string
	StoreDriver      string
	DatabaseURL      string
	MigrationsPath   string
	StoreMaxRetries  int
	StrictReferences bool
	StaticDir        string
	SPAEntry         string
	UploadDir        string
	SurplusDataFile  string
	MaxUploadSizeMB  int64
	MaxUploadFiles   int
	AllowedOrigins   []string
	RateLimitLimit   int64
	RateLimitPeriod  time.Duration
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:             env,
		LogLevel:        getEnv("LOG_LEVEL", defaultLogLevel(env)),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", StoreSQLite)),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		StaticDir:       getEnv("STATIC_DIR", "./public"),
		SPAEntry:        getEnv("SPA_ENTRY", "index.html"),
		UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
		SurplusDataFile: getEnv("SURPLUS_DATA_FILE", "./data/surplus.json"),
	}

	switch cfg.StoreDriver {
	case StoreMemory:
	case StoreSQLite:
		cfg.DatabaseURL = getEnv("DATABASE_URL", "./data/recy.db")
	case StorePostgres:
		cfg.DatabaseURL = getEnv("DATABASE_URL", "")
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("config: DATABASE_URL обязателен для STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("config: неизвестный STORE_DRIVER %q", cfg.StoreDriver)
	}

	// CORS allowed origins
	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if env == "production" {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	} else {
		cfg.AllowedOrigins = strings.Split(originsStr, ",")
		for i, origin := range cfg.AllowedOrigins {
			cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
		}
	}

	var err error
	if cfg.MaxUploadSizeMB, err = parseInt64("MAX_UPLOAD_MB", getEnv("MAX_UPLOAD_MB", "2")); err != nil {
		return nil, err
	}
	maxFiles, err := parseInt64("MAX_UPLOAD_FILES", getEnv("MAX_UPLOAD_FILES", "5"))
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadFiles = int(maxFiles)

	retries, err := parseInt64("STORE_MAX_RETRIES", getEnv("STORE_MAX_RETRIES", "5"))
	if err != nil {
		return nil, err
	}
	cfg.StoreMaxRetries = int(retries)

	if cfg.StrictReferences, err = strconv.ParseBool(getEnv("STRICT_REFERENCES", "false")); err != nil {
		return nil, fmt.Errorf("config: не удалось распарсить STRICT_REFERENCES: %w", err)
	}

	// Rate limiting настройки
	if cfg.RateLimitLimit, err = parseInt64("RATE_LIMIT_LIMIT", getEnv("RATE_LIMIT_LIMIT", "30")); err != nil {
		return nil, err
	}
	if cfg.RateLimitPeriod, err = time.ParseDuration(getEnv("RATE_LIMIT_PERIOD", "1m")); err != nil {
		return nil, fmt.Errorf("config: не удалось распарсить RATE_LIMIT_PERIOD: %w", err)
	}

	return cfg, nil
}

// IsDevelopment сообщает, запущено ли приложение в режиме разработки.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func defaultLogLevel(env string) string {
	if env == "development" {
		return "debug"
	}
	return "info"
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func parseInt64(key, v string) (int64, error) {
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить %s=%q: %w", key, v, err)
	}
	return num, nil
}
