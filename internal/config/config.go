package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN" validate:"required"`
	Storage       string `mapstructure:"STORAGE" validate:"oneof=postgres memory"`
	DBDSN         string `mapstructure:"DB_DSN" validate:"required_if=Storage postgres"`
	Environment   string `mapstructure:"ENV"`
	LogLevel      string `mapstructure:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`

	GeminiAPIKey  string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel   string        `mapstructure:"GEMINI_MODEL"`
	AdviceTimeout time.Duration `mapstructure:"ADVICE_TIMEOUT" validate:"gt=0"`

	MaxServicesPerOrder int           `mapstructure:"MAX_SERVICES_PER_ORDER" validate:"min=1,max=50"`
	ServicesPageSize    int           `mapstructure:"SERVICES_PAGE_SIZE" validate:"min=1,max=20"`
	DateOfferDays       int           `mapstructure:"DATE_OFFER_DAYS" validate:"min=1,max=60"`
	DateAcceptDays      int           `mapstructure:"DATE_ACCEPT_DAYS" validate:"gtefield=DateOfferDays"`
	SessionTTL          time.Duration `mapstructure:"SESSION_TTL" validate:"gt=0"`
	Timezone            string        `mapstructure:"TIMEZONE" validate:"required"`

	Location *time.Location `validate:"-"`

	AdminIDs          []int64 `mapstructure:"ADMIN_IDS"`
	HTTPAddr          string  `mapstructure:"HTTP_ADDR"`
	MigrationsEnabled bool    `mapstructure:"MIGRATIONS_ENABLED"`

	RateLimitMessages int           `mapstructure:"RATE_LIMIT_MESSAGES" validate:"min=0"`
	RateLimitWindow   time.Duration `mapstructure:"RATE_LIMIT_WINDOW" validate:"gt=0"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv читает конфигурацию из getenv и проверяет её
func FromEnv(getenv func(string) string) (*Config, error) {
	r := reader{getenv: getenv}

	cfg := &Config{
		TelegramToken: r.getString("TELEGRAM_TOKEN", ""),
		Storage:       strings.ToLower(r.getString("STORAGE", StoragePostgres)),
		DBDSN:         r.getString("DB_DSN", ""),
		Environment:   r.getString("ENV", "development"),
		LogLevel:      strings.ToLower(r.getString("LOG_LEVEL", "")),

		GeminiAPIKey:  r.getString("GEMINI_API_KEY", ""),
		GeminiModel:   r.getString("GEMINI_MODEL", ""),
		AdviceTimeout: r.getDuration("ADVICE_TIMEOUT", 15*time.Second),

		MaxServicesPerOrder: r.getInt("MAX_SERVICES_PER_ORDER", 10),
		ServicesPageSize:    r.getInt("SERVICES_PAGE_SIZE", 5),
		DateOfferDays:       r.getInt("DATE_OFFER_DAYS", 14),
		DateAcceptDays:      r.getInt("DATE_ACCEPT_DAYS", 30),
		SessionTTL:          r.getDuration("SESSION_TTL", 30*time.Minute),
		Timezone:            r.getString("TIMEZONE", "Europe/Moscow"),

		AdminIDs:          r.getInt64s("ADMIN_IDS"),
		HTTPAddr:          r.getString("HTTP_ADDR", ":8080"),
		MigrationsEnabled: r.getBool("MIGRATIONS_ENABLED", true),

		RateLimitMessages: r.getInt("RATE_LIMIT_MESSAGES", 30),
		RateLimitWindow:   r.getDuration("RATE_LIMIT_WINDOW", time.Minute),
	}

	if len(r.errs) > 0 {
		return nil, fmt.Errorf("parse config: %s", strings.Join(r.errs, "; "))
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// reader копит ошибки разбора, чтобы показать их все сразу
type reader struct {
	getenv func(string) string
	errs   []string
}

func (r *reader) getString(key, def string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *reader) getInt(key string, def int) int {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("%s: %q is not a number", key, v))
		return def
	}
	return n
}

func (r *reader) getBool(key string, def bool) bool {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("%s: %q is not a boolean", key, v))
		return def
	}
	return b
}

func (r *reader) getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("%s: %q is not a duration", key, v))
		return def
	}
	return d
}

// int64s список через запятую: "1,2, 3"
func (r *reader) getInt64s(key string) []int64 {
	v := strings.TrimSpace(r.getenv(key))
	if v == "" {
		return nil
	}
	var out []int64
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			r.errs = append(r.errs, fmt.Sprintf("%s: %q is not an id", key, part))
			continue
		}
		out = append(out, id)
	}
	return out
}
