package config

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBType         string
	PostgresURL    string
	MongoURL       string
	MongoDatabase  string
	Port           string
	APIBaseURL     string
	MigrationsPath string

	PostgresMaxOpenConns    int
	PostgresMaxIdleConns    int
	PostgresConnMaxLifetime time.Duration
	DBConnectTimeout        time.Duration

	StorageType       string
	DocumentDir       string
	R2Bucket          string
	R2AccountID       string
	R2PublicURL       string
	R2AccessKeyID     string
	R2SecretAccessKey string

	LocomotiveCacheTTL time.Duration
	LogLevel           string
	LogFormat          string
	APIKeyHash         string
	SeedFile           string
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applies defaults and validates.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DBType:            getenv("DB_TYPE"),
		PostgresURL:       getenv("POSTGRES_URL"),
		MongoURL:          getenv("MONGO_URL"),
		MongoDatabase:     getenv("MONGO_DATABASE"),
		Port:              getenv("PORT"),
		APIBaseURL:        getenv("API_BASE_URL"),
		MigrationsPath:    getenv("MIGRATIONS_PATH"),
		StorageType:       getenv("STORAGE_TYPE"),
		DocumentDir:       getenv("DOCUMENT_DIR"),
		R2Bucket:          getenv("R2_BUCKET"),
		R2AccountID:       getenv("R2_ACCOUNT_ID"),
		R2PublicURL:       getenv("R2_PUBLIC_URL"),
		R2AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: getenv("R2_SECRET_ACCESS_KEY"),
		LogLevel:          getenv("LOG_LEVEL"),
		LogFormat:         getenv("LOG_FORMAT"),
		APIKeyHash:        getenv("API_KEY_HASH"),
		SeedFile:          getenv("SEED_FILE"),
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = getenv("NEXT_PUBLIC_API_BASE_URL")
	}

	var errs []string
	durations := map[string]*time.Duration{
		"LOCOMOTIVE_CACHE_TTL":       &cfg.LocomotiveCacheTTL,
		"POSTGRES_CONN_MAX_LIFETIME": &cfg.PostgresConnMaxLifetime,
		"DB_CONNECT_TIMEOUT":         &cfg.DBConnectTimeout,
	}
	for key, dst := range durations {
		if raw := getenv(key); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s %q is not a duration", key, raw))
			}
			*dst = d
		}
	}
	ints := map[string]*int{
		"POSTGRES_MAX_OPEN_CONNS": &cfg.PostgresMaxOpenConns,
		"POSTGRES_MAX_IDLE_CONNS": &cfg.PostgresMaxIdleConns,
	}
	for key, dst := range ints {
		if raw := getenv(key); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				errs = append(errs, fmt.Sprintf("%s %q is not a non-negative integer", key, raw))
			}
			*dst = n
		}
	}

	cfg.applyDefaults()
	if err := cfg.validate(errs); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DBType == "" {
		c.DBType = "postgres"
	}
	if c.MongoDatabase == "" {
		c.MongoDatabase = "railshift"
	}
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.MigrationsPath == "" {
		c.MigrationsPath = "file://db/migrations"
	}
	if c.StorageType == "" {
		c.StorageType = "local"
	}
	if c.DocumentDir == "" {
		c.DocumentDir = "./documents"
	}
	if c.PostgresMaxOpenConns <= 0 {
		c.PostgresMaxOpenConns = 5
	}
	if c.PostgresMaxIdleConns <= 0 {
		c.PostgresMaxIdleConns = 2
	}
	if c.PostgresMaxIdleConns > c.PostgresMaxOpenConns {
		c.PostgresMaxIdleConns = c.PostgresMaxOpenConns
	}
	if c.PostgresConnMaxLifetime <= 0 {
		c.PostgresConnMaxLifetime = 30 * time.Minute
	}
	if c.DBConnectTimeout <= 0 {
		c.DBConnectTimeout = 10 * time.Second
	}
	if c.LocomotiveCacheTTL <= 0 {
		c.LocomotiveCacheTTL = 30 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
}

func (c *Config) validate(errs []string) error {
	switch c.DBType {
	case "postgres":
		if c.PostgresURL == "" {
			errs = append(errs, "POSTGRES_URL is required when DB_TYPE is postgres")
		}
	case "mongo":
		if c.MongoURL == "" {
			errs = append(errs, "MONGO_URL is required when DB_TYPE is mongo")
		}
	case "memory":
	default:
		errs = append(errs, fmt.Sprintf("DB_TYPE %q is not supported", c.DBType))
	}

	switch c.StorageType {
	case "local":
	case "r2":
		for key, v := range map[string]string{
			"R2_BUCKET":            c.R2Bucket,
			"R2_ACCOUNT_ID":        c.R2AccountID,
			"R2_ACCESS_KEY_ID":     c.R2AccessKeyID,
			"R2_SECRET_ACCESS_KEY": c.R2SecretAccessKey,
		} {
			if v == "" {
				errs = append(errs, key+" is required when STORAGE_TYPE is r2")
			}
		}
	default:
		errs = append(errs, fmt.Sprintf("STORAGE_TYPE %q is not supported", c.StorageType))
	}

	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT %q is not supported", c.LogFormat))
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
