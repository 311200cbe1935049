package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DatabaseHost     string        `yaml:"databaseHost"`
	DatabasePort     string        `yaml:"databasePort"`
	DatabaseUser     string        `yaml:"databaseUser"`
	DatabasePassword string        `yaml:"databasePassword"`
	DatabaseName     string        `yaml:"databaseName"`
	DatabaseSSLMode  string        `yaml:"databaseSSLMode"`
	DBMaxOpenConns   int           `yaml:"dbMaxOpenConns"`
	DBMaxIdleConns   int           `yaml:"dbMaxIdleConns"`
	DBTimeout        time.Duration `yaml:"dbTimeout"`
	ServerPort       string        `yaml:"serverPort"`
	JWTSecret        string        `yaml:"jwtSecret"`
	LogLevel         string        `yaml:"logLevel"`
	DefaultCredits   string        `yaml:"defaultCredits"`
	// PasswordScheme is "plain" (stored as given, compared by equality) or
	// "bcrypt". Existing plain databases stay readable only under "plain".
	PasswordScheme          string `yaml:"passwordScheme"`
	RedisAddr               string `yaml:"redisAddr"`
	RedisPassword           string `yaml:"redisPassword"`
	LoginRateLimitPerMinute int    `yaml:"loginRateLimitPerMinute"`
	EventsStream            string `yaml:"eventsStream"`
}

func defaults() Config {
	return Config{
		DatabaseHost:     "db",
		DatabasePort:     "5432",
		DatabaseUser:     "postgres",
		DatabasePassword: "password",
		DatabaseName:     "bookstore",
		DatabaseSSLMode:  "disable",
		DBMaxOpenConns:   25,
		DBMaxIdleConns:   5,
		DBTimeout:        5 * time.Second,
		ServerPort:       "8000",
		JWTSecret:        "secret",
		LogLevel:         "info",
		DefaultCredits:   "100",
		PasswordScheme:   "plain",
		EventsStream:     "bookstore:purchases",
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file named
// by CONFIG_PATH (if any), then environment variables.
func LoadConfig() (Config, error) {
	cfg := defaults()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	setString(&cfg.DatabaseHost, "DATABASE_HOST")
	setString(&cfg.DatabasePort, "DATABASE_PORT")
	setString(&cfg.DatabaseUser, "DATABASE_USER")
	setString(&cfg.DatabasePassword, "DATABASE_PASSWORD")
	setString(&cfg.DatabaseName, "DATABASE_NAME")
	setString(&cfg.DatabaseSSLMode, "DATABASE_SSLMODE")
	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.DefaultCredits, "DEFAULT_CREDITS")
	setString(&cfg.PasswordScheme, "PASSWORD_SCHEME")
	setString(&cfg.RedisAddr, "REDIS_ADDR")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.EventsStream, "EVENTS_STREAM")

	if err := setInt(&cfg.DBMaxOpenConns, "DB_MAX_OPEN_CONNS"); err != nil {
		return cfg, err
	}
	if err := setInt(&cfg.DBMaxIdleConns, "DB_MAX_IDLE_CONNS"); err != nil {
		return cfg, err
	}
	if err := setInt(&cfg.LoginRateLimitPerMinute, "LOGIN_RATE_LIMIT_PER_MINUTE"); err != nil {
		return cfg, err
	}
	if err := setDuration(&cfg.DBTimeout, "DB_TIMEOUT"); err != nil {
		return cfg, err
	}

	cfg.PasswordScheme = strings.ToLower(strings.TrimSpace(cfg.PasswordScheme))
	if cfg.PasswordScheme != "plain" && cfg.PasswordScheme != "bcrypt" {
		return cfg, fmt.Errorf("unknown password scheme %q", cfg.PasswordScheme)
	}
	return cfg, nil
}

func (c Config) PostgresConnStr() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

func setString(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setInt(dst *int, key string) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(val))
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	*dst = d
	return nil
}
