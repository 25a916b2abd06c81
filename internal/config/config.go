package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port      int    `yaml:"port"`
	GinMode   string `yaml:"gin_mode"`
	StaticDir string `yaml:"static_dir"`
}

type DatabaseConfig struct {
	DSN         string `yaml:"dsn"`
	AccountsDSN string `yaml:"accounts_dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionConfig struct {
	CookieName     string `yaml:"cookie_name"`
	Secret         string `yaml:"secret"`
	Duration       string `yaml:"duration"`
	ActiveDuration string `yaml:"active_duration"`
	Secure         bool   `yaml:"secure"`
}

type PasswordConfig struct {
	Cost int `yaml:"cost"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Dev   bool   `yaml:"dev"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Session  SessionConfig  `yaml:"session"`
	Password PasswordConfig `yaml:"password"`
	Log      LogConfig      `yaml:"log"`
}

type Config struct {
	Port                  string
	GinMode               string
	StaticDir             string
	DSN                   string
	AccountsDSN           string
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	SessionCookie         string
	SessionSecret         string
	SessionDuration       time.Duration
	SessionActiveDuration time.Duration
	SessionSecure         bool
	PasswordCost          int
	LogLevel              string
	LogDev                bool
}

const defaultConfigPath = "config/config.yml"

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads .env (if present), the YAML config file and environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return LoadFile(env("CONFIG_PATH", defaultConfigPath))
}

// LoadFile builds a Config from the given YAML file and environment overrides.
func LoadFile(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	applyDefaults(configFile)

	duration, err := time.ParseDuration(configFile.Session.Duration)
	if err != nil {
		return nil, fmt.Errorf("invalid session duration: %w", err)
	}
	active, err := time.ParseDuration(configFile.Session.ActiveDuration)
	if err != nil {
		return nil, fmt.Errorf("invalid session active duration: %w", err)
	}
	if duration <= 0 || active <= 0 {
		return nil, fmt.Errorf("session durations must be positive")
	}

	port := env("PORT", strconv.Itoa(configFile.App.Port))
	dsn := env("DATABASE_DSN", configFile.Database.DSN)
	accountsDSN := env("ACCOUNTS_DSN", configFile.Database.AccountsDSN)
	if accountsDSN == "" {
		accountsDSN = dsn
	}

	cfg := &Config{
		Port:                  port,
		GinMode:               env("GIN_MODE", configFile.App.GinMode),
		StaticDir:             configFile.App.StaticDir,
		DSN:                   dsn,
		AccountsDSN:           accountsDSN,
		RedisAddr:             env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:         env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:               configFile.Redis.DB,
		SessionCookie:         configFile.Session.CookieName,
		SessionSecret:         env("SESSION_SECRET", configFile.Session.Secret),
		SessionDuration:       duration,
		SessionActiveDuration: active,
		SessionSecure:         configFile.Session.Secure,
		PasswordCost:          configFile.Password.Cost,
		LogLevel:              env("LOG_LEVEL", configFile.Log.Level),
		LogDev:                env("LOG_DEV", strconv.FormatBool(configFile.Log.Dev)) == "true",
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("session secret must be set")
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database dsn must be set")
	}
	return cfg, nil
}

func applyDefaults(c *ConfigFile) {
	if c.App.Port == 0 {
		c.App.Port = 8080
	}
	if c.App.GinMode == "" {
		c.App.GinMode = "release"
	}
	if c.App.StaticDir == "" {
		c.App.StaticDir = "public"
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "session"
	}
	if c.Session.Duration == "" {
		c.Session.Duration = "2m"
	}
	if c.Session.ActiveDuration == "" {
		c.Session.ActiveDuration = "1m"
	}
	if c.Password.Cost == 0 {
		c.Password.Cost = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
