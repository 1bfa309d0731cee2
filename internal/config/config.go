package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Storage       StorageConfig       `yaml:"storage"`
	Latency       LatencyConfig       `yaml:"latency"`
	Session       SessionConfig       `yaml:"session"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Log           LogConfig           `yaml:"log"`
	Audit         AuditConfig         `yaml:"audit"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

// StorageConfig names the slot the dashboard snapshot is persisted under.
type StorageConfig struct {
	Key string `yaml:"key"`
}

// LatencyConfig bounds the simulated round trip of every facade call.
type LatencyConfig struct {
	MinMS int `yaml:"min_ms"`
	MaxMS int `yaml:"max_ms"`
}

type SessionConfig struct {
	Secret     string `yaml:"secret"`
	ExpireHour int    `yaml:"expire_hour"`
}

type NotificationsConfig struct {
	Limit int `yaml:"limit"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type AuditConfig struct {
	RetentionDays int    `yaml:"retention_days"`
	CleanupSpec   string `yaml:"cleanup_spec"` // cron expression
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

var GlobalConfig *Config

// Load reads configPath (config.yaml by default), falling back to defaults
// when the file is missing. A .env file in the working directory is loaded
// before environment overrides are applied.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg.overrideFromEnv()
	cfg.normalize()
	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "teamboard.db",
		},
		Storage: StorageConfig{
			Key: "teamboard_state",
		},
		Latency: LatencyConfig{
			MinMS: 150,
			MaxMS: 400,
		},
		Session: SessionConfig{
			Secret:     "teamboard-secret-key-change-in-production",
			ExpireHour: 24,
		},
		Notifications: NotificationsConfig{
			Limit: 20,
		},
		Log: LogConfig{
			Level: "info",
		},
		Audit: AuditConfig{
			RetentionDays: 30,
			CleanupSpec:   "@daily",
		},
		RateLimit: RateLimitConfig{
			RPS:   5,
			Burst: 10,
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if key := os.Getenv("STORAGE_KEY"); key != "" {
		c.Storage.Key = key
	}
	if v, ok := envInt("LATENCY_MIN_MS"); ok {
		c.Latency.MinMS = v
	}
	if v, ok := envInt("LATENCY_MAX_MS"); ok {
		c.Latency.MaxMS = v
	}
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		c.Session.Secret = secret
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// normalize repairs values that would otherwise break the runtime.
func (c *Config) normalize() {
	if c.Latency.MinMS < 0 {
		c.Latency.MinMS = 0
	}
	if c.Latency.MaxMS < c.Latency.MinMS {
		c.Latency.MaxMS = c.Latency.MinMS
	}
	if c.Notifications.Limit <= 0 {
		c.Notifications.Limit = 20
	}
	if c.Storage.Key == "" {
		c.Storage.Key = "teamboard_state"
	}
}

func (c *Config) Save(configPath string) error {
	if configPath == "" {
		configPath = "config.yaml"
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
