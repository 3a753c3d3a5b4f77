package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"

	"kalasangam_backend/internal/logger"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Driver   string   `yaml:"driver"` // postgres, mysql, sqlite
		DSN      string   `yaml:"url"`
		Replicas []string `yaml:"replicas"`
		LogSQL   bool     `yaml:"log_sql"`
	} `yaml:"database"`

	// ConnectionFile хранит URL бэкенда и anon key (см. connection.go)
	ConnectionFile string `yaml:"connection_file"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	MagicLink struct {
		TTL     int    `yaml:"ttl"` // minutes
		BaseURL string `yaml:"base_url"`
	} `yaml:"magic_link"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Storage struct {
		Type       string `yaml:"type"`        // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path"`   // For local storage
		BaseURL    string `yaml:"base_url"`    // Public URL base
		Bucket     string `yaml:"bucket"`      // For S3/R2
		Region     string `yaml:"region"`      // For S3
		AccessKey  string `yaml:"access_key"`  // For S3/R2
		SecretKey  string `yaml:"secret_key"`  // For S3/R2
		Endpoint   string `yaml:"endpoint"`    // For R2 or custom S3
		AccountID  string `yaml:"account_id"`  // For R2
		PublicRead bool   `yaml:"public_read"` // Make files public
	} `yaml:"storage"`

	Upload struct {
		MaxSize           int64    `yaml:"max_size"`
		AllowedTypes      []string `yaml:"allowed_types"`
		ImageQuality      int      `yaml:"image_quality"`
		CompressThreshold int64    `yaml:"compress_threshold"`
		MaxDimension      int      `yaml:"max_dimension"`
		WatchdogMS        int      `yaml:"watchdog_ms"`
	} `yaml:"upload"`

	Events struct {
		Driver    string `yaml:"driver"` // memory, redis
		RedisAddr string `yaml:"redis_addr"`
		RedisDB   int    `yaml:"redis_db"`
		Channel   string `yaml:"channel"`
	} `yaml:"events"`

	Coach struct {
		DelayMS int `yaml:"delay_ms"`
	} `yaml:"coach"`

	RateLimit struct {
		AuthPerMinute int `yaml:"auth_per_minute"`
		Burst         int `yaml:"burst"`
	} `yaml:"rate_limit"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	Workers struct {
		SessionCleanupMinutes int `yaml:"session_cleanup_minutes"` // 0 - выключено
	} `yaml:"workers"`
}

var AppConfig *Config

// Default возвращает конфигурацию, с которой сервис стартует без файла.
func Default() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080
	cfg.Server.Env = "development"

	cfg.Database.Driver = "postgres"

	cfg.ConnectionFile = DefaultConnectionPath()

	cfg.JWT.Secret = "change-me"
	cfg.JWT.TTL = 60 * 24 * 7

	cfg.MagicLink.TTL = 15
	cfg.MagicLink.BaseURL = "http://localhost:5173/auth/callback"

	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "no-reply@kalasangam.app"
	cfg.Email.FromName = "Kalā Sangam"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/uploads"
	cfg.Storage.PublicRead = true

	cfg.Upload.MaxSize = 50 * 1024 * 1024
	cfg.Upload.AllowedTypes = []string{
		"image/jpeg", "image/png", "image/gif", "image/webp",
		"video/mp4", "video/quicktime", "video/webm",
		"audio/mpeg", "audio/wav", "audio/ogg", "audio/mp4",
	}
	cfg.Upload.ImageQuality = 70
	cfg.Upload.CompressThreshold = 1024 * 1024
	cfg.Upload.MaxDimension = 1024
	cfg.Upload.WatchdogMS = 3000

	cfg.Events.Driver = "memory"
	cfg.Events.Channel = "auth_state_changes"

	cfg.Coach.DelayMS = 3000

	cfg.RateLimit.AuthPerMinute = 30
	cfg.RateLimit.Burst = 10

	cfg.CORS.AllowedOrigins = []string{"http://localhost:5173"}

	cfg.Workers.SessionCleanupMinutes = 60

	return &cfg
}

// Load читает YAML поверх значений по умолчанию и применяет переменные окружения.
// Отсутствующий файл не является ошибкой.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			logger.Warn("config file not found, using defaults", "path", path)
		default:
			return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	if cfg.ConnectionFile == "" {
		cfg.ConnectionFile = DefaultConnectionPath()
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Events.Driver = "redis"
		cfg.Events.RedisAddr = v
	}
	if v := os.Getenv("CONNECTION_FILE"); v != "" {
		cfg.ConnectionFile = v
	}
}

// LoadConfig загружает глобальную конфигурацию из CONFIG_PATH.
func LoadConfig() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}
	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWT.TTL) * time.Minute
}

func (c *Config) MagicLinkTTL() time.Duration {
	return time.Duration(c.MagicLink.TTL) * time.Minute
}

func (c *Config) Watchdog() time.Duration {
	return time.Duration(c.Upload.WatchdogMS) * time.Millisecond
}

func (c *Config) CoachDelay() time.Duration {
	return time.Duration(c.Coach.DelayMS) * time.Millisecond
}

func (c *Config) SessionCleanupInterval() time.Duration {
	return time.Duration(c.Workers.SessionCleanupMinutes) * time.Minute
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
