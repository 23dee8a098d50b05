package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Env  string `yaml:"env"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // postgres, mysql
	DSN    string `yaml:"url"`
}

type EmailConfig struct {
	SMTPHost    string `yaml:"smtp_host"`
	SMTPPort    int    `yaml:"smtp_port"`
	SMTPUser    string `yaml:"smtp_user"`
	SMTPPass    string `yaml:"smtp_password"`
	FromEmail   string `yaml:"from_email"`
	FromName    string `yaml:"from_name"`
	FrontendURL string `yaml:"frontend_url"`
	CurrentURL  string `yaml:"current_url"`
}

type JWTConfig struct {
	UserAccessSecret   string `yaml:"user_access_secret"`
	UserRefreshSecret  string `yaml:"user_refresh_secret"`
	AdminAccessSecret  string `yaml:"admin_access_secret"`
	AdminRefreshSecret string `yaml:"admin_refresh_secret"`
}

type StorageConfig struct {
	BasePath string `yaml:"base_path"`
	BaseURL  string `yaml:"base_url"`
}

type UploadConfig struct {
	MaxSize int64 `yaml:"max_size"` // Max file size in bytes
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Email    EmailConfig    `yaml:"email"`
	JWT      JWTConfig      `yaml:"jwt"`
	Storage  StorageConfig  `yaml:"storage"`
	Upload   UploadConfig   `yaml:"upload"`
}

// IsProduction вычисляется один раз из server.env и управляет флагами
// Secure/SameSite у auth-кук. Никаких сравнений строк окружения в хендлерах.
func (c *Config) IsProduction() bool {
	return c.Server.Env != "development"
}

// Load читает config.yaml и накладывает переменные окружения поверх.
// Возвращает явный *Config: глобального состояния у пакета нет.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/config.yaml"
	}

	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
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
		cfg.Server.Port, _ = strconv.Atoi(v)
	}
	if v := os.Getenv("USER_ACCESS_SECRET"); v != "" {
		cfg.JWT.UserAccessSecret = v
	}
	if v := os.Getenv("USER_REFRESH_SECRET"); v != "" {
		cfg.JWT.UserRefreshSecret = v
	}
	if v := os.Getenv("ADMIN_ACCESS_SECRET"); v != "" {
		cfg.JWT.AdminAccessSecret = v
	}
	if v := os.Getenv("ADMIN_REFRESH_SECRET"); v != "" {
		cfg.JWT.AdminRefreshSecret = v
	}
	if v := os.Getenv("AUTH_EMAIL"); v != "" {
		cfg.Email.SMTPUser = v
	}
	if v := os.Getenv("AUTH_PASSWORD"); v != "" {
		cfg.Email.SMTPPass = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./public/uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/files"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "ar.gent"
	}
}
