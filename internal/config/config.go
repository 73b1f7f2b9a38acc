package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`

	Session struct {
		// CookieDomain - домен cookie session_token; пустой = домен запроса
		CookieDomain string `yaml:"cookie_domain"`
	} `yaml:"session"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
	} `yaml:"email"`

	Wilayah struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"wilayah"`

	Storage struct {
		// BasePath - корень локального хранилища загруженных резюме
		BasePath string `yaml:"base_path"`
	} `yaml:"storage"`

	Bootstrap struct {
		SuperAdminEmail    string `yaml:"super_admin_email"`
		SuperAdminPassword string `yaml:"super_admin_password"`
	} `yaml:"bootstrap"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// Load читает конфиг из YAML-файла, после чего накатывает переменные
// окружения поверх (env всегда выигрывает). Возвращает значение, а не
// пишет в глобал: конфиг инжектится через internal/app.
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
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	// Файла может не быть - тогда все берется из окружения

	applyEnv(&cfg)

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Wilayah.BaseURL == "" {
		cfg.Wilayah.BaseURL = "https://wilayah.id/api"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "storage/uploads"
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("database url is not configured (config file or DATABASE_URL)")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is not configured (config file or JWT_SECRET)")
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.Server.Port, _ = strconv.Atoi(v)
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("SESSION_COOKIE_DOMAIN"); v != "" {
		cfg.Session.CookieDomain = v
	}
	if v := os.Getenv("SUPER_ADMIN_EMAIL"); v != "" {
		cfg.Bootstrap.SuperAdminEmail = v
	}
	if v := os.Getenv("SUPER_ADMIN_PASSWORD"); v != "" {
		cfg.Bootstrap.SuperAdminPassword = v
	}
	if v := os.Getenv("STORAGE_BASE_PATH"); v != "" {
		cfg.Storage.BasePath = v
	}
}
