package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig 汇总运行站点服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string `yaml:"listen_addr"`
	Port          string `yaml:"port"`
	DatabasePath  string `yaml:"database_path"`
	SessionSecret string `yaml:"session_secret"`
	GinMode       string `yaml:"gin_mode"`
	ContentPath   string `yaml:"content_path"`
	UploadDir     string `yaml:"upload_dir"`
	UploadURLPath string `yaml:"upload_url_path"`
	AdminPassword string `yaml:"admin_password"`
	LogLevel      string `yaml:"log_level"`
	SiteBaseURL   string `yaml:"site_base_url"`
}

// Load 读取可选的 YAML 配置文件（SITE_CONFIG），再用环境变量覆盖，并为缺失项提供默认值。
func Load() (AppConfig, error) {
	var cfg AppConfig

	if path := strings.TrimSpace(os.Getenv("SITE_CONFIG")); path != "" {
		fromFile, err := LoadFile(path)
		if err != nil {
			return AppConfig{}, err
		}
		cfg = fromFile
	}

	overrideFromEnv(&cfg.Port, "PORT")
	overrideFromEnv(&cfg.ListenAddr, "LISTEN_ADDR")
	overrideFromEnv(&cfg.DatabasePath, "DATABASE_PATH")
	overrideFromEnv(&cfg.SessionSecret, "SESSION_SECRET")
	overrideFromEnv(&cfg.GinMode, "GIN_MODE")
	overrideFromEnv(&cfg.ContentPath, "CONTENT_PATH")
	overrideFromEnv(&cfg.UploadDir, "UPLOAD_DIR")
	overrideFromEnv(&cfg.UploadURLPath, "UPLOAD_URL_PATH")
	overrideFromEnv(&cfg.AdminPassword, "ADMIN_PASSWORD")
	overrideFromEnv(&cfg.LogLevel, "LOG_LEVEL")
	overrideFromEnv(&cfg.SiteBaseURL, "SITE_BASE_URL")

	applyDefaults(&cfg)
	return cfg, nil
}

// LoadFile 解析 YAML 配置文件；文件不存在时返回空配置。
func LoadFile(path string) (AppConfig, error) {
	var cfg AppConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

func overrideFromEnv(dst *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}

func applyDefaults(cfg *AppConfig) {
	setDefault(&cfg.Port, "8080")
	setDefault(&cfg.ListenAddr, fmt.Sprintf(":%s", strings.TrimSpace(cfg.Port)))
	setDefault(&cfg.DatabasePath, "gattabara.db")
	setDefault(&cfg.SessionSecret, "gattabara-dev-secret")
	setDefault(&cfg.GinMode, "release")
	setDefault(&cfg.ContentPath, "public/data/content.json")
	setDefault(&cfg.UploadDir, "public/uploads")
	setDefault(&cfg.UploadURLPath, "/uploads")
	setDefault(&cfg.AdminPassword, "gg5656")
	setDefault(&cfg.LogLevel, "info")
	setDefault(&cfg.SiteBaseURL, "https://gattabaragames.com")

	cfg.UploadURLPath = "/" + strings.Trim(cfg.UploadURLPath, "/")
}

func setDefault(dst *string, fallback string) {
	*dst = strings.TrimSpace(*dst)
	if *dst == "" {
		*dst = fallback
	}
}
