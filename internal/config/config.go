package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// 저장소 백엔드
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type AppConfig struct {
	ListenAddr string `yaml:"listen_addr"`

	StoreBackend string        `yaml:"store_backend"`
	RedisURL     string        `yaml:"redis_url"`
	DatabaseURL  string        `yaml:"database_url"`
	DocumentTTL  time.Duration `yaml:"-"`

	MessagesDir   string `yaml:"messages_dir"`
	PNGSquareSize int    `yaml:"png_square_size"`
}

func defaults() *AppConfig {
	return &AppConfig{
		ListenAddr:    ":8080",
		StoreBackend:  BackendMemory,
		DocumentTTL:   7 * 24 * time.Hour,
		PNGSquareSize: 64,
	}
}

// Load는 기본값 → CHESS_CONFIG_FILE(YAML, 선택) → 환경변수 순으로 설정을 구성.
func Load() (*AppConfig, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CHESS_CONFIG_FILE")); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("STORE_BACKEND")); v != "" {
		cfg.StoreBackend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		cfg.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		cfg.DatabaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("DOCUMENT_TTL")); v != "" {
		d, err := parseTTL(v)
		if err != nil {
			return nil, fmt.Errorf("DOCUMENT_TTL: %w", err)
		}
		cfg.DocumentTTL = d
	}
	if v := strings.TrimSpace(os.Getenv("MESSAGES_DIR")); v != "" {
		cfg.MessagesDir = v
	}
	if v := strings.TrimSpace(os.Getenv("PNG_SQUARE_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PNGSquareSize = n
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var file struct {
		AppConfig   `yaml:",inline"`
		DocumentTTL string `yaml:"document_ttl"`
	}
	file.AppConfig = *c
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	*c = file.AppConfig
	if v := strings.TrimSpace(file.DocumentTTL); v != "" {
		d, err := parseTTL(v)
		if err != nil {
			return fmt.Errorf("document_ttl: %w", err)
		}
		c.DocumentTTL = d
	}
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	return nil
}

func (c *AppConfig) validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis store")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.PNGSquareSize <= 0 {
		return errors.New("png square size must be positive")
	}
	return nil
}

// parseTTL은 Go duration("36h") 또는 초 단위 숫자를 허용.
func parseTTL(v string) (time.Duration, error) {
	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative ttl %d", n)
		}
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative ttl %s", v)
	}
	return d, nil
}
