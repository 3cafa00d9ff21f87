package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	BackendRedis = "redis"
	BackendMySQL = "mysql"
)

type Config struct {
	HTTPAddr   string        `yaml:"http_addr"`
	AdminPIN   string        `yaml:"admin_pin"`
	ReceiptDir string        `yaml:"receipt_dir"`
	Storage    StorageConfig `yaml:"storage"`
	Store      StoreConfig   `yaml:"store"`
}

type StorageConfig struct {
	Backend   string `yaml:"backend"`
	RedisAddr string `yaml:"redis_addr"`
	MySQLDSN  string `yaml:"mysql_dsn"`
}

// StoreConfig is the shop identity printed on every receipt.
type StoreConfig struct {
	Name       string `yaml:"name"`
	Tagline    string `yaml:"tagline"`
	Address    string `yaml:"address"`
	FooterNote string `yaml:"footer_note"`
}

func Default() Config {
	return Config{
		HTTPAddr:   ":8080",
		ReceiptDir: "receipts",
		Storage: StorageConfig{
			Backend:   BackendRedis,
			RedisAddr: "localhost:6379",
			MySQLDSN:  "root:root@tcp(localhost:3306)/warungpos?parseTime=true",
		},
		Store: StoreConfig{
			Name:       "WARUNG MADURA",
			Tagline:    "ONLINE 24 JAM",
			Address:    "Jl. Digital No. 1, Cloud City",
			FooterNote: "Barang yang dibeli tidak dapat dikembalikan",
		},
	}
}

// Load layers a YAML file (optional, path may be empty) and POS_* env
// overrides on top of the defaults, then validates.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.HTTPAddr, "POS_HTTP_ADDR")
	setFromEnv(&cfg.AdminPIN, "POS_ADMIN_PIN")
	setFromEnv(&cfg.ReceiptDir, "POS_RECEIPT_DIR")
	setFromEnv(&cfg.Storage.Backend, "POS_STORAGE_BACKEND")
	setFromEnv(&cfg.Storage.RedisAddr, "POS_REDIS_ADDR")
	setFromEnv(&cfg.Storage.MySQLDSN, "POS_MYSQL_DSN")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c Config) Validate() error {
	// The admin credential has no baked-in default; the operator must set
	// one, and the login failure message never echoes it.
	if c.AdminPIN == "" {
		return errors.New("admin_pin must be set (config file or POS_ADMIN_PIN)")
	}
	if c.Storage.Backend != BackendRedis && c.Storage.Backend != BackendMySQL {
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Store.Name == "" {
		return errors.New("store name must be set")
	}
	return nil
}
