// Package config описывает настройки сервиса и загружает их из YAML с
// переопределением через переменные окружения.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	SeedDemoData bool   `yaml:"seed_demo_data" env:"SEED_DEMO_DATA"`
	HTTPServer   `yaml:"http_server"`
	JWTToken     `yaml:"jwttoken"`
	Admin        `yaml:"admin"`
	ImageEdit    `yaml:"image_edit"`
	RabbitMQ     `yaml:"rabbitmq"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Admin — учётные данные единственного администратора.
type Admin struct {
	AdminEmail string `yaml:"email" env:"ADMIN_EMAIL" env-default:"admin@vtv.com"`
	AdminPIN   string `yaml:"pin" env:"ADMIN_PIN"`
}

// ImageEdit настраивает редактирование обложек.
// Пустой ключ отключает функцию, обработчик отвечает 503.
type ImageEdit struct {
	GeminiAPIKey string        `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model        string        `yaml:"model" env-default:"gemini-2.5-flash-image"`
	RateInterval time.Duration `yaml:"rate_interval" env-default:"10s"`
	RateBurst    int           `yaml:"rate_burst" env-default:"3"`
}

// RabbitMQ настраивает публикацию событий аккаунтов. Пустой URL отключает брокер.
type RabbitMQ struct {
	RabbitMQURL  string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange     string        `yaml:"exchange" env-default:"accounts"`
	Retries      int           `yaml:"retries" env-default:"5"`
	RetryDelay   time.Duration `yaml:"retry_delay" env-default:"2s"`
	AuditEnabled bool          `yaml:"audit_enabled"`
}

// ErrMissingSecret возвращается, если не задан ключ подписи JWT или PIN администратора.
var ErrMissingSecret = errors.New("jwt secret key and admin pin must be set")

// Load читает конфиг по пути path и проверяет обязательные секреты.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if cfg.JWTSecretKey == "" || cfg.AdminPIN == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingSecret)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// String выводит конфиг без секретов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"SeedDemoData: %t\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n"+
			"Admin:\n"+
			"  Email: %s\n"+
			"ImageEdit:\n"+
			"  Enabled: %t\n"+
			"  Model: %s\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n",
		c.Env,
		c.SeedDemoData,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.TokenTTL,
		c.AdminEmail,
		c.GeminiAPIKey != "",
		c.Model,
		c.RabbitMQURL != "",
		c.Exchange,
	)
}
