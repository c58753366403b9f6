package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"github.com/Michael4-fab/MedicalLabSimulator/pkg/messaging/redis"
)

type ServerConfig struct {
	Port           int           `yaml:"port" mapstructure:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes" mapstructure:"max_header_bytes"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	Name     string `yaml:"name" mapstructure:"name"`
	SSLMode  string `yaml:"sslmode" mapstructure:"sslmode"`
}

type RedisConfig struct {
	URL          string        `yaml:"url" mapstructure:"url"`
	MaxRetries   int           `yaml:"max_retries" mapstructure:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff" mapstructure:"retry_backoff"`
	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
}

// SMTPTransportConfig describes one SMTP endpoint. The notifier is
// configured with two of these and falls back to the second when the
// first cannot deliver.
type SMTPTransportConfig struct {
	Host     string        `yaml:"host" mapstructure:"host"`
	Port     int           `yaml:"port" mapstructure:"port"`
	SSL      bool          `yaml:"ssl" mapstructure:"ssl"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Username string        `yaml:"username" mapstructure:"username"`
	Password string        `yaml:"password" mapstructure:"password"`
	From     string        `yaml:"from" mapstructure:"from"`
}

type SMTPConfig struct {
	Primary  SMTPTransportConfig `yaml:"primary" mapstructure:"primary"`
	Fallback SMTPTransportConfig `yaml:"fallback" mapstructure:"fallback"`
}

type Config struct {
	Server    ServerConfig   `yaml:"server" mapstructure:"server"`
	Database  DatabaseConfig `yaml:"database" mapstructure:"database"`
	Redis     RedisConfig    `yaml:"redis" mapstructure:"redis"`
	SMTP      SMTPConfig     `yaml:"smtp" mapstructure:"smtp"`
	RateLimit struct {
		Enabled           bool    `yaml:"enabled" mapstructure:"enabled"`
		RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
		Burst             int     `yaml:"burst" mapstructure:"burst"`
	} `yaml:"rate_limit" mapstructure:"rate_limit"`
	Monitoring struct {
		PrometheusEnabled bool   `yaml:"prometheus_enabled" mapstructure:"prometheus_enabled"`
		MetricsPath       string `yaml:"metrics_path" mapstructure:"metrics_path"`
	} `yaml:"monitoring" mapstructure:"monitoring"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/app")
	viper.AddConfigPath("/app/config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&config)
	applyDefaults(&config)

	return &config, nil
}

func applyEnvOverrides(config *Config) {
	if host := os.Getenv("DB_HOST"); host != "" {
		config.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Database.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		config.Database.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		config.Database.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		config.Database.Name = name
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		config.Redis.URL = url
	}
	if user := os.Getenv("SMTP_USERNAME"); user != "" {
		config.SMTP.Primary.Username = user
		config.SMTP.Fallback.Username = user
	}
	if password := os.Getenv("SMTP_PASSWORD"); password != "" {
		config.SMTP.Primary.Password = password
		config.SMTP.Fallback.Password = password
	}
}

func applyDefaults(config *Config) {
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 15 * time.Second
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 15 * time.Second
	}
	if config.SMTP.Primary.Timeout == 0 {
		config.SMTP.Primary.Timeout = 10 * time.Second
	}
	if config.SMTP.Fallback.Timeout == 0 {
		config.SMTP.Fallback.Timeout = 10 * time.Second
	}
	if config.RateLimit.RequestsPerSecond == 0 {
		config.RateLimit.RequestsPerSecond = 100
	}
	if config.RateLimit.Burst == 0 {
		config.RateLimit.Burst = 200
	}
	if config.Monitoring.MetricsPath == "" {
		config.Monitoring.MetricsPath = "/metrics"
	}
}

func (c *RedisConfig) ToBrokerConfig() redis.Config {
	return redis.Config{
		URL:          c.URL,
		MaxRetries:   c.MaxRetries,
		RetryBackoff: c.RetryBackoff,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
	}
}
