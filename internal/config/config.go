package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	NewsAPI   NewsAPIConfig   `yaml:"newsapi"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	HTTP      HTTPConfig      `yaml:"http"`
	LogLevel  string          `yaml:"log_level"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

type NewsAPIConfig struct {
	BaseURL  string        `yaml:"base_url"`
	APIKey   string        `yaml:"api_key"`
	PageSize int           `yaml:"page_size"`
	Timeout  time.Duration `yaml:"timeout"`
	Retry    RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type SchedulerConfig struct {
	FanoutInterval    time.Duration `yaml:"fanout_interval"`
	RetentionInterval time.Duration `yaml:"retention_interval"`
	RetentionDays     int           `yaml:"retention_days"`
	Workers           int           `yaml:"workers"`
	QueueSize         int           `yaml:"queue_size"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "news_radar"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "articles"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "ingested_articles"
	}
	if c.NewsAPI.BaseURL == "" {
		c.NewsAPI.BaseURL = "https://newsapi.org/v2/top-headlines"
	}
	if c.NewsAPI.PageSize == 0 {
		// Provider-imposed ceiling per request.
		c.NewsAPI.PageSize = 100
	}
	if c.NewsAPI.Timeout == 0 {
		c.NewsAPI.Timeout = 30 * time.Second
	}
	if c.NewsAPI.Retry.MaxAttempts == 0 {
		c.NewsAPI.Retry.MaxAttempts = 3
	}
	if c.NewsAPI.Retry.InitialBackoff == 0 {
		c.NewsAPI.Retry.InitialBackoff = 1 * time.Second
	}
	if c.NewsAPI.Retry.MaxBackoff == 0 {
		c.NewsAPI.Retry.MaxBackoff = 30 * time.Second
	}
	if c.Scheduler.FanoutInterval == 0 {
		c.Scheduler.FanoutInterval = 1 * time.Hour
	}
	if c.Scheduler.RetentionInterval == 0 {
		c.Scheduler.RetentionInterval = 24 * time.Hour
	}
	if c.Scheduler.RetentionDays == 0 {
		c.Scheduler.RetentionDays = 30
	}
	if c.Scheduler.Workers == 0 {
		c.Scheduler.Workers = 4
	}
	if c.Scheduler.QueueSize == 0 {
		c.Scheduler.QueueSize = 64
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
