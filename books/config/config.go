package config

import (
	"log"
	"sync"
	"time"

	"github.com/asanbekov/book-catalog/pkg/auth"
	"github.com/asanbekov/book-catalog/pkg/kafka"
	"github.com/asanbekov/book-catalog/pkg/logger"
	"github.com/asanbekov/book-catalog/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

const EnvProduction = "production"

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"BOOKS_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"BOOKS_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"30s"`
	WriteTimeout time.Duration
}

type Config struct {
	Env      string      `yaml:"env" envconfig:"APP_ENV" default:"development"`
	Server   HTTPServer  `yaml:"server"`
	Database postgres.DB `yaml:"db"`
	Kafka    kafka.Config
	Auth     auth.Config `yaml:"auth"`
	Log      logger.Log  `yaml:"log"`
}

func (c *Config) Production() bool {
	return c.Env == EnvProduction
}

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithWriteTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Server.WriteTimeout = timeout
	}
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
