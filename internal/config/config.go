package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/meetocure/admin-api/pkg/logger"
	"github.com/meetocure/admin-api/pkg/messaging/redis"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"

	envPrefix = "ADMIN_API"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Settings SettingsConfig `mapstructure:"settings"`
	Security SecurityConfig `mapstructure:"security"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	// ExposeErrors puts the raw error text of 500 responses in the body
	ExposeErrors bool   `mapstructure:"expose_errors"`
	Mode         string `mapstructure:"mode"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
	// HSTS sends Strict-Transport-Security; enable only behind TLS
	HSTS bool `mapstructure:"hsts"`
}

type DatabaseConfig struct {
	Driver         string        `mapstructure:"driver"`
	URI            string        `mapstructure:"uri"`
	Name           string        `mapstructure:"name"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	Channel      string        `mapstructure:"channel"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	// BreakerFailures consecutive publish failures stop publishing for
	// BreakerCooldown
	BreakerFailures int           `mapstructure:"breaker_failures"`
	BreakerCooldown time.Duration `mapstructure:"breaker_cooldown"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type SettingsConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.expose_errors", true)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.hsts", false)

	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "meetocure")
	v.SetDefault("database.connect_timeout", 10*time.Second)
	v.SetDefault("database.max_pool_size", 50)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.channel", "admin-api.events")
	v.SetDefault("redis.max_retries", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 0)
	v.SetDefault("redis.breaker_failures", 5)
	v.SetDefault("redis.breaker_cooldown", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", false)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("settings.cache_ttl", 30*time.Second)
	v.SetDefault("security.bcrypt_cost", 10)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "admin_api")
}

// Load reads .env, then the optional config file, then ADMIN_API_*
// environment overrides. path may name a config file explicitly; when empty
// the usual locations are searched and a missing file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/app/config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Plain names the original deployment used
	_ = v.BindEnv("database.uri", envPrefix+"_DATABASE_URI", "MONGO_URI")
	_ = v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "PORT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Database.Driver {
	case DriverMemory:
	case DriverMongo:
		if c.Database.URI == "" {
			return errors.New("database.uri is required for the mongo driver")
		}
		if c.Database.Name == "" {
			return errors.New("database.name is required for the mongo driver")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
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

func (c *LogConfig) ToLoggerConfig() logger.Config {
	return logger.Config{Level: c.Level, Console: c.Console}
}
