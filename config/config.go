package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
	Mode           string        `mapstructure:"mode"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

type StorageConfig struct {
	// Driver is "memory" (seeded dashboard data) or "postgres".
	Driver string `mapstructure:"driver"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// URL renders the database settings as a postgres:// URL for migrate.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	Channel      string        `mapstructure:"channel"`
}

type GenAIConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float32       `mapstructure:"temperature"`
}

type MatchmakerConfig struct {
	BreakerMaxFailures uint32        `mapstructure:"breaker_max_failures"`
	BreakerInterval    time.Duration `mapstructure:"breaker_interval"`
	BreakerTimeout     time.Duration `mapstructure:"breaker_timeout"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

// OperatorConfig is a dashboard operator allowed to request tokens.
type OperatorConfig struct {
	Email        string `mapstructure:"email"`
	PasswordHash string `mapstructure:"password_hash"`
	Role         string `mapstructure:"role"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type WorkerConfig struct {
	HealthPort int `mapstructure:"health_port"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool   `mapstructure:"prometheus_enabled"`
	MetricsPath       string `mapstructure:"metrics_path"`
	Namespace         string `mapstructure:"namespace"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	GenAI      GenAIConfig      `mapstructure:"genai"`
	Matchmaker MatchmakerConfig `mapstructure:"matchmaker"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Operators  []OperatorConfig `mapstructure:"operators"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Cache      CacheConfig      `mapstructure:"cache"`
	SMTP       SMTPConfig       `mapstructure:"smtp"`
	Worker     WorkerConfig     `mapstructure:"worker"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

// Secrets are read from the environment with the DONOR_ prefix and win over
// anything in the config file.
type Secrets struct {
	GenAIAPIKey      string `envconfig:"GENAI_API_KEY"`
	JWTSecret        string `envconfig:"JWT_SECRET"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD"`
	DatabaseHost     string `envconfig:"DATABASE_HOST"`
	SMTPPassword     string `envconfig:"SMTP_PASSWORD"`
	RedisURL         string `envconfig:"REDIS_URL"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.max_header_bytes", 1<<20)
	v.SetDefault("server.mode", "release")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)

	v.SetDefault("storage.driver", "memory")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "donorconnect")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.retry_backoff", 100*time.Millisecond)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.channel", "donor.contact")

	v.SetDefault("genai.model", "gemini-2.0-flash")
	v.SetDefault("genai.timeout", 30*time.Second)
	v.SetDefault("genai.temperature", 0.7)

	v.SetDefault("matchmaker.breaker_max_failures", 5)
	v.SetDefault("matchmaker.breaker_interval", time.Minute)
	v.SetDefault("matchmaker.breaker_timeout", 30*time.Second)

	v.SetDefault("jwt.issuer", "donorconnect")
	v.SetDefault("jwt.expiry_hours", 12)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 5)
	v.SetDefault("rate_limit.burst", 10)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)

	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from", "alerts@donorconnect.example")

	v.SetDefault("worker.health_port", 8081)

	v.SetDefault("monitoring.prometheus_enabled", true)
	v.SetDefault("monitoring.metrics_path", "/metrics")
	v.SetDefault("monitoring.namespace", "donorconnect")
}

// LoadConfig reads config.yml (or CONFIG_FILE) and overlays secrets from the
// environment. A missing config file is not an error; defaults apply.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/app")
		v.AddConfigPath("/app/config")
	}

	v.SetEnvPrefix("DONOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applySecrets(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applySecrets(cfg *Config) error {
	var s Secrets
	if err := envconfig.Process("donor", &s); err != nil {
		return fmt.Errorf("failed to read secrets from environment: %w", err)
	}

	if s.GenAIAPIKey != "" {
		cfg.GenAI.APIKey = s.GenAIAPIKey
	}
	if s.JWTSecret != "" {
		cfg.JWT.Secret = s.JWTSecret
	}
	if s.DatabasePassword != "" {
		cfg.Database.Password = s.DatabasePassword
	}
	if s.DatabaseHost != "" {
		cfg.Database.Host = s.DatabaseHost
	}
	if s.SMTPPassword != "" {
		cfg.SMTP.Password = s.SMTPPassword
	}
	if s.RedisURL != "" {
		cfg.Redis.URL = s.RedisURL
	}
	return nil
}

// Validate rejects configurations the services cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	if c.GenAI.Timeout <= 0 {
		return fmt.Errorf("genai.timeout must be positive")
	}
	if c.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("jwt.expiry_hours must be positive")
	}
	return nil
}
