package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const DefaultBaseURL = "https://securepay.tinkoff.ru/v2/"

var (
	ErrMissingTerminalKey      = errors.New("terminal.key is required")
	ErrMissingTerminalPassword = errors.New("terminal.password is required")
)

type Config struct {
	Terminal  TerminalConfig  `mapstructure:"terminal"`
	API       APIConfig       `mapstructure:"api"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Worker    WorkerConfig    `mapstructure:"worker"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// TerminalConfig identifies the merchant terminal. Password is the shared
// secret used for request tokens and is never sent.
type TerminalConfig struct {
	Key      string `mapstructure:"key"`
	Password string `mapstructure:"password"`
	Debug    bool   `mapstructure:"debug"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	URL            string `mapstructure:"url"`
	MaxConnections int    `mapstructure:"max_connections"`
}

type JWTConfig struct {
	Secret         string        `mapstructure:"secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type RateLimitConfig struct {
	NotificationsPerMinute int `mapstructure:"notifications_per_minute"`
	APIReadPerMinute       int `mapstructure:"api_read_per_minute"`
}

type WorkerConfig struct {
	SyncInterval time.Duration `mapstructure:"sync_interval"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("terminal.key", "")
	v.SetDefault("terminal.password", "")
	v.SetDefault("terminal.debug", false)
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("database.url", "file:data/notifications.db")
	v.SetDefault("database.max_connections", 1)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.access_token_ttl", time.Hour)
	v.SetDefault("rate_limit.notifications_per_minute", 600)
	v.SetDefault("rate_limit.api_read_per_minute", 120)
	v.SetDefault("worker.sync_interval", 5*time.Minute)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
}

// Load reads the YAML file at path, if any, and overlays environment
// variables such as TERMINAL_KEY or API_BASE_URL.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the values every binary needs to talk to the API.
func (c *Config) Validate() error {
	if c.Terminal.Key == "" {
		return ErrMissingTerminalKey
	}
	if c.Terminal.Password == "" {
		return ErrMissingTerminalPassword
	}
	return nil
}
