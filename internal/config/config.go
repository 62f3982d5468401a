package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Limits   LimitsConfig   `mapstructure:"limits"`
}

type ServerConfig struct {
	Port      int `mapstructure:"port"`
	BodyLimit int `mapstructure:"body_limit"`
}

type DatabaseConfig struct {
	DSN  string `mapstructure:"dsn"`
	Seed bool   `mapstructure:"seed"`
}

type SessionConfig struct {
	Backend string        `mapstructure:"backend"` // sql | redis
	Cookie  string        `mapstructure:"cookie"`
	TTL     time.Duration `mapstructure:"ttl"`
	Secure  bool          `mapstructure:"secure"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type LimitsConfig struct {
	LoginMax    int           `mapstructure:"login_max"`
	LoginWindow time.Duration `mapstructure:"login_window"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("database.dsn", "shop.db")
	v.SetDefault("database.seed", false)
	v.SetDefault("session.backend", "sql")
	v.SetDefault("session.cookie", "sid")
	v.SetDefault("session.ttl", 14*24*time.Hour)
	v.SetDefault("session.secure", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("limits.login_max", 5)
	v.SetDefault("limits.login_window", 10*time.Minute)
}

// Load reads defaults, then the optional yaml file at path, then SHOP_* env vars.
// An empty path skips the file.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("shop")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in defaults without consulting env or files.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}
