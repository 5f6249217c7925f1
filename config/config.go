package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Lang    string  `toml:"lang" mapstructure:"lang"`
	Workers int     `toml:"workers" mapstructure:"workers"`
	Admins  []int64 `toml:"admins" mapstructure:"admins"`
	Targets []int64 `toml:"targets" mapstructure:"targets"`

	Registry registryConfig `toml:"registry" mapstructure:"registry"`
	Log      logConfig      `toml:"log" mapstructure:"log"`
	DB       dbConfig       `toml:"db" mapstructure:"db"`
	Telegram telegramConfig `toml:"telegram" mapstructure:"telegram"`
}

type registryConfig struct {
	// Backend is "json" or "sqlite".
	Backend string `toml:"backend" mapstructure:"backend"`
	Path    string `toml:"path" mapstructure:"path"`
}

type logConfig struct {
	Level string `toml:"level" mapstructure:"level"`
	File  string `toml:"file" mapstructure:"file"`
}

type dbConfig struct {
	Session string `toml:"session" mapstructure:"session"`
}

type telegramConfig struct {
	Token      string      `toml:"token" mapstructure:"token"`
	AppID      int         `toml:"app_id" mapstructure:"app_id"`
	AppHash    string      `toml:"app_hash" mapstructure:"app_hash"`
	FloodRetry int         `toml:"flood_retry" mapstructure:"flood_retry"`
	RpcRetry   int         `toml:"rpc_retry" mapstructure:"rpc_retry"`
	Proxy      proxyConfig `toml:"proxy" mapstructure:"proxy"`
}

type proxyConfig struct {
	Enable bool   `toml:"enable" mapstructure:"enable"`
	URL    string `toml:"url" mapstructure:"url"`
}

var cfg *Config

func C() *Config {
	if cfg == nil {
		panic("config accessed before Init")
	}
	return cfg
}

func Init() error {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/kwrelay/")
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("KWRELAY")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("lang", "en")
	viper.SetDefault("workers", 3)

	viper.SetDefault("registry.backend", "json")
	viper.SetDefault("registry.path", "data/registry.json")

	viper.SetDefault("log.level", "info")

	viper.SetDefault("db.session", "data/session.db")

	viper.SetDefault("telegram.flood_retry", 5)
	viper.SetDefault("telegram.rpc_retry", 5)

	if err := viper.SafeWriteConfigAs("config.toml"); err != nil {
		if _, ok := err.(viper.ConfigFileAlreadyExistsError); !ok {
			return fmt.Errorf("error saving default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required")
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be greater than 0, got %d", cfg.Workers)
	}
	switch cfg.Registry.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("unknown registry backend: %q", cfg.Registry.Backend)
	}
	if len(cfg.Admins) == 0 {
		return fmt.Errorf("at least one admin user id is required")
	}
	if len(cfg.Targets) == 0 {
		return fmt.Errorf("at least one target chat id is required")
	}
	return nil
}
