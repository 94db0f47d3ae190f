package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Game     Game   `yaml:"game"`
	Redis    Redis  `yaml:"redis"`
}

// Game holds the defaults for new sessions.
type Game struct {
	Kind    string        `yaml:"kind" env:"GAME_KIND" env-default:"xiangqi"`
	VsAI    bool          `yaml:"vs-ai" env:"GAME_VS_AI"`
	AILevel string        `yaml:"ai-level" env:"GAME_AI_LEVEL" env-default:"medium"`
	AIDelay time.Duration `yaml:"ai-delay" env:"GAME_AI_DELAY" env-default:"140ms"`
	// Seed for the bot; 0 seeds from the clock.
	Seed int64 `yaml:"seed" env:"GAME_SEED" env-default:"0"`
}

// Redis is the optional frame publisher.
type Redis struct {
	Enabled       bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host          string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port          string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	ChannelPrefix string `yaml:"channel-prefix" env:"REDIS_CHANNEL_PREFIX" env-default:"boardgames:frames"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// SlogLevel parses log-level the way slog does ("debug", "WARN", "info+2");
// anything else falls back to info.
func (that *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(that.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}

func (that *Redis) Addr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
