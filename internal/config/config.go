package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port" env:"PORT"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url" env:"POSTGRES_URL"`
	} `yaml:"postgres"`
	Quiz struct {
		Bank          string `yaml:"bank" env:"QUIZ_BANK"`
		QuestionsFile string `yaml:"questionsFile" env:"QUIZ_QUESTIONS_FILE"`
		AnswerWindow  string `yaml:"answerWindow" env:"QUIZ_ANSWER_WINDOW"`
	} `yaml:"quiz"`
	Poll struct {
		Lobby       string `yaml:"lobby" env:"POLL_LOBBY"`
		Question    string `yaml:"question" env:"POLL_QUESTION"`
		Leaderboard string `yaml:"leaderboard" env:"POLL_LEADERBOARD"`
	} `yaml:"poll"`
	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"log"`
}

// Load reads YAML config from path and applies environment overrides.
// A missing file is not an error: the environment alone may configure the service.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// BankID returns the configured question bank id or "default".
func (c Config) BankID() string {
	if c.Quiz.Bank == "" {
		return "default"
	}
	return c.Quiz.Bank
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}
