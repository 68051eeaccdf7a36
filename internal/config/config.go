package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds process configuration. Values come from an optional YAML
// file, overridden by environment variables.
type Config struct {
	Port              string `yaml:"port"`
	DataDir           string `yaml:"dataDir"`
	MongoURI          string `yaml:"mongoUri"`
	MongoDatabase     string `yaml:"mongoDatabase"`
	RedisURI          string `yaml:"redisUri"`
	SessionSecret     string `yaml:"sessionSecret"`
	SessionTTLMinutes int    `yaml:"sessionTtlMinutes"`
	OpenAIModel       string `yaml:"openaiModel"`
	OpenAIKey         string `yaml:"-"` // environment only, never serialized
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Port:              "8080",
		DataDir:           "configs",
		MongoDatabase:     "carecompass",
		SessionSecret:     "triage-dev-secret-change-in-prod",
		SessionTTLMinutes: 60,
		OpenAIModel:       "gpt-4o-mini",
	}
}

// Load reads the config file at path (missing file is fine) and applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults + env only.
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	if cfg.SessionTTLMinutes <= 0 {
		return nil, fmt.Errorf("config: sessionTtlMinutes must be positive")
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Port, "PORT")
	setString(&c.DataDir, "DATA_DIR")
	setString(&c.MongoURI, "MONGO_URI")
	setString(&c.MongoDatabase, "MONGO_DATABASE")
	setString(&c.RedisURI, "REDIS_URI")
	setString(&c.SessionSecret, "SESSION_SECRET")
	setString(&c.OpenAIModel, "OPENAI_MODEL")
	c.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SessionTTLMinutes = n
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
