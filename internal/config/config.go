package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Content   ContentConfig   `yaml:"content"`
	AI        AIConfig        `yaml:"ai"`
	Auth      AuthConfig      `yaml:"auth"`
	State     StateConfig     `yaml:"state"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ContentConfig points at the external document store that holds the
// exercise catalog and persisted workouts.
type ContentConfig struct {
	APIURL  string `yaml:"api_url"`
	Dataset string `yaml:"dataset"`
	Token   string `yaml:"token"`
}

// AIConfig configures the text-guidance backend. BaseURL is normally empty
// (public endpoint); it is overridable for testing.
type AIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// StateConfig locates the local durable state (weight-unit preferences).
type StateConfig struct {
	Dir string `yaml:"dir"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A .env file in the working directory is loaded first when
// present, so secrets can stay out of the YAML. Env vars use the prefix
// WORKOUT_ and underscore-separated paths:
//
//	WORKOUT_SERVER_HOST, WORKOUT_SERVER_PORT,
//	WORKOUT_CONTENT_API_URL, WORKOUT_CONTENT_DATASET, WORKOUT_CONTENT_TOKEN,
//	WORKOUT_AI_API_KEY, WORKOUT_AI_MODEL,
//	WORKOUT_AUTH_API_KEY, WORKOUT_STATE_DIR
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WORKOUT_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("WORKOUT_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("WORKOUT_CONTENT_API_URL"); v != "" {
		cfg.Content.APIURL = v
	}
	if v := os.Getenv("WORKOUT_CONTENT_DATASET"); v != "" {
		cfg.Content.Dataset = v
	}
	if v := os.Getenv("WORKOUT_CONTENT_TOKEN"); v != "" {
		cfg.Content.Token = v
	}
	if v := os.Getenv("WORKOUT_AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("WORKOUT_AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("WORKOUT_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("WORKOUT_STATE_DIR"); v != "" {
		cfg.State.Dir = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-1.5-flash"
	}
	if cfg.State.Dir == "" {
		cfg.State.Dir = "state"
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Content.APIURL == "" {
		return fmt.Errorf("content.api_url is required")
	}
	if c.Content.Dataset == "" {
		return fmt.Errorf("content.dataset is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	return nil
}
