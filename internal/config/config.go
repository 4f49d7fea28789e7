package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
)

// Supported generator backends.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds all configuration from environment variables.
// It is built once at startup and never mutated afterwards.
type Config struct {
	// Credentials are not required at startup; an empty value fails the
	// first request that needs it.
	Token  string `envconfig:"BOT_TOKEN"`
	APIKey string `envconfig:"GOOGLE_API_KEY"`

	Port    int `envconfig:"PORT" default:"3000"`
	Workers int `envconfig:"BOT_WORKERS" default:"8"`

	Provider      string `envconfig:"PROVIDER" default:"gemini"`
	BaseURL       string `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	APIVersion    string `envconfig:"GEMINI_API_VERSION" default:"v1beta"`
	Model         string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash-latest"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta/openai"`

	// Path to config.toml file
	ConfigFile string `envconfig:"CONFIG_FILE" default:"config.toml"`

	// Messages loaded from config.toml
	Messages Messages
}

// Messages holds the fixed reply texts sent to chat users.
type Messages struct {
	PromptRequest string `toml:"prompt_request"`
	Failure       string `toml:"failure"`
}

// FileConfig represents the structure of config.toml.
type FileConfig struct {
	Messages Messages `toml:"messages"`
}

// DefaultMessages provides fallback texts if config.toml is not found.
var DefaultMessages = Messages{
	PromptRequest: "Please provide some text.",
	Failure:       "An error occurred while processing your request.",
}

// LoadEnv loads the configuration from environment variables.
func (c Config) LoadEnv() (Config, error) {
	cfg := c

	if err := envconfig.Process("", &cfg); err != nil {
		return c, err
	}

	switch cfg.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return c, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	return cfg, nil
}

// LoadFile loads reply messages from config.toml file.
func (c *Config) LoadFile() error {
	c.Messages = DefaultMessages

	configPath := c.ConfigFile
	if !filepath.IsAbs(configPath) {
		// Try current directory first
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			// Try executable directory
			execPath, err := os.Executable()
			if err == nil {
				configPath = filepath.Join(filepath.Dir(execPath), c.ConfigFile)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	var fileConfig FileConfig
	if _, err := toml.DecodeFile(configPath, &fileConfig); err != nil {
		return fmt.Errorf("failed to decode %s: %w", configPath, err)
	}

	if fileConfig.Messages.PromptRequest != "" {
		c.Messages.PromptRequest = fileConfig.Messages.PromptRequest
	}
	if fileConfig.Messages.Failure != "" {
		c.Messages.Failure = fileConfig.Messages.Failure
	}

	return nil
}

// Addr returns the listen address of the health endpoint.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func NewConfig() (*Config, error) {
	var cfg Config
	loadedCfg, err := cfg.LoadEnv()
	if err != nil {
		return nil, err
	}

	if err := loadedCfg.LoadFile(); err != nil {
		return nil, err
	}

	return &loadedCfg, nil
}

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(
			NewConfig,
		),
	)
}
