package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultPath is where Load looks for the JSON config file when no path is given.
const DefaultPath = "config/config.json"

const envPrefix = "SUMMAGRAPH"

// Image backends understood by the renderer.
const (
	BackendDoubao = "doubao"
	BackendBanana = "banana"
)

// Workspace naming policies.
const (
	NamingTimestamp   = "timestamp"
	NamingOnCollision = "on-collision"
)

// ErrInvalidConfig marks configuration that can never produce a working pipeline.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds everything the process reads once at start-up.
type Config struct {
	AppEnv         string   `mapstructure:"app_env" json:"app_env"`
	LogLevel       string   `mapstructure:"log_level" json:"log_level"`
	ServerAddr     string   `mapstructure:"server_addr" json:"server_addr,omitempty"`
	OutputRoot     string   `mapstructure:"output_root" json:"output_root"`
	ReferencesDirs []string `mapstructure:"references_dirs" json:"references_dirs"`
	NamingPolicy   string   `mapstructure:"naming_policy" json:"naming_policy"`
	T2IBackend     string   `mapstructure:"t2i_backend" json:"t2i_backend"`

	LLM    LLMConfig    `mapstructure:"llm" json:"llm"`
	Doubao DoubaoConfig `mapstructure:"doubao" json:"doubao"`
	Banana BananaConfig `mapstructure:"banana" json:"banana"`
	Server ServerConfig `mapstructure:"server" json:"server"`
}

// LLMConfig configures the OpenAI-compatible chat completion endpoint used for analysis.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider" json:"provider,omitempty"`
	Model       string        `mapstructure:"model" json:"model,omitempty"`
	APIKey      string        `mapstructure:"api_key" json:"api_key,omitempty"`
	BaseURL     string        `mapstructure:"base_url" json:"base_url,omitempty"`
	Temperature float64       `mapstructure:"temperature" json:"temperature,omitempty"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout,omitempty"`
}

// DoubaoConfig configures the Ark (OpenAI-compatible) image endpoint.
type DoubaoConfig struct {
	Model     string        `mapstructure:"model" json:"model,omitempty"`
	APIKey    string        `mapstructure:"api_key" json:"api_key,omitempty"`
	BaseURL   string        `mapstructure:"base_url" json:"base_url,omitempty"`
	Quality   string        `mapstructure:"quality" json:"quality,omitempty"`
	Watermark bool          `mapstructure:"watermark" json:"watermark,omitempty"`
	Timeout   time.Duration `mapstructure:"timeout" json:"timeout,omitempty"`
}

// BananaConfig configures the nano-banana image endpoint.
type BananaConfig struct {
	Model     string        `mapstructure:"model" json:"model,omitempty"`
	APIKey    string        `mapstructure:"api_key" json:"api_key,omitempty"`
	APIURL    string        `mapstructure:"api_url" json:"api_url,omitempty"`
	ImageSize string        `mapstructure:"image_size" json:"image_size,omitempty"`
	Timeout   time.Duration `mapstructure:"timeout" json:"timeout,omitempty"`
}

// ServerConfig holds HTTP front end limits.
type ServerConfig struct {
	RateLimitPerMinute int           `mapstructure:"rate_limit_per_minute" json:"rate_limit_per_minute,omitempty"`
	GenerateTimeout    time.Duration `mapstructure:"generate_timeout" json:"generate_timeout,omitempty"`
}

var defaults = map[string]any{
	"app_env":         "development",
	"log_level":       "",
	"server_addr":     ":8000",
	"output_root":     "outputs",
	"references_dirs": []string{"references"},
	"naming_policy":   NamingTimestamp,
	"t2i_backend":     BackendBanana,

	"llm.provider":    "doubao",
	"llm.model":       "doubao-seed-1-6-251015",
	"llm.api_key":     "",
	"llm.base_url":    "https://ark.cn-beijing.volces.com/api/v3",
	"llm.temperature": 0.2,
	"llm.timeout":     "60s",

	"doubao.model":     "doubao-seedream-3-0-t2i-250415",
	"doubao.api_key":   "",
	"doubao.base_url":  "https://ark.cn-beijing.volces.com/api/v3",
	"doubao.quality":   "",
	"doubao.watermark": false,
	"doubao.timeout":   "120s",

	"banana.model":      "nano-banana-2",
	"banana.api_key":    "",
	"banana.api_url":    "https://ai.t8star.cn/v1/images/generations",
	"banana.image_size": "2K",
	"banana.timeout":    "300s",

	"server.rate_limit_per_minute": 30,
	"server.generate_timeout":      "10m",
}

// Load reads .env files, the optional JSON config file at path, and SUMMAGRAPH_* environment
// overrides, then validates the result.
func Load(path string) (Config, error) {
	loadDotEnv()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("stat config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// dotEnvFiles are loaded in order; a missing file is skipped without affecting the others.
var dotEnvFiles = []string{".env", ".env.local"}

func loadDotEnv() {
	for _, f := range dotEnvFiles {
		_ = godotenv.Load(f)
	}
}

// Validate rejects values that are fatal regardless of which command runs.
func (c Config) Validate() error {
	switch c.T2IBackend {
	case BackendDoubao, BackendBanana:
	default:
		return fmt.Errorf("%w: t2i_backend %q not supported (want %s or %s)", ErrInvalidConfig, c.T2IBackend, BackendDoubao, BackendBanana)
	}
	switch c.NamingPolicy {
	case NamingTimestamp, NamingOnCollision:
	default:
		return fmt.Errorf("%w: naming_policy %q not supported", ErrInvalidConfig, c.NamingPolicy)
	}
	if strings.TrimSpace(c.OutputRoot) == "" {
		return fmt.Errorf("%w: output_root is required", ErrInvalidConfig)
	}
	return nil
}
