// Package config loads the newsroom configuration from a JSON or YAML file, a .env file
// and the process environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultServerAddr     = ":8080"
	DefaultPagesDir       = "generated_pages"
	DefaultImagesDir      = "generated_images"
	DefaultImageSize      = "1024x1024"
	DefaultImageModel     = "dall-e-3"
	DefaultRevisionMarker = "revise"
)

// Provider names understood by the client builders.
const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderMock     = "mock"
	ProviderNone     = "none"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	LLM        *LLMConfig   `json:"llm,omitempty" yaml:"llm,omitempty"`
	Image      *ImageConfig `json:"image,omitempty" yaml:"image,omitempty"`
	ServerAddr string       `json:"server_addr,omitempty" yaml:"server_addr,omitempty"`
	Output     OutputConfig `json:"output" yaml:"output"`
	Review     ReviewConfig `json:"review" yaml:"review"`
	Log        LogConfig    `json:"log" yaml:"log"`
}

// LLMConfig selects the chat model used by the text capabilities.
type LLMConfig struct {
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// ImageConfig selects the image model. Key and base URL fall back to the LLM ones.
type ImageConfig struct {
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
	Size     string `json:"size,omitempty" yaml:"size,omitempty"`
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

type OutputConfig struct {
	PagesDir  string `json:"pages_dir,omitempty" yaml:"pages_dir,omitempty"`
	ImagesDir string `json:"images_dir,omitempty" yaml:"images_dir,omitempty"`
}

type ReviewConfig struct {
	RevisionMarker string `json:"revision_marker,omitempty" yaml:"revision_marker,omitempty"`
}

type LogConfig struct {
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	JSON  bool   `json:"json,omitempty" yaml:"json,omitempty"`
}

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// Load reads path (when non-empty), applies .env and environment overrides, fills
// defaults and validates the result.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return LoadWith(path, os.LookupEnv)
}

// LoadWith is Load without the .env step and with an explicit environment.
func LoadWith(path string, lookup LookupFunc) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if cfg, err = Parse(data, filepath.Ext(path)); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if lookup != nil {
		cfg.applyEnv(lookup)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes data as YAML for .yaml/.yml extensions and as JSON otherwise.
func Parse(data []byte, ext string) (Config, error) {
	var cfg Config
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup LookupFunc) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	llm := func() *LLMConfig {
		if c.LLM == nil {
			c.LLM = &LLMConfig{}
		}
		return c.LLM
	}
	image := func() *ImageConfig {
		if c.Image == nil {
			c.Image = &ImageConfig{}
		}
		return c.Image
	}

	if v, ok := get("LLM_PROVIDER"); ok {
		llm().Provider = v
	}
	if v, ok := get("LLM_MODEL"); ok {
		llm().Model = v
	}
	if v, ok := get("LLM_API_KEY"); ok {
		llm().APIKey = v
	} else if v, ok := get("OPENAI_API_KEY"); ok && (c.LLM == nil || c.LLM.APIKey == "") {
		llm().APIKey = v
	}
	if v, ok := get("LLM_BASE_URL"); ok {
		llm().BaseURL = v
	}
	if v, ok := get("IMAGE_PROVIDER"); ok {
		image().Provider = v
	}
	if v, ok := get("IMAGE_MODEL"); ok {
		image().Model = v
	}
	if v, ok := get("SERVER_ADDR"); ok {
		c.ServerAddr = v
	}
	if v, ok := get("REVISION_MARKER"); ok {
		c.Review.RevisionMarker = v
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := get("LOG_JSON"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Log.JSON = b
		}
	}
}

func (c *Config) applyDefaults() {
	if c.ServerAddr == "" {
		c.ServerAddr = DefaultServerAddr
	}
	if c.Output.PagesDir == "" {
		c.Output.PagesDir = DefaultPagesDir
	}
	if c.Output.ImagesDir == "" {
		c.Output.ImagesDir = DefaultImagesDir
	}
	if c.Review.RevisionMarker == "" {
		c.Review.RevisionMarker = DefaultRevisionMarker
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.LLM == nil {
		return
	}
	if c.Image == nil {
		c.Image = &ImageConfig{}
	}
	if c.Image.Provider == "" {
		switch c.LLM.Provider {
		case ProviderOpenAI, ProviderMock:
			c.Image.Provider = c.LLM.Provider
		default:
			// DeepSeek has no images endpoint.
			c.Image.Provider = ProviderNone
		}
	}
	if c.Image.Model == "" && c.Image.Provider == ProviderOpenAI {
		c.Image.Model = DefaultImageModel
	}
	if c.Image.Size == "" {
		c.Image.Size = DefaultImageSize
	}
	if c.Image.APIKey == "" && c.LLM.Provider == ProviderOpenAI {
		c.Image.APIKey = c.LLM.APIKey
	}
	if c.Image.BaseURL == "" && c.LLM.Provider == ProviderOpenAI {
		c.Image.BaseURL = c.LLM.BaseURL
	}
}

// Validate checks provider names and provider-specific requirements.
func (c Config) Validate() error {
	if c.LLM == nil || c.LLM.Provider == "" {
		return fmt.Errorf("%w: llm.provider is required (openai, deepseek or mock)", ErrInvalid)
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderMock:
	case ProviderDeepSeek:
		if c.LLM.BaseURL == "" {
			return fmt.Errorf("%w: llm provider deepseek requires base_url (OpenAI-compatible endpoint)", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: llm provider %s not supported", ErrInvalid, c.LLM.Provider)
	}
	if c.Image != nil {
		switch c.Image.Provider {
		case ProviderOpenAI, ProviderMock, ProviderNone:
		default:
			return fmt.Errorf("%w: image provider %s not supported", ErrInvalid, c.Image.Provider)
		}
	}
	if strings.TrimSpace(c.Review.RevisionMarker) == "" {
		return fmt.Errorf("%w: review.revision_marker must not be blank", ErrInvalid)
	}
	return nil
}
