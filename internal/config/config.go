// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Notebook NotebookConfig `mapstructure:"notebook"`
	Media    MediaConfig    `mapstructure:"media"`
	Speech   SpeechConfig   `mapstructure:"speech"`
	Learning LearningConfig `mapstructure:"learning"`
}

type GeminiConfig struct {
	APIKey         string        `mapstructure:"api_key" validate:"required"`
	TextModel      string        `mapstructure:"text_model"`
	ImageModel     string        `mapstructure:"image_model"`
	SpeechModel    string        `mapstructure:"speech_model"`
	Voice          string        `mapstructure:"voice"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type NotebookConfig struct {
	Backend      string `mapstructure:"backend" validate:"oneof=snapshot sqlite"`
	SnapshotPath string `mapstructure:"snapshot_path"`
	SQLitePath   string `mapstructure:"sqlite_path"`
}

type MediaConfig struct {
	Directory string `mapstructure:"directory"`
}

type SpeechConfig struct {
	CacheSize int `mapstructure:"cache_size" validate:"min=1"`
}

type LearningConfig struct {
	SourceLanguage string `mapstructure:"source_language" validate:"required"`
	TargetLanguage string `mapstructure:"target_language" validate:"required"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lexinote")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("gemini.text_model", "gemini-2.5-flash")
	v.SetDefault("gemini.image_model", "gemini-2.0-flash-preview-image-generation")
	v.SetDefault("gemini.speech_model", "gemini-2.5-flash-preview-tts")
	v.SetDefault("gemini.voice", "Kore")
	v.SetDefault("gemini.request_timeout", time.Minute)
	v.SetDefault("notebook.backend", "snapshot")
	v.SetDefault("notebook.snapshot_path", filepath.Join("notebooks", "notebook.json"))
	v.SetDefault("notebook.sqlite_path", filepath.Join("notebooks", "notebook.db"))
	v.SetDefault("media.directory", "media")
	v.SetDefault("speech.cache_size", 128)
	v.SetDefault("learning.source_language", "en")
	v.SetDefault("learning.target_language", "es")

	// API keys come from the environment only, never from the config file.
	if err := v.BindEnv("gemini.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
