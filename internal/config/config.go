package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// Layout
	TextsDir     string
	DialoguesDir string
	ImagesDir    string
	NotebooksDir string

	// Dialogue store
	StoreBackend string // "file" or "sqlite" (default: file)
	DatabasePath string // SQLite database (default: data/dialogos.db)

	// OpenAI API (for image generation)
	OpenAIAPIKey  string
	OpenAIBaseURL string

	// Images
	ImageModel        string
	ImageSize         string
	ImageMaxDimension int // 0 keeps the generated size
	ImageTimeout      time.Duration

	// Notebooks
	NotebookLayout string // "plain" or "slides" (default: plain)
	Executable     string // dialogos binary called from notebooks

	// Logging
	LogLevel string
	LogFile  string
}

// fileConfig mirrors the optional dialogos.yaml.
type fileConfig struct {
	TextsDir          string `yaml:"texts_dir"`
	DialoguesDir      string `yaml:"dialogues_dir"`
	ImagesDir         string `yaml:"images_dir"`
	NotebooksDir      string `yaml:"notebooks_dir"`
	StoreBackend      string `yaml:"store_backend"`
	DatabasePath      string `yaml:"database_path"`
	OpenAIBaseURL     string `yaml:"openai_base_url"`
	ImageModel        string `yaml:"image_model"`
	ImageSize         string `yaml:"image_size"`
	ImageMaxDimension int    `yaml:"image_max_dimension"`
	ImageTimeout      string `yaml:"image_timeout"`
	NotebookLayout    string `yaml:"notebook_layout"`
	Executable        string `yaml:"executable"`
	LogLevel          string `yaml:"log_level"`
	LogFile           string `yaml:"log_file"`
}

const defaultConfigFile = "dialogos.yaml"

// Load reads configuration from dialogos.yaml (or DIALOGOS_CONFIG) and
// environment variables, which take precedence. It automatically loads .env
// file if present. A missing OpenAI key falls back to the OS keyring.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	fc, err := loadFile()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		TextsDir:       getEnv("TEXTS_DIR", orDefault(fc.TextsDir, "texts")),
		DialoguesDir:   getEnv("DIALOGUES_DIR", orDefault(fc.DialoguesDir, "dialogues")),
		ImagesDir:      getEnv("IMAGES_DIR", orDefault(fc.ImagesDir, "imgs")),
		NotebooksDir:   getEnv("NOTEBOOKS_DIR", orDefault(fc.NotebooksDir, "notebooks")),
		StoreBackend:   getEnv("STORE_BACKEND", orDefault(fc.StoreBackend, "file")),
		DatabasePath:   getEnv("DATABASE_PATH", orDefault(fc.DatabasePath, "data/dialogos.db")),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", fc.OpenAIBaseURL),
		ImageModel:     getEnv("IMAGE_MODEL", orDefault(fc.ImageModel, "dall-e-3")),
		ImageSize:      getEnv("IMAGE_SIZE", orDefault(fc.ImageSize, "1024x1024")),
		NotebookLayout: getEnv("NOTEBOOK_LAYOUT", orDefault(fc.NotebookLayout, "plain")),
		Executable:     getEnv("DIALOGOS_EXECUTABLE", fc.Executable),
		LogLevel:       getEnv("LOG_LEVEL", orDefault(fc.LogLevel, "info")),
		LogFile:        getEnv("LOG_FILE", orDefault(fc.LogFile, "dialogos.log")),
	}

	cfg.ImageTimeout, err = time.ParseDuration(getEnv("IMAGE_TIMEOUT", orDefault(fc.ImageTimeout, "2m")))
	if err != nil {
		return nil, fmt.Errorf("invalid IMAGE_TIMEOUT: %w", err)
	}

	maxDim, err := strconv.Atoi(getEnv("IMAGE_MAX_DIMENSION", strconv.Itoa(fc.ImageMaxDimension)))
	if err != nil {
		return nil, fmt.Errorf("invalid IMAGE_MAX_DIMENSION: %w", err)
	}
	cfg.ImageMaxDimension = maxDim

	if cfg.OpenAIAPIKey == "" {
		key, err := LoadAPIKey()
		if err != nil {
			slog.Debug("keyring lookup failed", "error", err)
		}
		cfg.OpenAIAPIKey = key
	}

	return cfg, nil
}

// loadFile reads the YAML config. The default file is optional; a path named
// through DIALOGOS_CONFIG must exist.
func loadFile() (fileConfig, error) {
	var fc fileConfig

	path := os.Getenv("DIALOGOS_CONFIG")
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return fc, nil
	}
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.TextsDir == "" {
		return fmt.Errorf("TEXTS_DIR is required")
	}
	if c.NotebooksDir == "" {
		return fmt.Errorf("NOTEBOOKS_DIR is required")
	}
	switch c.StoreBackend {
	case "file", "":
		if c.DialoguesDir == "" {
			return fmt.Errorf("DIALOGUES_DIR is required when STORE_BACKEND is file")
		}
	case "sqlite":
		if c.DatabasePath == "" {
			return fmt.Errorf("DATABASE_PATH is required when STORE_BACKEND is sqlite")
		}
	default:
		return fmt.Errorf("invalid STORE_BACKEND: %s (must be 'file' or 'sqlite')", c.StoreBackend)
	}
	switch c.NotebookLayout {
	case "plain", "slides", "":
	default:
		return fmt.Errorf("invalid NOTEBOOK_LAYOUT: %s (must be 'plain' or 'slides')", c.NotebookLayout)
	}
	if c.ImageMaxDimension < 0 {
		return fmt.Errorf("IMAGE_MAX_DIMENSION must not be negative")
	}
	return nil
}

// ValidateForIllustration checks configuration needed for image generation.
func (c *Config) ValidateForIllustration() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ImagesDir == "" {
		return fmt.Errorf("IMAGES_DIR is required")
	}
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required for illustration (or run 'dialogos login')")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func orDefault(val, defaultVal string) string {
	if val != "" {
		return val
	}
	return defaultVal
}
