package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// Auth
	APIKey string `yaml:"api_key"`

	// Content enhancement
	OpenAIAPIKey   string `yaml:"openai_api_key"`
	OpenAIModel    string `yaml:"openai_model"`
	OpenAIEndpoint string `yaml:"openai_endpoint"`

	// Chunking
	MaxTokensPerChunk int `yaml:"max_tokens_per_chunk"`

	// Worker pool
	WorkerCount          int `yaml:"worker_count"`
	MaxQueueSize         int `yaml:"max_queue_size"`
	MaxConcurrentEnhance int `yaml:"max_concurrent_enhance"`

	// Upload limits
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// Extraction
	DOCXTimeout  time.Duration `yaml:"docx_timeout"`
	PDFBatchSize int           `yaml:"pdf_batch_size"`

	// Document retention
	DocumentTTL time.Duration `yaml:"document_ttl"`
}

// Load reads configuration from the environment, seeded by a .env file when
// one is present, then by an optional YAML file named in DOC2SLIDES_CONFIG.
// Environment variables win over the YAML file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port: "8090",

		OpenAIModel:    "gpt-4",
		OpenAIEndpoint: "https://api.openai.com/v1/chat/completions",

		MaxTokensPerChunk: 4000,

		WorkerCount:          4,
		MaxQueueSize:         100,
		MaxConcurrentEnhance: 5,

		MaxUploadBytes: 52428800, // 50MB

		DOCXTimeout:  60 * time.Second,
		PDFBatchSize: 10,

		DocumentTTL: 1 * time.Hour,
	}

	if path := os.Getenv("DOC2SLIDES_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)

	cfg.APIKey = envOr("DOC2SLIDES_API_KEY", cfg.APIKey)

	cfg.OpenAIAPIKey = envOr("OPENAI_API_KEY", cfg.OpenAIAPIKey)
	cfg.OpenAIModel = envOr("OPENAI_MODEL", cfg.OpenAIModel)
	cfg.OpenAIEndpoint = envOr("OPENAI_ENDPOINT", cfg.OpenAIEndpoint)

	cfg.MaxTokensPerChunk = envInt("MAX_TOKENS_PER_CHUNK", cfg.MaxTokensPerChunk)

	cfg.WorkerCount = envInt("WORKER_COUNT", cfg.WorkerCount)
	cfg.MaxQueueSize = envInt("MAX_QUEUE_SIZE", cfg.MaxQueueSize)
	cfg.MaxConcurrentEnhance = envInt("MAX_CONCURRENT_ENHANCE", cfg.MaxConcurrentEnhance)

	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)

	cfg.DOCXTimeout = envDuration("DOCX_TIMEOUT", cfg.DOCXTimeout)
	cfg.PDFBatchSize = envInt("PDF_BATCH_SIZE", cfg.PDFBatchSize)

	cfg.DocumentTTL = envDuration("DOCUMENT_TTL", cfg.DocumentTTL)

	if cfg.MaxTokensPerChunk <= 0 {
		cfg.MaxTokensPerChunk = 4000
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentEnhance <= 0 {
		cfg.MaxConcurrentEnhance = 5
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.DOCXTimeout <= 0 {
		cfg.DOCXTimeout = 60 * time.Second
	}
	if cfg.PDFBatchSize <= 0 {
		cfg.PDFBatchSize = 10
	}
	if cfg.DocumentTTL <= 0 {
		cfg.DocumentTTL = 1 * time.Hour
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOC2SLIDES_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
