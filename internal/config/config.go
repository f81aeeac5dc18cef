package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the chatbot and the indexer.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Paths     PathsConfig     `mapstructure:"paths"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	LLM       LLMConfig       `mapstructure:"llm"`
	OCR       OCRConfig       `mapstructure:"ocr"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// AdminConfig holds admin authentication configuration. An empty API key
// leaves the admin endpoints open.
type AdminConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// PathsConfig holds file and directory locations.
type PathsConfig struct {
	PDFDir        string `mapstructure:"pdf_dir"`
	IndexFile     string `mapstructure:"index_file"`
	HistoryDB     string `mapstructure:"history_db"`
	ProcessingLog string `mapstructure:"processing_log"`
}

// RetrievalConfig holds similarity-search configuration.
type RetrievalConfig struct {
	TopK int `mapstructure:"top_k"`
}

// LLMConfig holds the OpenAI-compatible provider configuration. An empty
// Model means no language model is configured: the server falls back to
// stateless retrieval and the indexer skips enrichment.
type LLMConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding_model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Enabled reports whether a language model is configured.
func (c LLMConfig) Enabled() bool {
	return c.Model != ""
}

// Timeout returns the per-call timeout for model and embedding requests.
func (c LLMConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// OCRConfig holds OCR engine configuration.
type OCRConfig struct {
	Languages []string `mapstructure:"languages"`
	DPI       float64  `mapstructure:"dpi"`
}

// Load loads configuration from file and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("CHATBOT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)

	v.SetDefault("admin.api_key", "")

	v.SetDefault("paths.pdf_dir", "./data")
	v.SetDefault("paths.index_file", "./storage/college_index.json")
	v.SetDefault("paths.history_db", "./data/chat_history.db")
	v.SetDefault("paths.processing_log", "./logs/processing.log")

	v.SetDefault("retrieval.top_k", 5)

	v.SetDefault("llm.base_url", "http://localhost:11434/v1")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.embedding_model", "nomic-embed-text")
	v.SetDefault("llm.timeout_seconds", 60)

	v.SetDefault("ocr.languages", []string{"eng", "hin"})
	v.SetDefault("ocr.dpi", 300)
}

// Address returns the server listen address.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
