package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port          int              `json:"port"`
	LogConfig     logger.LogConfig `json:"log_config"`
	Database      DatabaseConfig   `json:"database"`
	FileStore     FileStoreConfig  `json:"file_store"`
	Retrieval     RetrievalConfig  `json:"retrieval"`
	Upload        UploadConfig     `json:"upload"`
	AI            AIConfig         `json:"ai"`
	Session       SessionConfig    `json:"session"`
	CORSAllowlist []string         `json:"cors_allowlist"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// RetrievalConfig carries the engine options. Zero values mean defaults.
type RetrievalConfig struct {
	UnitMode        string `json:"unit_mode"`        // "page" or "chunk"
	ChunkSize       int    `json:"chunk_size"`       // runes per chunk
	ChunkOverlap    int    `json:"chunk_overlap"`    // runes shared with the previous chunk; 0 keeps the default, -1 disables overlap
	ScoringStrategy string `json:"scoring_strategy"` // "overlap", "occurrence" or "tfidf"
	SnippetWindow   int    `json:"snippet_window"`   // excerpt width in runes
	TopKDefault     int    `json:"top_k_default"`
}

type UploadConfig struct {
	MaxSizeMB   int      `json:"max_size_mb"`
	AllowedExts []string `json:"allowed_exts"`
	// RateWindowMS throttles the write endpoints to one request per window
	// per client and route. 0 keeps the default, -1 disables throttling.
	RateWindowMS int `json:"rate_window_ms"`
}

type AIConfig struct {
	Provider      string      `json:"provider"`
	Model         string      `json:"model"`
	TimeoutSec    int         `json:"timeout_sec"`
	MaxInputChars int         `json:"max_input_chars"`
	Data          interface{} `json:"data"`
}

type SessionConfig struct {
	TTLHours    int    `json:"ttl_hours"`
	CleanupCron string `json:"cleanup_cron"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.FileStore.Type == "" {
		return nil, fmt.Errorf("file_store.type is required")
	}
	switch cfg.Retrieval.UnitMode {
	case "", "page", "chunk":
	default:
		return nil, fmt.Errorf("retrieval.unit_mode must be page or chunk")
	}
	switch cfg.Retrieval.ScoringStrategy {
	case "", "overlap", "occurrence", "tfidf":
	default:
		return nil, fmt.Errorf("retrieval.scoring_strategy must be overlap, occurrence or tfidf")
	}
	if cfg.Upload.MaxSizeMB <= 0 {
		cfg.Upload.MaxSizeMB = 25
	}
	if len(cfg.Upload.AllowedExts) == 0 {
		cfg.Upload.AllowedExts = []string{".pdf", ".png", ".jpg", ".jpeg", ".md", ".txt"}
	}
	if cfg.Upload.RateWindowMS == 0 {
		cfg.Upload.RateWindowMS = 1000
	} else if cfg.Upload.RateWindowMS < 0 {
		cfg.Upload.RateWindowMS = 0
	}
	if cfg.Session.TTLHours <= 0 {
		cfg.Session.TTLHours = 72
	}
	if cfg.Session.CleanupCron == "" {
		cfg.Session.CleanupCron = "0 * * * *"
	}
	if cfg.AI.Provider != "" && cfg.AI.Model == "" {
		return nil, fmt.Errorf("ai.model is required when ai.provider is set")
	}
	if cfg.AI.TimeoutSec <= 0 {
		cfg.AI.TimeoutSec = 30
	}
	return &cfg, nil
}
