package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries everything a deployment run reads from the environment.
// It is resolved once at startup so the pipeline itself never touches
// os.Getenv.
type Config struct {
	Token      string
	ProjectID  string
	VercelBin  string
	HistoryDB  string
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Token:     strings.TrimSpace(os.Getenv("VERCEL_TOKEN")),
		ProjectID: strings.TrimSpace(os.Getenv("VERCEL_PROJECT_ID")),
		VercelBin: strings.TrimSpace(os.Getenv("AIRLIFT_VERCEL_BIN")),
		HistoryDB: strings.TrimSpace(os.Getenv("AIRLIFT_DB")),
	}

	if cfg.VercelBin == "" {
		cfg.VercelBin = "vercel"
	}

	if cfg.HistoryDB == "" {
		cfg.HistoryDB = filepath.Join(os.Getenv("HOME"), ".airlift", "airlift.db")
	}

	return cfg
}
