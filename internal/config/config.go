package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/revrec/internal/logging"
)

type Config struct {
	API struct {
		URL string `envconfig:"REVREC_API_URL" default:"http://localhost:8000"`
		// Zero disables the client timeout; requests then wait as long as the backend does.
		Timeout time.Duration `envconfig:"REVREC_API_TIMEOUT" default:"0"`
	}

	Dashboard struct {
		PollInterval    time.Duration `envconfig:"REVREC_POLL_INTERVAL" default:"3s"`
		PageSize        int           `envconfig:"REVREC_PAGE_SIZE" default:"10"`
		MemoMaxPeriods  int           `envconfig:"REVREC_MEMO_MAX_PERIODS" default:"10"`
		DefaultCurrency string        `envconfig:"REVREC_DEFAULT_CURRENCY" default:"USD"`
	}

	Upload struct {
		MaxBytes   int64  `envconfig:"REVREC_UPLOAD_MAX_BYTES" default:"10485760"`
		SamplesDir string `envconfig:"REVREC_SAMPLES_DIR"`
	}

	Log struct {
		Level  string `envconfig:"REVREC_LOG_LEVEL" default:"info"`
		Format string `envconfig:"REVREC_LOG_FORMAT" default:"text"`
		File   string `envconfig:"REVREC_LOG_FILE"`
	}
}

func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		File:   c.Log.File,
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Dashboard.PageSize < 1 {
		return nil, fmt.Errorf("REVREC_PAGE_SIZE must be at least 1, got %d", cfg.Dashboard.PageSize)
	}

	if cfg.Dashboard.PollInterval <= 0 {
		return nil, fmt.Errorf("REVREC_POLL_INTERVAL must be positive, got %s", cfg.Dashboard.PollInterval)
	}

	return &cfg, nil
}
