package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/revrec/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.URL)
	assert.Zero(t, cfg.API.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Dashboard.PollInterval)
	assert.Equal(t, 10, cfg.Dashboard.PageSize)
	assert.Equal(t, 10, cfg.Dashboard.MemoMaxPeriods)
	assert.Equal(t, "USD", cfg.Dashboard.DefaultCurrency)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxBytes)
	assert.Equal(t, "info", cfg.Logging().Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REVREC_API_URL", "http://backend:9000")
	t.Setenv("REVREC_POLL_INTERVAL", "500ms")
	t.Setenv("REVREC_PAGE_SIZE", "25")
	t.Setenv("REVREC_LOG_FORMAT", "json")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "http://backend:9000", cfg.API.URL)
	assert.Equal(t, 500*time.Millisecond, cfg.Dashboard.PollInterval)
	assert.Equal(t, 25, cfg.Dashboard.PageSize)
	assert.Equal(t, "json", cfg.Logging().Format)
}

func TestLoad_Invalid(t *testing.T) {
	type testCase struct {
		name string
		key  string
		val  string
	}

	tests := []testCase{
		{name: "zero page size", key: "REVREC_PAGE_SIZE", val: "0"},
		{name: "bad duration", key: "REVREC_POLL_INTERVAL", val: "soon"},
		{name: "negative interval", key: "REVREC_POLL_INTERVAL", val: "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
