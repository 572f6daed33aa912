package config

import (
	"strings"
	"testing"
)

// NewConfig регистрирует флаги в глобальном наборе, поэтому вызывается
// в пакете ровно один раз — все проверки собраны в одном тесте.
func TestNewConfig_EnvAndDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "from-env")
	t.Setenv("BASE_URL", "example.com:9999")
	t.Setenv("HISTORY_LIMIT", "25")

	cfg := NewConfig()

	// значения из env имеют приоритет
	if cfg.AuthSecret != "from-env" {
		t.Fatalf("AuthSecret = %q, want value from env", cfg.AuthSecret)
	}
	if cfg.BaseURL != "example.com:9999" {
		t.Fatalf("BaseURL = %q, want value from env", cfg.BaseURL)
	}
	if cfg.HistoryLimit != 25 {
		t.Fatalf("HistoryLimit = %d, want 25", cfg.HistoryLimit)
	}

	// незаданные параметры получают значения по умолчанию
	if cfg.PollIntervalMS != 1000 {
		t.Fatalf("PollIntervalMS = %d, want default 1000", cfg.PollIntervalMS)
	}
	if cfg.ClearDelaySec != 30 {
		t.Fatalf("ClearDelaySec = %d, want default 30", cfg.ClearDelaySec)
	}
	if cfg.RetentionDays != 0 {
		t.Fatalf("RetentionDays = %d, want default 0 (forever)", cfg.RetentionDays)
	}
	if cfg.ClientDBPath == "" {
		t.Fatalf("ClientDBPath must get a default path")
	}

	// ServerURL собирается из схемы и BaseURL
	if !strings.HasPrefix(cfg.ServerURL, "http://") || !strings.HasSuffix(cfg.ServerURL, cfg.BaseURL) {
		t.Fatalf("ServerURL = %q, want scheme + BaseURL", cfg.ServerURL)
	}
}
