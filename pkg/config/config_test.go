package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoad_WithRequiredVars(t *testing.T) {
	t.Setenv("CONSOLE_API_BASE_URL", "https://backend.example.com")
	t.Setenv("CONSOLE_API_TOKEN", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.APIBaseURL != "https://backend.example.com" {
		t.Errorf("expected APIBaseURL to be set, got %s", cfg.APIBaseURL)
	}
	if cfg.APIToken != "secret" {
		t.Errorf("expected APIToken to be set, got %s", cfg.APIToken)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	if _, err := LoadFrom(map[string]string{}); err == nil {
		t.Fatal("expected error for missing required vars, got nil")
	}
}

func TestConfig_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"CONSOLE_API_BASE_URL": "http://localhost:3000"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected default Addr ':8080', got %s", cfg.Addr)
	}
	if cfg.BasePath != "/admin" {
		t.Errorf("expected default BasePath '/admin', got %s", cfg.BasePath)
	}
	if cfg.StateBackend != StateMemory || cfg.UsesRedis() {
		t.Errorf("expected memory state backend, got %s", cfg.StateBackend)
	}
	if cfg.StateTTL != 12*time.Hour {
		t.Errorf("expected default StateTTL 12h, got %s", cfg.StateTTL)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Errorf("expected default APITimeout 15s, got %s", cfg.APITimeout)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("unexpected logging defaults %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestConfig_NormalizesBasePath(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"CONSOLE_API_BASE_URL": "http://localhost:3000",
		"CONSOLE_BASE_PATH":    "/ops/",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.BasePath != "/ops" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.BasePath)
	}
}

func TestConfig_RedisRequiresURL(t *testing.T) {
	_, err := LoadFrom(map[string]string{
		"CONSOLE_API_BASE_URL":  "http://localhost:3000",
		"CONSOLE_STATE_BACKEND": "redis",
	})
	if err == nil {
		t.Fatal("expected error when redis backend has no url")
	}

	cfg, err := LoadFrom(map[string]string{
		"CONSOLE_API_BASE_URL":  "http://localhost:3000",
		"CONSOLE_STATE_BACKEND": "redis",
		"CONSOLE_REDIS_URL":     "redis://localhost:6379/0",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cfg.UsesRedis() {
		t.Error("expected UsesRedis to return true")
	}
}

func TestConfig_RejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"log level":     {"LOG_LEVEL": "verbose"},
		"state backend": {"CONSOLE_STATE_BACKEND": "etcd"},
		"base url":      {"CONSOLE_API_BASE_URL": "not a url"},
		"currency":      {"CONSOLE_CURRENCY": "DOLLARS"},
	}
	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			environment := map[string]string{"CONSOLE_API_BASE_URL": "http://localhost:3000"}
			for k, v := range overrides {
				environment[k] = v
			}
			if _, err := LoadFrom(environment); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: "warn", LogFormat: "json"}
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", slog.String("page", "users"))
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected info to be filtered, got %s", out)
	}
	if !strings.Contains(out, `"page":"users"`) {
		t.Errorf("expected json attributes, got %s", out)
	}

	buf.Reset()
	cfg.LogFormat = "text"
	cfg.NewLogger(&buf).Error("boom")
	if !strings.Contains(buf.String(), "msg=boom") {
		t.Errorf("expected text output, got %s", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	if ParseLogLevel("DEBUG") != slog.LevelDebug {
		t.Error("expected debug level")
	}
	if ParseLogLevel("unknown") != slog.LevelInfo {
		t.Error("expected info fallback")
	}
}
