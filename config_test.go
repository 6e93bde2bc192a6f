package main

import (
	"testing"
	"time"
)

func TestParseOrigins(t *testing.T) {
	got := parseOrigins(" https://a.example.com , https://b.example.com,,")
	if len(got) != 2 {
		t.Fatal("Expectation: 2, Received:", got)
	}
	if got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Fatal("Expectation: trimmed origins, Received:", got)
	}

	if got := parseOrigins(""); got != nil {
		t.Fatal("Expectation: nil, Received:", got)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9090")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("UPLOAD_DIR", "stash")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("UPLOAD_TTL", "1h")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := configFromEnv()
	if cfg.addr != ":9090" {
		t.Fatal("Expectation: :9090, Received:", cfg.addr)
	}
	if len(cfg.origins) != 2 || cfg.origins[0] != "https://a.example.com" {
		t.Fatal("Expectation: 2 origins, Received:", cfg.origins)
	}
	if cfg.uploadDir != "stash" {
		t.Fatal("Expectation: stash, Received:", cfg.uploadDir)
	}
	if cfg.uploadMaxBytes != 1024 {
		t.Fatal("Expectation: 1024, Received:", cfg.uploadMaxBytes)
	}
	if cfg.uploadTTL != time.Hour {
		t.Fatal("Expectation: 1h, Received:", cfg.uploadTTL)
	}
	if cfg.logLevel != "debug" {
		t.Fatal("Expectation: debug, Received:", cfg.logLevel)
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("SERVER_ADDR", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("UPLOAD_DIR", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")
	t.Setenv("UPLOAD_TTL", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := configFromEnv()
	if cfg.addr != ":8081" {
		t.Fatal("Expectation: :8081, Received:", cfg.addr)
	}
	if cfg.origins != nil {
		t.Fatal("Expectation: nil, Received:", cfg.origins)
	}
	if cfg.uploadDir != "uploads" {
		t.Fatal("Expectation: uploads, Received:", cfg.uploadDir)
	}
	if cfg.uploadMaxBytes != 10<<20 {
		t.Fatal("Expectation:", 10<<20, "Received:", cfg.uploadMaxBytes)
	}
	if cfg.uploadTTL != 24*time.Hour {
		t.Fatal("Expectation: 24h, Received:", cfg.uploadTTL)
	}
	if cfg.logLevel != "info" {
		t.Fatal("Expectation: info, Received:", cfg.logLevel)
	}
}

func TestConfigEnvFallbacks(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "many")
	t.Setenv("UPLOAD_TTL", "soon")

	cfg := configFromEnv()
	if cfg.uploadMaxBytes != 10<<20 {
		t.Fatal("Expectation:", 10<<20, "Received:", cfg.uploadMaxBytes)
	}
	if cfg.uploadTTL != 24*time.Hour {
		t.Fatal("Expectation: 24h, Received:", cfg.uploadTTL)
	}
}
