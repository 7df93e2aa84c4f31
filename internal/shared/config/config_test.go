package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "CORS_ALLOW_ORIGINS", "ENV", "GROQ_API_KEY", "GROQ_MODEL",
		"EMBED_BACKEND", "GEMINI_API_KEY", "GEMINI_EMBED_MODEL", "REPORT_DIR",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("env = %q", cfg.Env)
	}
	if cfg.EmbedBackend != "local" {
		t.Fatalf("embed backend = %q", cfg.EmbedBackend)
	}
	if cfg.ReportDir != "./reports" {
		t.Fatalf("report dir = %q", cfg.ReportDir)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != "http://localhost:5173" {
		t.Fatalf("cors = %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ENV", "PROD")
	t.Setenv("EMBED_BACKEND", "GEMINI")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example , https://b.example")

	cfg := Load()
	if cfg.Port != "9999" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("env = %q", cfg.Env)
	}
	if cfg.EmbedBackend != "gemini" {
		t.Fatalf("embed backend = %q", cfg.EmbedBackend)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "https://b.example" {
		t.Fatalf("cors = %v", cfg.CORSAllowOrigin)
	}
}

func TestValidateRequiresGroqKey(t *testing.T) {
	cfg := Config{EmbedBackend: "local"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing GROQ_API_KEY to fail validation")
	}

	cfg.GroqAPIKey = "gsk_test"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestValidateGeminiBackendNeedsKey(t *testing.T) {
	cfg := Config{GroqAPIKey: "gsk_test", EmbedBackend: "gemini"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected gemini backend without key to fail validation")
	}

	cfg.GeminiAPIKey = "g_key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
