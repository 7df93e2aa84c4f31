package bootstrap

import (
	"context"
	"testing"

	"screener-backend/internal/llm"
	"screener-backend/internal/shared/config"
)

func TestBuildWiresDependencies(t *testing.T) {
	cfg := config.Config{
		Port:         "8080",
		Env:          "dev",
		EmbedBackend: "local",
		ReportDir:    t.TempDir(),
	}

	app, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.Router == nil {
		t.Fatalf("expected router to be wired")
	}
	if app.Screening == nil || app.Screening.Session != app.Session {
		t.Fatalf("expected screening service to share the session")
	}
	if app.Screening.History != app.History {
		t.Fatalf("expected screening service to share the history")
	}
	if _, ok := app.LLM.(llm.PlaceholderClient); !ok {
		t.Fatalf("expected placeholder client without an API key, got %T", app.LLM)
	}
}

func TestBuildRejectsUnknownEmbedBackend(t *testing.T) {
	cfg := config.Config{
		Env:          "dev",
		EmbedBackend: "word2vec",
		ReportDir:    t.TempDir(),
	}

	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unknown embedding backend")
	}
}

func TestBuildUsesGroqClientWhenKeySet(t *testing.T) {
	cfg := config.Config{
		Env:          "dev",
		EmbedBackend: "local",
		GroqAPIKey:   "gsk_test",
		ReportDir:    t.TempDir(),
	}

	app, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := app.LLM.(llm.PlaceholderClient); ok {
		t.Fatalf("expected a real model client when the API key is set")
	}
}
