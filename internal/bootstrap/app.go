package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"screener-backend/internal/embed"
	"screener-backend/internal/llm"
	"screener-backend/internal/llm/groq"
	"screener-backend/internal/match"
	"screener-backend/internal/screening"
	"screener-backend/internal/session"
	"screener-backend/internal/shared/config"
	"screener-backend/internal/shared/server"
	"screener-backend/internal/shared/storage/reports"
)

// App holds shared dependencies wired for serving.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	Session   *session.Session
	Embedder  embed.Embedder
	Scorer    *match.Scorer
	LLM       llm.Client
	History   *screening.History
	Screening *screening.Service
	Reports   *reports.Store
}

// Build prepares shared dependencies and wires routes.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ReportDir) == "" {
		cfg.ReportDir = "./reports"
	}

	embedder, err := embed.New(ctx, cfg.EmbedBackend, cfg.GeminiAPIKey, cfg.GeminiEmbedModel)
	if err != nil {
		return nil, fmt.Errorf("embedding backend: %w", err)
	}

	client, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	sess := session.New()
	history := screening.NewHistory()
	scorer := match.NewScorer(embedder)
	svc := screening.NewService(sess, scorer, client, history)
	store := reports.New(cfg.ReportDir)

	app := &App{
		Config:    cfg,
		Session:   sess,
		Embedder:  embedder,
		Scorer:    scorer,
		LLM:       client,
		History:   history,
		Screening: svc,
		Reports:   store,
	}
	app.Router = server.NewRouter(cfg, svc, store)

	return app, nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if strings.TrimSpace(cfg.GroqAPIKey) == "" {
		log.Printf("bootstrap: GROQ_API_KEY empty; analysis endpoints will report the model as unconfigured")
		return llm.PlaceholderClient{}, nil
	}
	client, err := groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel)
	if err != nil {
		return nil, fmt.Errorf("groq client: %w", err)
	}
	return client, nil
}
