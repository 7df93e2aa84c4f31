package main

import (
	"context"
	"log"

	"screener-backend/internal/bootstrap"
	"screener-backend/internal/shared/config"
	"screener-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting screener API on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
