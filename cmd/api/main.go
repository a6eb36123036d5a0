package main

import (
	"context"
	"log"

	"resumind-backend/internal/shared/config"
	"resumind-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	r, err := server.NewRouter(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup error: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
