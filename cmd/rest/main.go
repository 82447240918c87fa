package main

import (
	"context"
	"log"
	"time"

	"communityhub-be/internal/bootstrap"
	"communityhub-be/internal/config"
	"communityhub-be/internal/server"
	"communityhub-be/internal/tracer"
	"communityhub-be/pkg/database"
)

func main() {
	// 0. Tracing (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Configuration
	cfg := config.Load()

	// 2. Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Dependency container
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Background workers
	if err := container.AuditService.Start(context.Background()); err != nil {
		log.Printf("Background audit consumer error: %v", err)
	}
	container.NotificationService.Start()

	// Retention sweep: expired chat sessions are deleted together with their
	// messages. Also available on demand via cmd/purge.
	go func() {
		ticker := time.NewTicker(cfg.Chat.PurgeInterval)
		defer ticker.Stop()
		for range ticker.C {
			count, err := container.ChatService.PurgeExpiredSessions(context.Background())
			if err != nil {
				log.Printf("Retention sweep failed: %v", err)
				continue
			}
			if count > 0 {
				log.Printf("Retention sweep removed %d expired chat sessions", count)
			}
		}
	}()

	// 5. HTTP server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
