package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agoralabs/agora/backend/internal/auth"
	"github.com/agoralabs/agora/backend/internal/config"
	"github.com/agoralabs/agora/backend/internal/database"
	"github.com/agoralabs/agora/backend/internal/payments"
	"github.com/agoralabs/agora/backend/internal/server"
)

func main() {
	cfg := config.Load()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	provider := payments.NewStripeProvider(cfg.StripeSecretKey)

	srv := server.New(cfg, db, verifier, provider).HTTPServer()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("🚀 Server starting on port %s\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
