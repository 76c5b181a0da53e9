package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"investmenttracker/internal/api"
	"investmenttracker/internal/config"
	"investmenttracker/internal/firebase"
	"investmenttracker/internal/mfapi"
	"investmenttracker/internal/ratelimit"
	"investmenttracker/internal/resolver"
	"investmenttracker/internal/service"
	"investmenttracker/internal/session"
	"investmenttracker/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Flash-message cookie store
	flash, err := session.NewFlash(cfg.Session.FernetKey)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}

	// External collaborator clients
	authClient := firebase.NewAuthClient(cfg.Firebase.APIKey, "")
	store := firebase.NewDatabase(cfg.Firebase.DatabaseURL)
	marketClient := yahoo.NewFinanceClient()
	navClient := mfapi.NewNAVClient("")

	// Price resolver: TTL cache + token bucket pacing upstream calls
	cache := resolver.NewCache(cfg.Resolver.CacheTTL, cfg.Resolver.CacheMaxEntries)
	bucket := ratelimit.NewTokenBucket(
		float64(cfg.Resolver.RequestsPerMinute)/60.0,
		cfg.Resolver.Burst,
	)
	priceResolver := resolver.New(marketClient, cache, bucket)

	// Soft rate-limit window on the public quote endpoint
	quoteWindow := ratelimit.NewWindow(cfg.Quote.MinInterval, cfg.Quote.Scope == config.ScopeTicker)

	// Create services
	authService := service.NewAuthService(authClient)
	stockService := service.NewStockService(authClient, store, priceResolver)
	fundService := service.NewFundService(authClient, store, navClient)

	// Create router
	router := api.NewRouter(authService, stockService, fundService, flash, quoteWindow, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
