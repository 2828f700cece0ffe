package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/xmkt/marketplace/internal/api"
	"github.com/xmkt/marketplace/internal/captcha"
	"github.com/xmkt/marketplace/internal/config"
	"github.com/xmkt/marketplace/internal/db"
	"github.com/xmkt/marketplace/internal/imagestore"
	"github.com/xmkt/marketplace/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	// Migrations are idempotent; a fresh file gets the full schema.
	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	items := &service.ItemService{
		DB:        database,
		Images:    imagestore.New(cfg.ImageStoreURL, cfg.ImageStoreKey, cfg.ImageStoreSecret),
		MasterKey: cfg.MasterKey,
	}
	reports := &service.ReportService{DB: database}
	verifier := captcha.New(cfg.CaptchaVerifyURL, cfg.CaptchaSecret)

	router := api.NewRouter(items, reports, verifier, cfg)
	handler := api.LoggingMiddleware(api.MetricsMiddleware(router))

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
