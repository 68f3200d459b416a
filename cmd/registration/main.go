package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"congress-registration/internal/code"
	"congress-registration/internal/config"
	"congress-registration/internal/participants"
	"congress-registration/internal/registration"
	"congress-registration/internal/schema"
	"congress-registration/internal/server"
	"congress-registration/internal/sheets"
	"congress-registration/internal/tgbot"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sender, err := participants.NewSender(cfg)
	if err != nil {
		log.Fatalf("participants: %v", err)
	}

	var (
		observers []registration.Observer
		ledger    server.Ledger
	)

	if cfg.SheetsEnabled() {
		sheetsClient, err := sheets.New(context.Background(), cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID)
		if err != nil {
			log.Fatalf("sheets: %v", err)
		}
		observers = append(observers, sheetsClient)
		ledger = sheetsClient
	}

	if cfg.TelegramEnabled() {
		notifier, err := tgbot.New(cfg.TelegramToken, cfg.AdminTGIDs)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		observers = append(observers, notifier)
	}

	validator := schema.New()
	pipeline := registration.New(
		code.NewRandom(code.DefaultPrefix, code.DefaultLength),
		validator,
		sender,
		registration.WithObservers(observers...),
	)

	httpSrv := server.New(cfg, pipeline, validator, ledger)

	go func() {
		log.Printf("HTTP listening on %s (participants api: %s)", cfg.HTTPAddr, sender.Name())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)
	if err := pipeline.Wait(ctx); err != nil {
		log.Printf("observers still running at exit: %v", err)
	}

	log.Println("bye")
}
