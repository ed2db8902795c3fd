package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"voucher-segments/pkg/database"
	"voucher-segments/pkg/logger"
	"voucher-segments/pkg/lookup"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "voucher-api").Info("starting service")

	dsn := os.Getenv("VOUCHER_DSN")
	if dsn == "" {
		log.Fatal("VOUCHER_DSN not set")
	}
	db, _, err := database.Open(dsn)
	if err != nil {
		log.WithError(err).Fatal("open db")
	}
	defer db.Close()
	if err := database.WaitReady(context.Background(), db, 30*time.Second); err != nil {
		log.WithError(err).Fatal("db not reachable")
	}
	log.Info("connected to cohort store")

	svc := lookup.NewService(database.NewCohortStore(db))

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      newMux(svc, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
