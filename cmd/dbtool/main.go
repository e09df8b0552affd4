package main

import (
	"ev-route-dashboard/internal/adapters/repositories"
	"ev-route-dashboard/internal/config"
	"ev-route-dashboard/internal/platform/db"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// dbtool prepares the Postgres route cache schema out of band.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	defer conn.Close()

	log.Info("Initializing route cache schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.WithError(err).Fatal("schema initialization failed")
	}
	log.Info("Schema ready.")
}
