package main

import (
	"context"
	"log"

	"classtrack/internal/app/bootstrap"
)

// Migrate process entrypoint.
// Data flow:
// 1) Load config.
// 2) Connect to Postgres.
// 3) Ensure schema (identity, then classroom) and seed accounts, then exit.
func main() {
	app, err := bootstrap.BuildMigrate()
	if err != nil {
		log.Fatalf("bootstrap migrate failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("migrate close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Printf("classtrack migrate failed: %v", err)
	}
}
