package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"communityhub-be/internal/model"
	"communityhub-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// One-shot retention sweep. The REST process runs the same deletion on a
// ticker; this binary exists for cron setups and manual runs.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	now := time.Now()
	color.Cyan("Sweeping chat sessions expired before %s...", now.Format(time.RFC3339))

	result := db.WithContext(context.Background()).
		Where("expires_at <= ?", now).
		Delete(&model.ChatSession{})
	if result.Error != nil {
		log.Fatalf("Error: sweep failed: %v", result.Error)
	}

	if result.RowsAffected == 0 {
		fmt.Println("Nothing to remove.")
		return
	}
	color.Green("Removed %d expired sessions (messages cascade).", result.RowsAffected)
}
