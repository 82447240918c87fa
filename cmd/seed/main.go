package main

import (
	"log"
	"os"
	"time"

	"communityhub-be/internal/model"
	"communityhub-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

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

	seedOperator(db)
	seedSampleContent(db)

	color.Green("Seeding completed.")
}

// seedOperator provisions the first admin account. Email and password come
// from the environment so no credential ever lands in the repository.
func seedOperator(db *gorm.DB) {
	email := os.Getenv("SEED_OPERATOR_EMAIL")
	password := os.Getenv("SEED_OPERATOR_PASSWORD")
	if email == "" || password == "" {
		log.Println("Skip: SEED_OPERATOR_EMAIL / SEED_OPERATOR_PASSWORD not set")
		return
	}

	var existing model.Operator
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("Operator %s already exists, skipping", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: failed to hash password: %v", err)
	}

	operator := model.Operator{
		Id:           uuid.New(),
		Email:        email,
		Name:         os.Getenv("SEED_OPERATOR_NAME"),
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if operator.Name == "" {
		operator.Name = "Operator"
	}

	if err := db.Create(&operator).Error; err != nil {
		log.Fatalf("Error: failed to create operator: %v", err)
	}
	color.Cyan("Created operator %s", email)
}

func seedSampleContent(db *gorm.DB) {
	var count int64
	db.Model(&model.Event{}).Count(&count)
	if count > 0 {
		log.Println("Content already present, skipping samples")
		return
	}

	now := time.Now()
	nextWeek := now.AddDate(0, 0, 7)

	samples := []interface{}{
		&model.Event{
			Id:          uuid.New(),
			Title:       "Community Welcome Evening",
			Slug:        "community-welcome-evening",
			Description: "An open evening for newcomers to meet members and learn what we do.",
			Location:    "Main Hall",
			StartsAt:    nextWeek,
			Published:   true,
			CreatedAt:   now,
		},
		&model.Resource{
			Id:          uuid.New(),
			Title:       "Getting Started Guide",
			Slug:        "getting-started-guide",
			Description: "Everything a new member needs to know in one place.",
			Link:        "https://example.org/guide",
			Category:    "guides",
			Published:   true,
			CreatedAt:   now,
		},
		&model.Testimonial{
			Id:        uuid.New(),
			Author:    "Sam R.",
			Quote:     "I found my people here within a week of joining.",
			Published: true,
			CreatedAt: now,
		},
	}

	for _, s := range samples {
		if err := db.Create(s).Error; err != nil {
			log.Printf("Warn: failed to seed sample: %v", err)
		}
	}
	color.Cyan("Seeded sample content")
}
