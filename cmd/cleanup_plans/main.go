package main

import (
	"log"
	"os"

	"ai-reportgen-be/internal/model"
	"ai-reportgen-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Removing 'Integration Plan' from subscription_plans...")

	// SubscriptionPlan has no DeletedAt, so this is a hard delete.
	result := db.Where("name = ?", "Integration Plan").Delete(&model.SubscriptionPlan{})
	if result.Error != nil {
		log.Fatalf("Failed to delete: %v", result.Error)
	}

	log.Printf("Deleted %d rows.", result.RowsAffected)
}
