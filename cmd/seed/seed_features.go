package main

import (
	"log"
	"os"

	"ai-reportgen-be/internal/model"
	"ai-reportgen-be/pkg/database"

	"github.com/joho/godotenv"
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

	log.Println("Seeding Feature Catalog...")

	// Baseline entitlement catalog; plans link against these keys
	features := []model.Feature{
		{Key: "report_generation", Name: "AI Report Generation", Description: "Generate structured markdown reports from uploaded survey data", Category: "ai", IsActive: true, SortOrder: 1},
		{Key: "report_styles", Name: "Report Styles", Description: "Choose from curated writing styles when generating reports", Category: "ai", IsActive: true, SortOrder: 2},
		{Key: "unlimited_datasets", Name: "Unlimited Datasets", Description: "Upload as many datasets as you need", Category: "storage", IsActive: true, SortOrder: 3},
		{Key: "unlimited_documents", Name: "Unlimited Documents", Description: "No limits on the number of generated documents per dataset", Category: "storage", IsActive: true, SortOrder: 4},
		{Key: "priority_support", Name: "Priority Support", Description: "Get faster response times from our support team", Category: "support", IsActive: true, SortOrder: 5},
		{Key: "export_pdf", Name: "Export to PDF", Description: "Export your reports in PDF format", Category: "export", IsActive: true, SortOrder: 6},
		{Key: "export_docx", Name: "Export to Word", Description: "Export your reports as DOCX documents", Category: "export", IsActive: true, SortOrder: 7},
	}

	for _, f := range features {
		var existing model.Feature
		if err := db.Where("key = ?", f.Key).First(&existing).Error; err == nil {
			log.Printf("Feature '%s' already exists, skipping...", f.Key)
			continue
		}

		if err := db.Create(&f).Error; err != nil {
			log.Printf("Error creating feature '%s': %v", f.Key, err)
		} else {
			log.Printf("Created feature: %s (%s)", f.Name, f.Key)
		}
	}

	log.Println("Feature seeding completed!")

	log.Println("Seeding Notification Types...")
	SeedNotificationTypes(db)
}
