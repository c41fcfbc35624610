package main

import (
	"log"
	"os"
	"time"

	"ai-reportgen-be/internal/model"
	"ai-reportgen-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Generation Configuration Seeder...")

	// 3. Seed Generation Settings
	seedSettings(db)

	// 4. Seed Report Styles
	seedStyles(db)

	log.Println("✅ Success: Generation configuration seeding completed.")
}

func seedSettings(db *gorm.DB) {
	log.Println("Seeding Generation Settings...")

	settings := []model.GenerationSetting{
		{
			Id:          uuid.New(),
			Key:         "llm_provider",
			Value:       "openai",
			ValueType:   "string",
			Description: "LLM provider backend (openai or an OpenAI-compatible endpoint)",
			Category:    "llm",
			IsSecret:    false,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			Id:          uuid.New(),
			Key:         "llm_model",
			Value:       "gpt-4o-mini",
			ValueType:   "string",
			Description: "Default LLM model for report generation",
			Category:    "llm",
			IsSecret:    false,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			Id:          uuid.New(),
			Key:         "llm_base_url",
			Value:       "",
			ValueType:   "string",
			Description: "Override base URL for OpenAI-compatible providers (empty = default)",
			Category:    "llm",
			IsSecret:    false,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			Id:          uuid.New(),
			Key:         "llm_api_key",
			Value:       "",
			ValueType:   "string",
			Description: "API key for the LLM provider",
			Category:    "llm",
			IsSecret:    true,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			Id:          uuid.New(),
			Key:         "llm_temperature",
			Value:       "0.3",
			ValueType:   "number",
			Description: "LLM temperature for report generation (0.0 to 1.0)",
			Category:    "llm",
			IsSecret:    false,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			Id:          uuid.New(),
			Key:         "system_prompt",
			Value:       "You are a data analyst writing structured markdown reports from tabular survey data. Present findings in pipe tables with clear headings.",
			ValueType:   "string",
			Description: "Base system prompt prepended to every generation request",
			Category:    "prompt",
			IsSecret:    false,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
		{
			Id:          uuid.New(),
			Key:         "prompt_row_cap",
			Value:       "200",
			ValueType:   "number",
			Description: "Maximum dataset rows inlined into a generation prompt",
			Category:    "ingest",
			IsSecret:    false,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		},
	}

	for _, setting := range settings {
		// Upsert: Insert if not exists, skip if exists
		result := db.Where("key = ?", setting.Key).FirstOrCreate(&setting)
		if result.Error != nil {
			log.Printf("Warn: Failed to seed setting '%s': %v", setting.Key, result.Error)
		} else if result.RowsAffected > 0 {
			log.Printf("  + Created: %s", setting.Key)
		} else {
			log.Printf("  - Skipped (exists): %s", setting.Key)
		}
	}
}

func seedStyles(db *gorm.DB) {
	log.Println("Seeding Report Styles...")

	styles := []model.ReportStyle{
		{
			Id:          uuid.New(),
			Key:         "academic",
			Name:        "Academic Report",
			Description: "Formal scholarly tone with methodology notes",
			SystemPrompt: `You write academic research reports from survey data.

When writing:
1. Use a formal, scholarly register throughout
2. Open with a methodology note describing the dataset
3. Present every aggregate as a markdown pipe table with a caption heading
4. Discuss limitations of the sample where relevant
5. Close with a conclusions section that restates the key figures`,
			IsActive:  true,
			SortOrder: 1,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		{
			Id:          uuid.New(),
			Key:         "business",
			Name:        "Business Summary",
			Description: "Executive-facing summary with recommendations",
			SystemPrompt: `You write business summaries from survey data for executives.

When writing:
1. Lead with a short executive summary of the headline numbers
2. Keep sections brief and action-oriented
3. Present supporting figures as markdown pipe tables
4. End with a numbered list of recommendations grounded in the data
5. Avoid jargon and statistical terminology`,
			IsActive:  true,
			SortOrder: 2,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		{
			Id:          uuid.New(),
			Key:         "concise",
			Name:        "Concise Brief",
			Description: "Minimal prose, tables carry the content",
			SystemPrompt: `You write concise data briefs from survey data.

When writing:
1. One short paragraph of context at most
2. Let markdown pipe tables carry the findings
3. One sentence of commentary per table, no more
4. Omit introductions, transitions, and closing remarks
5. Prefer counts and percentages over narrative description`,
			IsActive:  true,
			SortOrder: 3,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		{
			Id:          uuid.New(),
			Key:         "narrative",
			Name:        "Narrative Report",
			Description: "Story-driven walkthrough of the findings",
			SystemPrompt: `You write narrative reports that walk the reader through survey findings.

When writing:
1. Structure the report as a guided walkthrough of the data
2. Introduce each table with a sentence explaining what question it answers
3. Use markdown pipe tables for all figures
4. Connect sections so the report reads as one continuous argument
5. Highlight surprising or counterintuitive results explicitly`,
			IsActive:  true,
			SortOrder: 4,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	for _, style := range styles {
		// Upsert: Insert if not exists, skip if exists
		result := db.Where("key = ?", style.Key).FirstOrCreate(&style)
		if result.Error != nil {
			log.Printf("Warn: Failed to seed style '%s': %v", style.Key, result.Error)
		} else if result.RowsAffected > 0 {
			log.Printf("  + Created: %s (%s)", style.Key, style.Name)
		} else {
			log.Printf("  - Skipped (exists): %s", style.Key)
		}
	}
}
