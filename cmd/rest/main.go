package main

import (
	"context"
	"log"

	"ai-reportgen-be/internal/bootstrap"
	"ai-reportgen-be/internal/config"
	"ai-reportgen-be/internal/server"
	"ai-reportgen-be/pkg/database"
)

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	// Event consumer runs for the life of the process
	go func() {
		log.Println("Starting event consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Event consumer error: %v", err)
		}
	}()

	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
