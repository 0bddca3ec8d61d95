package main

import (
	"context"
	"log"
	"os"

	"possync_api/config"
	"possync_api/internal/square/app"
	"possync_api/internal/square/app/web"
	"possync_api/pkg/dbconnect/postgres"
)

func main() {
	log.Printf("Started possync")

	envConfig, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("Failed to load environment config: %v", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load app config %s: %v", configPath, err)
	}

	connector := postgres.NewPgConnector(envConfig.Postgres)

	go web.Serve(envConfig.Ops.Address(), connector, os.Stdout)

	server := app.NewSquareServer(connector, *appConfig, os.Stdout)
	if err := server.Run(context.Background()); err != nil {
		log.Fatalf("Sync run failed: %v", err)
	}
	log.Printf("Sync run completed")
}
