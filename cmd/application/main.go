package main

import (
	"flag"
	"log"
	"os"

	"gomarketsync/config"
	"gomarketsync/internal/app"
	"gomarketsync/pkg/dbconnect/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "путь к конфигурации сервиса")
	flag.Parse()

	log.Printf("Started sync service")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", *configPath, err)
	}

	pgConfig := &cfg.Postgres
	if pgConfig.Host == "" {
		pgConfig = config.GetPostgresConfig()
	}

	connector := postgres.NewPgConnector(pgConfig)
	server := app.NewSyncServer(connector, cfg, os.Stdout)
	server.Run()
}
