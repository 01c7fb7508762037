package main

import (
	"context"
	"log"

	"strbrowser/internal"
	"strbrowser/internal/config"
	"strbrowser/internal/container"
	"strbrowser/ui"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Log.Level))
	internal.DefaultLogger = logger
	defer logger.Sync()

	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	catalog, err := appContainer.LoadCatalog(context.Background())
	if err != nil {
		log.Fatalf("Failed to load tables: %v", err)
	}

	app := ui.NewApp(catalog, ui.Config{Port: appConfig.Server.APIPort}, logger)
	log.Fatal(app.Start())
}
