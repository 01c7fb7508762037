package main

import (
	"context"
	"embed"
	"log"
	"net/http"
	_ "net/http/pprof"

	"strbrowser/internal"
	"strbrowser/internal/config"
	"strbrowser/internal/container"
	"strbrowser/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

//go:embed ui/templates/* ui/templates/fragments/* ui/static/css/*
var embeddedFiles embed.FS

func main() {
	// Load environment variables from .env file
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

	gin.SetMode(appConfig.Server.GinMode)

	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	// Both tables are loaded once at startup; a missing or malformed file is fatal
	sessions, err := appContainer.InitSessions(context.Background())
	if err != nil {
		log.Fatalf("Failed to load tables: %v", err)
	}

	server := ui.NewServer(embeddedFiles, sessions, logger)
	if err := server.Initialize(); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			logger.Info("[Profiling] pprof server starting on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				logger.Error("[Profiling] pprof server failed: %v", err)
			}
		}()
	}

	log.Fatal(server.Start(":" + appConfig.Server.Port))
}
