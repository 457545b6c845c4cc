package main

import (
	"context"
	stdlog "log"
	"os"

	"github.com/joho/godotenv"

	"github.com/movelab/physiorag/internal/config"
	"github.com/movelab/physiorag/internal/logger"
	"github.com/movelab/physiorag/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdlog.Println("No .env file found, using process environment")
	}

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	defer log.Sync()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal("failed to load configuration", "path", cfgPath, "error", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	ctx := context.Background()
	srv, err := server.NewServer(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to start server", "error", err)
	}
	defer srv.Close(ctx)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := srv.SetupRouter()
	log.Info("starting server", "port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("server exited", "error", err)
	}
}
