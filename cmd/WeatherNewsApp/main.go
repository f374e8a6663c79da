package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Nazarious-ucu/weather-news-app/internal/app"
	"github.com/Nazarious-ucu/weather-news-app/internal/config"
	metricsSvc "github.com/Nazarious-ucu/weather-news-app/internal/services/metrics"
	"github.com/Nazarious-ucu/weather-news-app/pkg/logger"
)

const serviceName = "weather_news"

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	l, err := logger.NewLogger(cfg.LogsPath, serviceName, cfg.LogLevel)
	if err != nil {
		log.Panicf("failed to create logger: %v", err)
	}

	m := metricsSvc.NewMetrics(serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New(*cfg, l, m)
	if err := application.Start(ctx); err != nil {
		l.Error().Err(err).Msg("application failed to run")
		stop()
		os.Exit(1)
	}
}
