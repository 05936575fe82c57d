package main

import (
	"PresenceCoach/internal/config"
	"PresenceCoach/pkg/landmark"
	"PresenceCoach/pkg/log"
	"PresenceCoach/pkg/redis"
	"github.com/joho/godotenv"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded, using process environment: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	detector := landmark.NewWebSocketDetector(logger)

	options := []config.ServerOption{
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithMiddleware(),
		config.WithUtils(),
		config.WithLandmarkDetector(detector),
	}
	if redis.Enabled() {
		options = append(options, config.WithSnapshotCache(redis.New(), redis.TTL()))
	}

	server, err := config.NewServer(options...)
	if err != nil {
		log.Fatal(log.Fields{"error": err.Error()}, "Failed to assemble server")
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	log.Info(log.Fields{
		"port":           os.Getenv("APP_PORT"),
		"detector_url":   os.Getenv("LANDMARK_DETECTOR_URL"),
		"snapshot_cache": redis.Enabled(),
	}, "Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(10 * time.Second); err != nil {
		log.Error(log.Fields{"error": err.Error()}, "Error during shutdown")
	}
}
