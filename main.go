package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"

	"mentorai/backend/config"
	_ "mentorai/backend/docs"
	"mentorai/backend/handlers"
	"mentorai/backend/internal/classes"
	"mentorai/backend/internal/db"
	"mentorai/backend/internal/jobs"
	"mentorai/backend/internal/whisperx"
	"mentorai/backend/internal/worker"
	"mentorai/backend/middleware"
)

// @title MentorAI Backend API
// @version 1.0.0
// @description Class records and WhisperX transcription for MentorAI.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	settings, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger := config.InitLogger(settings.LogLevel, settings.LogFormat)

	if settings.UsingDefaultSecret() {
		logger.Warn("JWT_SECRET is not set, using the development secret")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := db.Open(ctx, settings.Database, logger)
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	err = client.EnsureSchema(ctx)
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("Failed to apply database schema")
	}

	service := whisperx.NewService(whisperx.Options{
		ExecutablePath: settings.WhisperX.ExecutablePath,
		PythonPath:     settings.WhisperX.PythonPath,
		HFToken:        settings.WhisperX.HFToken,
		TempDir:        settings.UploadDir,
	}, logger)

	dispatcher := worker.NewDispatcher(settings.WhisperX.Workers, settings.WhisperX.QueueSize, logger)
	dispatcher.Run()

	h := handlers.NewApplicationHandler(
		classes.NewStore(client, logger),
		jobs.NewQueuedTranscriber(service, dispatcher, logger),
		client,
		logger,
		settings.UploadDir,
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(h),
		BodyLimit:    handlers.MaxUploadSize + 1024*1024,
	})

	app.Use(middleware.RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(settings.CORSOrigins, ","),
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
	}))

	handlers.SetupRoutes(app, h, settings.JWTSecret)

	go func() {
		logger.WithField("port", settings.Port).Info("Starting MentorAI backend")
		if err := app.Listen(":" + settings.Port); err != nil {
			logger.WithError(err).Error("Server stopped")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down MentorAI backend...")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		logger.WithError(err).Warn("HTTP server did not shut down cleanly")
	}
	dispatcher.Stop()
	if err := client.Close(); err != nil {
		logger.WithError(err).Warn("Error closing database")
	}
	logger.Info("MentorAI backend shut down gracefully")
}
