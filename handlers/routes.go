package handlers

import (
	"github.com/gofiber/fiber/v2"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"mentorai/backend/middleware"
)

// SetupRoutes registers every route. The banner, health check and API docs are public;
// every route under /api/classes and /api/whisperx requires a bearer token signed with
// jwtSecret. Unmatched paths, protected prefixes included, get the catch-all 404.
func SetupRoutes(app *fiber.App, h *ApplicationHandler, jwtSecret string) {
	app.Get("/", h.Root)
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := app.Group("/api")
	api.Get("/health", h.Health)

	// Auth is attached per route so unknown paths fall through to the 404 handler.
	auth := middleware.RequireAuth(jwtSecret)

	classes := api.Group("/classes")
	classes.Get("/", auth, h.GetClasses)
	classes.Get("/search", auth, h.SearchClasses)
	classes.Get("/:id", auth, h.GetClass)
	classes.Post("/", auth, h.CreateClass)
	classes.Put("/:id", auth, h.UpdateClass)
	classes.Delete("/:id", auth, h.DeleteClass)
	classes.Put("/:id/recording", auth, h.UpdateRecordingURL)
	classes.Put("/:id/transcript", auth, h.UpdateTranscript)
	classes.Put("/:id/analysis", auth, h.UpdateAnalysisData)

	whisperx := api.Group("/whisperx")
	whisperx.Post("/transcribe", auth, h.TranscribeAudio)
	whisperx.Get("/availability", auth, h.CheckAvailability)
	whisperx.Get("/models/:model?", auth, h.GetModelInfo)
	whisperx.Get("/debug", auth, h.DebugConfig)

	app.Use(h.NotFound)
}
