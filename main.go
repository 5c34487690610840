package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/insightdelivered/statement-dashboard/internal/api"
	"github.com/insightdelivered/statement-dashboard/internal/config"
	"github.com/insightdelivered/statement-dashboard/internal/logger"
	"github.com/insightdelivered/statement-dashboard/internal/session"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	store := session.NewStore(cfg.SessionTTL)
	handler := api.New(store)

	app := fiber.New(fiber.Config{
		AppName:   "statement-dashboard",
		BodyLimit: int(cfg.MaxUploadSize),
	})
	app.Use(recover.New())
	handler.Register(app)

	logger.L.Info("starting server", "port", cfg.Port, "sessionTTL", cfg.SessionTTL.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.L.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
