// Package httpapi hosts the bot's HTTP surface: the health endpoint and,
// in production, the Telegram webhook route.
package httpapi

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// NewApp builds the Fiber app with the global middleware and the health
// endpoint.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "wetterbot",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "wetterbot",
		})
	})

	return app
}

// RegisterWebhook mounts the Telegram webhook route. The path embeds
// the bot token, matching what SetWebhook registered with Telegram, so
// only Telegram can reach it in practice. Decoded updates are forwarded
// to the update channel; undecodable bodies are acknowledged with 400
// so Telegram does not redeliver them forever.
func RegisterWebhook(app *fiber.App, token string, updates chan<- tgbotapi.Update, log *zap.SugaredLogger) {
	app.Post("/bot"+token, func(c *fiber.Ctx) error {
		var update tgbotapi.Update
		if err := json.Unmarshal(c.Body(), &update); err != nil {
			log.Warnw("undecodable webhook payload", "error", err)
			return c.SendStatus(fiber.StatusBadRequest)
		}

		updates <- update
		return c.SendStatus(fiber.StatusOK)
	})
}
