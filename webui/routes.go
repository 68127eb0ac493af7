package webui

import (
	fiber "github.com/gofiber/fiber/v2"
)

func (a *App) registerRoutes() {
	a.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	a.Get("/actions", func(c *fiber.Ctx) error {
		names := []string{}
		for _, def := range a.config.Actions.Definitions() {
			names = append(names, def.Name.String())
		}
		return c.JSON(fiber.Map{"actions": names})
	})

	a.Post("/webhook", a.ExecuteAction())
}
