package content

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	// Public: the full published content document consumed by the site.
	r.Get("/", func(c *fiber.Ctx) error {
		snap, err := svc.Snapshot(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(snap)
	})

	// Admin: full-content save. A present key replaces that entire collection.
	r.Put("/", authMiddleware, func(c *fiber.Ctx) error {
		var payload SavePayload
		if err := c.BodyParser(&payload); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		summary, err := svc.SaveAll(c.Context(), payload)
		if err != nil {
			if errors.Is(err, ErrConfirmReplace) {
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(summary)
	})
}
