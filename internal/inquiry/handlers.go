package inquiry

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	// Public: the planner form posts here.
	r.Post("/", func(c *fiber.Ctx) error {
		var req Inquiry
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" || req.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name and email required")
		}
		created, err := svc.Submit(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		inquiries, err := svc.List(c.Context(), c.Query("status"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if inquiries == nil {
			inquiries = []Inquiry{}
		}
		return c.JSON(inquiries)
	})

	r.Get("/:id", authMiddleware, func(c *fiber.Ctx) error {
		q, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "inquiry not found")
		}
		return c.JSON(q)
	})

	r.Patch("/:id/status", authMiddleware, func(c *fiber.Ctx) error {
		var req StatusUpdate
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		updated, err := svc.UpdateStatus(c.Context(), c.Params("id"), req.Status)
		if err != nil {
			if errors.Is(err, ErrTransition) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(updated)
	})
}
