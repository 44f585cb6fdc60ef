package review

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	// Public: submit a testimonial; it stays hidden until approved.
	r.Post("/", func(c *fiber.Ctx) error {
		var req Review
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Author == "" || req.Comment == "" {
			return fiber.NewError(fiber.StatusBadRequest, "author and comment required")
		}
		created, err := svc.Submit(c.Context(), req)
		if err != nil {
			if errors.Is(err, ErrRating) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	})

	// Public: approved reviews only.
	r.Get("/", func(c *fiber.Ctx) error {
		reviews, err := svc.List(c.Context(), true)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if reviews == nil {
			reviews = []Review{}
		}
		return c.JSON(reviews)
	})

	r.Get("/all", authMiddleware, func(c *fiber.Ctx) error {
		reviews, err := svc.List(c.Context(), false)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if reviews == nil {
			reviews = []Review{}
		}
		return c.JSON(reviews)
	})

	r.Patch("/:id/approve", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Approve(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
