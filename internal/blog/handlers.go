package blog

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	// Public: published posts only.
	r.Get("/", func(c *fiber.Ctx) error {
		posts, err := svc.List(c.Context(), true)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if posts == nil {
			posts = []Post{}
		}
		return c.JSON(posts)
	})

	r.Get("/all", authMiddleware, func(c *fiber.Ctx) error {
		posts, err := svc.List(c.Context(), false)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if posts == nil {
			posts = []Post{}
		}
		return c.JSON(posts)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		post, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil || !post.Published {
			return fiber.NewError(fiber.StatusNotFound, "post not found")
		}
		return c.JSON(post)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Post
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title required")
		}
		post, err := svc.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(post)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req Post
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		post, err := svc.Update(c.Context(), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(post)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
