package storage

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/upload", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			UserID   string `json:"user_id"`
			FileName string `json:"file_name"`
			Folder   string `json:"folder"`
			Kind     string `json:"kind"`
		}
		_ = c.BodyParser(&body)
		if body.FileName == "" {
			body.FileName = "upload"
		}
		if body.Folder == "" {
			body.Folder = "general"
		}
		url := "/media/" + body.Folder + "/" + body.FileName
		id, err := svc.Register(c.Context(), body.UserID, url, body.Folder, body.Kind)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{
			"id":  id,
			"url": url,
		})
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		folder := c.Query("folder", "general")
		objects, err := svc.List(c.Context(), folder)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if objects == nil {
			objects = []MediaObject{}
		}
		return c.JSON(objects)
	})
}
