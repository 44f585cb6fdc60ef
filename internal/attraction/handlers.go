package attraction

import (
	"bytes"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		attractions, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if attractions == nil {
			attractions = []Attraction{}
		}
		return c.JSON(attractions)
	})

	r.Get("/nearby", func(c *fiber.Ctx) error {
		lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
		lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
		if err1 != nil || err2 != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng required")
		}
		k, _ := strconv.Atoi(c.Query("k"))
		if k == 0 {
			k = 5
		}
		ranked, err := svc.Nearby(c.Context(), lat, lng, k)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(ranked)
	})

	r.Get("/export.csv", func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := svc.ExportCSV(c.Context(), &buf); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set("Content-Type", "text/csv")
		c.Set("Content-Disposition", `attachment; filename=attractions.csv`)
		return c.Send(buf.Bytes())
	})

	r.Post("/import", authMiddleware, func(c *fiber.Ctx) error {
		body := c.Body()
		if len(body) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "csv body required")
		}
		result, err := svc.ImportCSV(c.Context(), bytes.NewReader(body), c.Query("district", svc.fallbackDistrict))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(result)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		a, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "attraction not found")
		}
		return c.JSON(a)
	})

	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Attraction
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		a, err := svc.Upsert(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req Attraction
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		req.ID = c.Params("id")
		a, err := svc.Upsert(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(a)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
