package planner

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Plan
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Title == "" {
			return fiber.NewError(fiber.StatusBadRequest, "title required")
		}
		plan, err := svc.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(plan)
	})

	r.Post("/from-inquiry/:id", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			CreatedBy string `json:"created_by"`
		}
		_ = c.BodyParser(&body)
		plan, err := svc.FromInquiry(c.Context(), c.Params("id"), body.CreatedBy)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(plan)
	})

	r.Get("/", authMiddleware, func(c *fiber.Ctx) error {
		plans, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if plans == nil {
			plans = []Plan{}
		}
		return c.JSON(plans)
	})

	r.Get("/:id", authMiddleware, func(c *fiber.Ctx) error {
		plan, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "plan not found")
		}
		return c.JSON(plan)
	})

	r.Get("/:id/document", authMiddleware, func(c *fiber.Ctx) error {
		doc, err := svc.Document(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "plan not found")
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename=plan-`+c.Params("id")+`.pdf`)
		return c.Send(doc)
	})

	r.Delete("/:id/days/:day", authMiddleware, func(c *fiber.Ctx) error {
		dayIndex, err := strconv.Atoi(c.Params("day"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "day must be a number")
		}
		plan, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "plan not found")
		}
		plan, err = svc.Update(c.Context(), plan.ID, Plan{Days: RemoveDay(plan.Days, dayIndex)})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(plan)
	})

	r.Post("/:id/activities/move", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			FromDay   int `json:"from_day"`
			FromIndex int `json:"from_index"`
			ToDay     int `json:"to_day"`
			ToIndex   int `json:"to_index"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		plan, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "plan not found")
		}
		days, err := MoveActivity(plan.Days, body.FromDay, body.FromIndex, body.ToDay, body.ToIndex)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		plan, err = svc.Update(c.Context(), plan.ID, Plan{Days: days})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(plan)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req Plan
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		plan, err := svc.Update(c.Context(), c.Params("id"), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(plan)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
