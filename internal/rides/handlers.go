package rides

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/nikozzzzzz/rideTrack/internal/export"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/", func(c *fiber.Ctx) error {
		rides, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if rides == nil {
			rides = []Ride{}
		}
		return c.JSON(rides)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		ride, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "ride not found")
		}
		return c.JSON(ride)
	})

	r.Get("/:id/points", func(c *fiber.Ctx) error {
		points, err := svc.Points(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(points)
	})

	r.Get("/:id/export", func(c *fiber.Ctx) error {
		ride, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "ride not found")
		}
		if ride.State != "stopped" {
			return fiber.NewError(fiber.StatusConflict, "ride still in progress")
		}
		points, err := svc.Points(c.Context(), ride.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, ride.record(), points); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+export.Filename(ride.ID)+`"`)
		return c.Send(buf.Bytes())
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
