package ride

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nikozzzzzz/rideTrack/internal/engine"
)

// RegisterRoutes exposes the live session engine. All paths operate on
// "the" current session: the engine allows exactly one at a time.
func RegisterRoutes(r fiber.Router, eng *engine.Engine, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req StartRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		snap, err := eng.Start(engine.ActivityType(req.ActivityType))
		if err != nil {
			return lifecycleError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(snap)
	})

	r.Post("/pause", authMiddleware, func(c *fiber.Ctx) error {
		snap, err := eng.Pause()
		if err != nil {
			return lifecycleError(err)
		}
		return c.JSON(snap)
	})

	r.Post("/resume", authMiddleware, func(c *fiber.Ctx) error {
		snap, err := eng.Resume()
		if err != nil {
			return lifecycleError(err)
		}
		return c.JSON(snap)
	})

	r.Post("/stop", authMiddleware, func(c *fiber.Ctx) error {
		snap, err := eng.Stop()
		if err != nil {
			return lifecycleError(err)
		}
		return c.JSON(snap)
	})

	r.Post("/fixes", authMiddleware, func(c *fiber.Ctx) error {
		var req FixRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		res := eng.Ingest(req.rawFix())
		resp := IngestResponse{Status: res.Status.String(), Repaired: len(res.Repairs)}
		if res.Status == engine.IngestFiltered {
			resp.Reason = res.Reason.String()
		}
		status := fiber.StatusAccepted
		if res.Status != engine.IngestAdmitted {
			status = fiber.StatusOK
		}
		return c.Status(status).JSON(resp)
	})

	r.Get("/snapshot", func(c *fiber.Ctx) error {
		snap, ok := eng.Snapshot()
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no session in progress")
		}
		return c.JSON(snap)
	})

	r.Get("/summary", func(c *fiber.Ctx) error {
		rec, discardable, ok := eng.Summary()
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no session in progress")
		}
		return c.JSON(summaryResponse(rec, discardable))
	})

	r.Get("/points", func(c *fiber.Ctx) error {
		points := eng.Points()
		if points == nil {
			points = []engine.TrackPoint{}
		}
		return c.JSON(points)
	})

	r.Get("/counters", func(c *fiber.Ctx) error {
		return c.JSON(eng.Counters())
	})
}

// lifecycleError maps engine errors onto HTTP statuses: missing session
// is 404, everything else (invalid transition, duplicate session) is a
// conflict with current state.
func lifecycleError(err error) error {
	switch {
	case errors.Is(err, engine.ErrNoSession):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrActivityType):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
}
