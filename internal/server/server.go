package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/nikozzzzzz/rideTrack/internal/auth"
	"github.com/nikozzzzzz/rideTrack/internal/config"
	"github.com/nikozzzzzz/rideTrack/internal/engine"
	"github.com/nikozzzzzz/rideTrack/internal/ride"
	"github.com/nikozzzzzz/rideTrack/internal/rides"
	"github.com/nikozzzzzz/rideTrack/internal/store"
	"github.com/nikozzzzzz/rideTrack/internal/stream"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
	Engine *engine.Engine
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	hub := stream.NewHub(redisClient)

	var pointStore engine.PointStore
	if db != nil {
		pointStore = store.NewService(db)
	}
	eng := engine.New(cfg.EngineConfig(), pointStore, stream.NewTelemetrySink(hub))

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: hub,
		Engine: eng,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.Cfg.DeviceAPIKey))
	ride.RegisterRoutes(s.App.Group("/ride"), s.Engine, jwtMiddleware)
	if s.DB != nil {
		rides.RegisterRoutes(s.App.Group("/rides"), rides.NewService(s.DB), jwtMiddleware)
	} else {
		s.App.Use("/rides", func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusServiceUnavailable, "ride history requires a database")
		})
	}
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
