package server

import (
	"time"

	"backend-panoratravel/internal/attraction"
	"backend-panoratravel/internal/auth"
	"backend-panoratravel/internal/blog"
	"backend-panoratravel/internal/config"
	"backend-panoratravel/internal/content"
	"backend-panoratravel/internal/inquiry"
	"backend-panoratravel/internal/planner"
	"backend-panoratravel/internal/review"
	"backend-panoratravel/internal/storage"
	"backend-panoratravel/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)
	snapshotTTL := time.Duration(s.Cfg.SnapshotTTLSec) * time.Second

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.Cfg.BootstrapToken, s.DB))
	content.RegisterRoutes(s.App.Group("/content"), content.NewService(s.DB, s.Redis, snapshotTTL), jwtMiddleware)
	attraction.RegisterRoutes(s.App.Group("/attractions"), attraction.NewService(s.DB, s.Cfg.DefaultDistrict, s.Cfg.FallbackLat, s.Cfg.FallbackLng), jwtMiddleware)
	inquiry.RegisterRoutes(s.App.Group("/inquiries"), inquiry.NewService(s.DB, s.Stream), jwtMiddleware)
	planner.RegisterRoutes(s.App.Group("/plans"), planner.NewService(s.DB, s.Cfg.PublicBaseURL), jwtMiddleware)
	review.RegisterRoutes(s.App.Group("/reviews"), review.NewService(s.DB, s.Stream), jwtMiddleware)
	blog.RegisterRoutes(s.App.Group("/blog"), blog.NewService(s.DB), jwtMiddleware)
	storage.RegisterRoutes(s.App.Group("/media"), storage.NewService(s.DB), jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
