package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/leranyappi/training-diary/internal/app"
	"github.com/leranyappi/training-diary/internal/bridge"
	"github.com/leranyappi/training-diary/internal/config"
	"github.com/leranyappi/training-diary/internal/store"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	Store store.Store
}

func NewServer(cfg config.Config, st store.Store) *Server {
	fiberApp := fiber.New()
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	s := &Server{
		App:   fiberApp,
		Cfg:   cfg,
		Store: st,
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	s.App.Get("/workouts", func(c *fiber.Ctx) error {
		workouts, err := s.Store.Load(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if workouts == nil {
			return c.JSON([]any{})
		}
		return c.JSON(workouts)
	})

	settings := app.Settings{
		DefaultZoom:     s.Cfg.MapZoom,
		FocusZoom:       s.Cfg.FocusZoom,
		TileURL:         s.Cfg.TileURL,
		TileAttribution: s.Cfg.TileAttribution,
	}
	bridge.RegisterRoutes(s.App.Group("/ws"), settings, s.Store)

	if s.Cfg.WebDir != "" {
		s.App.Static("/", s.Cfg.WebDir)
	}
}
