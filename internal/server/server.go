package server

import (
	"errors"
	"io"
	"os"
	"time"

	"tokobaju/internal/config"
	"tokobaju/internal/handlers"
	"tokobaju/internal/middleware"
	"tokobaju/internal/repositories"
	"tokobaju/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Options carries the collaborators of the HTTP server.
type Options struct {
	Config  config.Config
	Users   repositories.UserRepository
	Clothes repositories.ClothingRepository
	// Publisher receives catalog events; nil disables them.
	Publisher services.EventPublisher
	Logger    *zap.Logger
	// Registry collects request metrics; a fresh registry is used when nil.
	Registry *prometheus.Registry
	// AccessLog receives the request log; os.Stdout when nil.
	AccessLog io.Writer
}

// Server is the assembled HTTP application and the services behind it.
type Server struct {
	App      *fiber.App
	Auth     *services.AuthService
	Tokens   *services.TokenService
	Clothing *services.ClothingService
}

// New wires services, handlers and middleware into a Fiber app.
func New(opts Options) *Server {
	cfg := opts.Config
	log := opts.Logger
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.AccessLog == nil {
		opts.AccessLog = os.Stdout
	}

	// --- Services ---
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authService := services.NewAuthService(opts.Users, tokens, cfg.BcryptCost, log)
	clothingService := services.NewClothingService(opts.Clothes, opts.Publisher, log)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, cfg.LegacyLoginFailure, log)
	clothingHandler := handlers.NewClothingHandler(clothingService, log)

	app := fiber.New(fiber.Config{
		AppName:      "tokobaju",
		ErrorHandler: errorHandler(log),
	})

	// --- Middleware ---
	metrics := middleware.NewMetrics(opts.Registry)
	app.Use(recover.New())
	app.Use(metrics.Handler())
	app.Use(logger.New(logger.Config{Output: opts.AccessLog}))

	// --- Routes ---
	authLimiter := middleware.PerMinute(cfg.AuthRatePerMinute, cfg.AuthRateBurst)
	authHandler.RegisterRoutes(app, authLimiter.Handler())
	clothingHandler.RegisterRoutes(app, middleware.AuthRequired(authService, log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", metrics.Endpoint())

	return &Server{
		App:      app,
		Auth:     authService,
		Tokens:   tokens,
		Clothing: clothingService,
	}
}

// errorHandler answers errors that escaped the handlers, including unknown
// routes and recovered panics, with a JSON body.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			log.Error("unhandled error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		return c.Status(code).JSON(fiber.Map{
			"message": message,
		})
	}
}
