package server

import (
	"log"

	"finance-manager-be/internal/bootstrap"
	"finance-manager-be/internal/config"
	"finance-manager-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.PlanController.RegisterRoutes(api)
	c.SubscriptionController.RegisterRoutes(api, serverutils.JwtMiddleware)
	c.CheckoutController.RegisterRoutes(api, serverutils.JwtMiddleware)

	c.PayableController.RegisterRoutes(api, serverutils.JwtMiddleware)
	c.ReceivableController.RegisterRoutes(api, serverutils.JwtMiddleware)
	c.ContactController.RegisterRoutes(api, serverutils.JwtMiddleware)
	c.BankAccountController.RegisterRoutes(api, serverutils.JwtMiddleware)
	c.CategoryController.RegisterRoutes(api, serverutils.JwtMiddleware)

	c.AdminController.RegisterRoutes(api)
}
