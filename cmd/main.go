package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/config"
	"github.com/Abraxas-365/supplierportal/pkg/errx"
	"github.com/Abraxas-365/supplierportal/pkg/kernel"
	"github.com/Abraxas-365/supplierportal/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	// 1. Configuration (logx reads LOG_LEVEL / LOG_FORMAT itself)
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Invalid configuration: %v", err)
	}

	logx.Infof("🚀 Starting %s (%s)...", cfg.App.Name, cfg.App.Env)

	// 2. Dependency container
	container := NewContainer(cfg)
	defer container.Cleanup()

	// 3. HTTP app
	app := newApp(container)

	// 4. Serve until signalled
	startServer(app, cfg.Server)
}

// newApp builds the fiber app with global middleware and every route
func newApp(container *Container) *fiber.App {
	cfg := container.Config

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ErrorHandler:          errx.FiberErrorHandler(cfg.App.Debug),
		BodyLimit:             cfg.Server.BodyLimit,
		IdleTimeout:           120 * time.Second,
	})

	// Global middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.App.Debug,
	}))

	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	app.Use(requestContext)

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:  "GET, POST, OPTIONS",
		ExposeHeaders: "X-Request-ID",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${method} ${path} | ${ip} | ${respHeader:X-Request-ID}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))

	app.Use(container.Metrics.Middleware())

	// Operational endpoints
	app.Get("/health", container.Health.Handler())
	app.Get("/metrics", container.Metrics.Handler())
	app.Get("/", infoHandler(cfg))

	// Portal routes, served at the root and under /api
	for _, router := range []fiber.Router{app, app.Group("/api")} {
		registerPortalRoutes(router, container)
	}
	logx.Info("✓ Portal routes registered")

	app.Use(notFoundHandler)

	return app
}

func registerPortalRoutes(router fiber.Router, container *Container) {
	authenticate := container.IAM.AuthMiddleware.Authenticate()

	container.IAM.OTPHandlers.RegisterRoutes(router, container.IAM.RateLimiter)
	container.SupplierHandlers.RegisterRoutes(router, authenticate)
	container.ReportHandlers.RegisterRoutes(router, authenticate)
	router.Get("/test", testHandler)
}

// requestContext makes the request id available to code that only sees
// context.Context
func requestContext(c *fiber.Ctx) error {
	if id := c.GetRespHeader(fiber.HeaderXRequestID); id != "" {
		c.SetUserContext(context.WithValue(c.UserContext(), kernel.RequestIDKey, id))
	}
	return c.Next()
}

// ============================================================================
// Handler Functions
// ============================================================================

func testHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":   "Test function works!",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func infoHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service":     cfg.App.Name,
			"version":     cfg.App.Version,
			"environment": cfg.App.Env,
			"endpoints": fiber.Map{
				"sendOTP":         "POST /api/sendOTP",
				"verifyOTP":       "POST /api/verifyOTP",
				"getSupplierData": "GET /api/getSupplierData",
				"getPowerBIToken": "GET /api/getPowerBIToken",
				"health":          "GET /health",
				"metrics":         "GET /metrics",
			},
			"authentication": fiber.Map{
				"type":   "JWT",
				"header": "Authorization: Bearer <token>",
			},
		})
	}
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":      "Route not found",
		"code":       "NOT_FOUND",
		"path":       c.Path(),
		"method":     c.Method(),
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
	})
}

// ============================================================================
// Server lifecycle
// ============================================================================

func startServer(app *fiber.App, cfg config.ServerConfig) {
	go func() {
		logx.Info(strings.Repeat("=", 60))
		logx.Infof("🚀 Server listening on port %s", cfg.Port)
		logx.Infof("💚 Health Check: http://localhost:%s/health", cfg.Port)
		logx.Info(strings.Repeat("=", 60))

		if err := app.Listen(":" + cfg.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logx.Infof("🛑 Received signal: %v", sig)
	logx.Info("Shutting down gracefully...")

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("✅ Server exited successfully")
}
