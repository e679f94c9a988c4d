package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/elisassist/elisassist-backend/internal/config"
)

// NewRouter builds the Fiber app and mounts every route under /api.
func NewRouter(
	cfg *config.Config,
	paymentHandler *PaymentHandler,
	webhookHandler *WebhookHandler,
	invoiceHandler *InvoiceHandler,
	healthHandler *HealthHandler,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "elisassist-backend",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Stripe-Signature",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(logger.New(logger.Config{
		// Stripe retries webhooks aggressively, keep them out of the access log.
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/webhook"
		},
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/webhook"
		},
	}))

	api := app.Group("/api")

	// Checkout
	api.Post("/create-checkout-session", paymentHandler.CreateCheckoutSession)
	api.Post("/create-hourly-checkout-session", paymentHandler.CreateHourlyCheckoutSession)
	api.Get("/checkout-session/:sessionId", paymentHandler.GetSessionDetails)

	// Catalog
	api.Get("/plans", paymentHandler.GetPlans)
	api.Get("/hourly-services", paymentHandler.GetHourlyServices)

	// Customer portal
	api.Post("/create-customer-portal-session", paymentHandler.CreatePortalSession)

	// Stripe webhook (raw body, signature checked in the handler)
	api.Post("/webhook", webhookHandler.HandleStripeWebhook)

	// Invoices
	api.Get("/invoice/:sessionId", invoiceHandler.DownloadSessionInvoice)
	api.Post("/generate-invoice", invoiceHandler.GenerateInvoice)

	// Front-end bootstrap
	api.Get("/config", healthHandler.Config)

	// Diagnostics
	api.Get("/health", healthHandler.Health)
	api.Post("/test-email", healthHandler.TestEmail)

	return app
}
