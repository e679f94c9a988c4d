package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/elisassist/elisassist-backend/internal/config"
	"github.com/elisassist/elisassist-backend/internal/controller"
	"github.com/elisassist/elisassist-backend/internal/handler"
	"github.com/elisassist/elisassist-backend/internal/service"
	"github.com/elisassist/elisassist-backend/pkg/email"
	"github.com/elisassist/elisassist-backend/pkg/invoice"
	"github.com/elisassist/elisassist-backend/pkg/payment"
)

func main() {
	// .env is optional, deployments inject real environment variables.
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("failed to initialize logger:", err)
	}
	defer logger.Sync()

	if cfg.StripeSecretKey == "" {
		logger.Fatal("stripe secret key is not configured",
			zap.String("mode", cfg.StripeMode),
		)
	}

	// Stripe client
	stripeService := payment.NewStripeService(cfg.StripeSecretKey)

	// Email service
	emailService := email.NewEmailService(email.Config{
		APIKey:          cfg.Email.ResendAPIKey,
		FromAddress:     cfg.Email.FromAddress,
		FromName:        cfg.Email.FromName,
		OperatorAddress: cfg.Email.OperatorAddress,
		TemplatesDir:    cfg.Email.TemplatesDir,
	}, logger)

	// Invoice renderer
	renderer, err := invoice.NewRenderer(cfg.InvoiceDir, invoice.Company{
		Name:       cfg.Company.Name,
		Address:    cfg.Company.Address,
		PostalCode: cfg.Company.PostalCode,
		City:       cfg.Company.City,
		SIRET:      cfg.Company.SIRET,
		Email:      cfg.Company.Email,
		Phone:      cfg.Company.Phone,
		VATNotice:  cfg.Company.VATNotice,
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize invoice renderer", zap.Error(err))
	}

	// Services
	paymentService := service.NewPaymentService(stripeService, cfg, logger)
	webhookService := service.NewWebhookService(stripeService, emailService, cfg, logger)
	invoiceService := service.NewInvoiceService(stripeService, renderer, logger)

	// Controllers
	paymentController := controller.NewPaymentController(paymentService)
	webhookController := controller.NewWebhookController(webhookService)
	invoiceController := controller.NewInvoiceController(invoiceService)

	// Handlers
	paymentHandler := handler.NewPaymentHandler(paymentController, cfg)
	webhookHandler := handler.NewWebhookHandler(webhookController, cfg.StripeWebhookSecret, logger)
	invoiceHandler := handler.NewInvoiceHandler(invoiceController, logger)
	healthHandler := handler.NewHealthHandler(cfg, emailService)

	app := handler.NewRouter(cfg, paymentHandler, webhookHandler, invoiceHandler, healthHandler)

	logger.Info("starting server",
		zap.String("port", cfg.Port),
		zap.String("stripe_mode", cfg.StripeMode),
		zap.Bool("email_configured", cfg.EmailConfigured()),
		zap.Bool("webhook_configured", cfg.WebhookConfigured()),
	)
	if !cfg.WebhookConfigured() {
		if cfg.IsLive() {
			logger.Error("webhook signature verification is disabled in live mode, set STRIPE_WEBHOOK_SECRET_LIVE")
		} else {
			logger.Warn("webhook signature verification is disabled, set STRIPE_WEBHOOK_SECRET_TEST")
		}
	}

	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
