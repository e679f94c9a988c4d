package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/elisassist/elisassist-backend/internal/config"
	"github.com/elisassist/elisassist-backend/internal/models"
	"github.com/elisassist/elisassist-backend/internal/service"
	"github.com/elisassist/elisassist-backend/pkg/utils"
)

type HealthHandler struct {
	cfg    *config.Config
	mailer service.Mailer
}

func NewHealthHandler(cfg *config.Config, mailer service.Mailer) *HealthHandler {
	return &HealthHandler{
		cfg:    cfg,
		mailer: mailer,
	}
}

// Config hands the front end what it needs to start a checkout.
func (h *HealthHandler) Config(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"publishableKey": h.cfg.StripePublishableKey,
		"mode":           h.cfg.StripeMode,
	})
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:            "ok",
		Mode:              h.cfg.StripeMode,
		EmailConfigured:   h.cfg.EmailConfigured(),
		WebhookConfigured: h.cfg.WebhookConfigured(),
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) TestEmail(c *fiber.Ctx) error {
	var req models.TestEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorWith("Requête invalide"))
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorWith("Email valide requis"))
	}

	if !h.cfg.EmailConfigured() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorWith("Service email non configuré"))
	}

	if !h.mailer.SendTestEmail(req.Email) {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorWith("Échec de l'envoi de l'email de test"))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Email de test envoyé à " + req.Email,
	})
}
