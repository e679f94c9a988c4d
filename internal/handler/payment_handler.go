package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/elisassist/elisassist-backend/internal/config"
	"github.com/elisassist/elisassist-backend/internal/controller"
	"github.com/elisassist/elisassist-backend/internal/models"
	"github.com/elisassist/elisassist-backend/internal/service"
	"github.com/elisassist/elisassist-backend/pkg/utils"
)

type PaymentHandler struct {
	paymentController *controller.PaymentController
	cfg               *config.Config
}

func NewPaymentHandler(paymentController *controller.PaymentController, cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{
		paymentController: paymentController,
		cfg:               cfg,
	}
}

func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	var req models.CreateCheckoutSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorWith("Requête invalide"))
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:          "Plan invalide",
			AvailablePlans: h.cfg.PlanIDs(),
		})
	}

	resp, err := h.paymentController.CreatePlanCheckout(req.PlanID, req.CustomerEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSelection):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
				Error:          "Plan invalide",
				AvailablePlans: h.cfg.PlanIDs(),
			})
		case errors.Is(err, service.ErrUnconfigured):
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
				Error:   "Configuration incomplète",
				Message: "Le plan demandé n'est pas encore disponible",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
				Error:   "Erreur lors de la création de la session de paiement",
				Details: err.Error(),
			})
		}
	}

	return c.JSON(resp)
}

func (h *PaymentHandler) CreateHourlyCheckoutSession(c *fiber.Ctx) error {
	var req models.CreateHourlyCheckoutSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorWith("Requête invalide"))
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:             "Service invalide",
			AvailableServices: h.cfg.HourlyServiceIDs(),
		})
	}

	resp, err := h.paymentController.CreateHourlyCheckout(req.ServiceID, req.Hours, req.CustomerEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOutOfRange):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorWith(err.Error()))
		case errors.Is(err, service.ErrInvalidSelection):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
				Error:             "Service invalide",
				AvailableServices: h.cfg.HourlyServiceIDs(),
			})
		case errors.Is(err, service.ErrUnconfigured):
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
				Error:   "Configuration incomplète",
				Message: "Le service demandé n'est pas encore disponible",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
				Error:   "Erreur lors de la création de la session de paiement",
				Details: err.Error(),
			})
		}
	}

	return c.JSON(resp)
}

func (h *PaymentHandler) GetSessionDetails(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorWith("ID de session requis"))
	}

	details, err := h.paymentController.GetSessionDetails(sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Erreur lors de la récupération de la session",
			Details: err.Error(),
		})
	}

	return c.JSON(details)
}

func (h *PaymentHandler) GetPlans(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"plans": h.paymentController.ListPlans(),
	})
}

func (h *PaymentHandler) GetHourlyServices(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"services": h.paymentController.ListHourlyServices(),
	})
}

func (h *PaymentHandler) CreatePortalSession(c *fiber.Ctx) error {
	var req models.CustomerPortalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorWith("Requête invalide"))
	}

	url, err := h.paymentController.CreatePortalSession(req.CustomerID, req.CustomerEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingIdentifier):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorWith("Email ou ID client requis"))
		case errors.Is(err, service.ErrPayerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorWith("Aucun client trouvé avec cet email"))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
				Error:   "Erreur lors de la création de la session du portail client",
				Details: err.Error(),
			})
		}
	}

	return c.JSON(models.CustomerPortalResponse{URL: url})
}
