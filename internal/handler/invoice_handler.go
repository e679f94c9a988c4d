package handler

import (
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/elisassist/elisassist-backend/internal/controller"
	"github.com/elisassist/elisassist-backend/internal/models"
	"github.com/elisassist/elisassist-backend/internal/service"
	"github.com/elisassist/elisassist-backend/pkg/utils"
)

// invoiceCleanupDelay is how long a generated PDF stays on disk after the
// response has been sent.
const invoiceCleanupDelay = 5 * time.Second

type InvoiceHandler struct {
	invoiceController *controller.InvoiceController
	logger            *zap.Logger
}

func NewInvoiceHandler(invoiceController *controller.InvoiceController, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceController: invoiceController,
		logger:            logger,
	}
}

func (h *InvoiceHandler) DownloadSessionInvoice(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorWith("ID de session requis"))
	}

	result, err := h.invoiceController.GenerateForSession(sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotPaid) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
				Error:   "Paiement non complété",
				Message: "La facture ne peut être générée que pour un paiement complété",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Erreur lors de la génération de la facture",
			Details: err.Error(),
		})
	}

	return h.sendPDF(c, result)
}

func (h *InvoiceHandler) GenerateInvoice(c *fiber.Ctx) error {
	var req models.GenerateInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorWith("Requête invalide"))
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error:    "Données manquantes",
			Required: []string{"customerEmail", "items"},
		})
	}

	result, err := h.invoiceController.GenerateManual(req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Erreur lors de la génération de la facture",
			Details: err.Error(),
		})
	}

	return h.sendPDF(c, result)
}

// sendPDF streams the rendered invoice and schedules its removal. The file
// is read into memory first so the cleanup cannot race the response write.
func (h *InvoiceHandler) sendPDF(c *fiber.Ctx, result *service.InvoiceResult) error {
	data, err := os.ReadFile(result.FilePath)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error:   "Erreur lors de la lecture de la facture",
			Details: err.Error(),
		})
	}

	path := result.FilePath
	logger := h.logger
	time.AfterFunc(invoiceCleanupDelay, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("invoice cleanup failed", zap.String("path", path), zap.Error(err))
		}
	})

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.FileName+`"`)
	return c.Send(data)
}
