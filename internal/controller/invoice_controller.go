package controller

import (
	"github.com/elisassist/elisassist-backend/internal/models"
	"github.com/elisassist/elisassist-backend/internal/service"
)

type InvoiceController struct {
	invoiceService *service.InvoiceService
}

func NewInvoiceController(invoiceService *service.InvoiceService) *InvoiceController {
	return &InvoiceController{
		invoiceService: invoiceService,
	}
}

func (c *InvoiceController) GenerateForSession(sessionID string) (*service.InvoiceResult, error) {
	return c.invoiceService.GenerateForSession(sessionID)
}

func (c *InvoiceController) GenerateManual(req models.GenerateInvoiceRequest) (*service.InvoiceResult, error) {
	return c.invoiceService.GenerateManual(req)
}
