package controller

import (
	"github.com/elisassist/elisassist-backend/internal/models"
	"github.com/elisassist/elisassist-backend/internal/service"
)

type PaymentController struct {
	paymentService *service.PaymentService
}

func NewPaymentController(paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

func (c *PaymentController) CreatePlanCheckout(planID, customerEmail string) (*models.CheckoutSessionResponse, error) {
	return c.paymentService.CreatePlanCheckout(planID, customerEmail)
}

func (c *PaymentController) CreateHourlyCheckout(serviceID string, hours int64, customerEmail string) (*models.CheckoutSessionResponse, error) {
	return c.paymentService.CreateHourlyCheckout(serviceID, hours, customerEmail)
}

func (c *PaymentController) GetSessionDetails(sessionID string) (*models.SessionDetails, error) {
	return c.paymentService.GetSessionDetails(sessionID)
}

func (c *PaymentController) ListPlans() []models.PlanView {
	return c.paymentService.ListPlans()
}

func (c *PaymentController) ListHourlyServices() []models.HourlyServiceView {
	return c.paymentService.ListHourlyServices()
}

func (c *PaymentController) CreatePortalSession(customerID, customerEmail string) (string, error) {
	return c.paymentService.CreatePortalSession(customerID, customerEmail)
}
