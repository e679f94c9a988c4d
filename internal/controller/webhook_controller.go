package controller

import (
	"github.com/stripe/stripe-go/v74"

	"github.com/elisassist/elisassist-backend/internal/service"
)

type WebhookController struct {
	webhookService *service.WebhookService
}

func NewWebhookController(webhookService *service.WebhookService) *WebhookController {
	return &WebhookController{
		webhookService: webhookService,
	}
}

func (c *WebhookController) Handle(event *stripe.Event) {
	c.webhookService.Handle(event)
}
