package models

type InvoiceItemRequest struct {
	Description string  `json:"description" validate:"required"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// GenerateInvoiceRequest is the manual/admin invoice body. Missing item
// totals are computed as quantity times unit price.
type GenerateInvoiceRequest struct {
	CustomerName    string               `json:"customerName"`
	CustomerEmail   string               `json:"customerEmail" validate:"required,email"`
	CustomerAddress string               `json:"customerAddress"`
	Items           []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	Date            string               `json:"date"`
}

type TestEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type HealthResponse struct {
	Status            string `json:"status"`
	Mode              string `json:"mode"`
	EmailConfigured   bool   `json:"emailConfigured"`
	WebhookConfigured bool   `json:"webhookConfigured"`
	Timestamp         string `json:"timestamp"`
}
