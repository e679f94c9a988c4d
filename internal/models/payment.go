package models

type CreateCheckoutSessionRequest struct {
	PlanID        string `json:"planId" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"omitempty,email"`
}

type CreateHourlyCheckoutSessionRequest struct {
	ServiceID     string `json:"serviceId" validate:"required"`
	Hours         int64  `json:"hours"`
	CustomerEmail string `json:"customerEmail" validate:"omitempty,email"`
}

// CheckoutSessionResponse carries the redirect target for the browser.
type CheckoutSessionResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// SessionDetails is the post-payment status view shown on the success page.
type SessionDetails struct {
	Status        string `json:"status"`
	CustomerEmail string `json:"customerEmail"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	PlanName      string `json:"planName"`
}

type PlanView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Mode       string `json:"mode"`
	Configured bool   `json:"configured"`
}

// HourlyServiceView lists an hourly service with its rate resolved from the
// Stripe price catalog. HourlyRate is nil when the price could not be
// resolved, in which case Configured is false.
type HourlyServiceView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	HourlyRate *float64 `json:"hourlyRate"`
	MinHours   int64    `json:"minHours"`
	MaxHours   int64    `json:"maxHours"`
	Configured bool     `json:"configured"`
}

type CustomerPortalRequest struct {
	CustomerID    string `json:"customerId"`
	CustomerEmail string `json:"customerEmail" validate:"omitempty,email"`
}

type CustomerPortalResponse struct {
	URL string `json:"url"`
}
