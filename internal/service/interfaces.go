package service

import (
	"github.com/stripe/stripe-go/v74"

	"github.com/elisassist/elisassist-backend/pkg/payment"
)

// StripeGateway is the slice of the Stripe API the services use. The
// production implementation is payment.StripeService; tests substitute a
// stub.
type StripeGateway interface {
	CreateCheckoutSession(p payment.CheckoutParams) (*stripe.CheckoutSession, error)
	GetCheckoutSession(id string, expand bool) (*stripe.CheckoutSession, error)
	GetPrice(id string) (*stripe.Price, error)
	GetCustomer(id string) (*stripe.Customer, error)
	FindCustomerByEmail(email string) (*stripe.Customer, error)
	CreatePortalSession(customerID, returnURL string) (*stripe.BillingPortalSession, error)
}

// Mailer sends the notification emails fanned out by the webhook
// dispatcher. Every method is fire-and-forget: false means the send failed
// and was logged, never that the caller should retry or abort.
type Mailer interface {
	Send(to, subject, htmlBody string) bool
	NotifyOperator(subject, htmlBody string) bool

	SendSubscriptionConfirmation(to, planName string, amountCents int64, invoiceURL string) bool
	SendHourlyConfirmation(to, serviceName string, hours int64, hourlyRate, total float64, invoiceURL string) bool
	SendPaymentFailed(to, planName string) bool
	SendCancellationConfirmation(to, planName string) bool

	NotifyNewSubscription(customerEmail, planName string, amountCents int64) bool
	NotifyHourlyPayment(customerEmail, serviceName string, hours int64, hourlyRate, total float64) bool
	NotifyPaymentFailed(customerEmail, planName string) bool
	NotifyCancellation(customerEmail, planName string) bool
	NotifyScheduledCancellation(customerEmail string) bool

	SendTestEmail(to string) bool
}
