package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"

	"github.com/elisassist/elisassist-backend/internal/config"
)

// Stripe retries deliveries for up to a few days; remembering event ids for
// a day is enough to absorb retry storms without growing unbounded.
const seenEventTTL = 24 * time.Hour

// WebhookService classifies verified Stripe events and fans them out to the
// mailer. Handling is best-effort: a failed notification is logged and the
// event is still acknowledged, so Stripe does not retry forever over a
// problem that is not its concern.
type WebhookService struct {
	gateway StripeGateway
	mailer  Mailer
	cfg     *config.Config
	logger  *zap.Logger

	mu   sync.Mutex
	seen map[string]time.Time
}

func NewWebhookService(gateway StripeGateway, mailer Mailer, cfg *config.Config, logger *zap.Logger) *WebhookService {
	return &WebhookService{
		gateway: gateway,
		mailer:  mailer,
		cfg:     cfg,
		logger:  logger,
		seen:    make(map[string]time.Time),
	}
}

// Handle dispatches one event. Unknown event types are ignored; duplicate
// deliveries of the same event id send nothing.
func (s *WebhookService) Handle(event *stripe.Event) {
	if s.alreadySeen(event.ID) {
		s.logger.Info("duplicate webhook delivery ignored", zap.String("event", event.ID))
		return
	}

	s.logger.Info("webhook received",
		zap.String("event", event.ID),
		zap.String("type", string(event.Type)),
	)

	var err error
	switch event.Type {
	case "checkout.session.completed":
		err = s.handleCheckoutCompleted(event)
	case "invoice.paid":
		// Recurring-renewal acknowledgment, no notification.
		s.logger.Info("invoice paid", zap.String("event", event.ID))
	case "invoice.payment_failed":
		err = s.handlePaymentFailed(event)
	case "customer.subscription.deleted":
		err = s.handleSubscriptionDeleted(event)
	case "customer.subscription.updated":
		err = s.handleSubscriptionUpdated(event)
	default:
		s.logger.Debug("unhandled webhook type", zap.String("type", string(event.Type)))
	}

	if err != nil {
		s.logger.Error("webhook handling failed",
			zap.String("event", event.ID),
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
	}
}

func (s *WebhookService) handleCheckoutCompleted(event *stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("decode checkout session: %w", err)
	}

	email := sess.CustomerEmail
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		email = sess.CustomerDetails.Email
	}

	invoiceURL := s.cfg.BackendURL + "/api/invoice/" + sess.ID

	if sess.Metadata["type"] == "hourly" {
		hours, err := strconv.ParseInt(sess.Metadata["hours"], 10, 64)
		if err != nil || hours <= 0 {
			hours = 1
		}
		serviceName := sess.Metadata["serviceName"]
		if serviceName == "" {
			serviceName = "Prestation horaire"
		}
		total := float64(sess.AmountTotal) / 100
		rate := total / float64(hours)

		if email != "" {
			s.mailer.SendHourlyConfirmation(email, serviceName, hours, rate, total, invoiceURL)
		}
		s.mailer.NotifyHourlyPayment(email, serviceName, hours, rate, total)
		return nil
	}

	planName := sess.Metadata["planName"]
	if planName == "" {
		planName = "Abonnement"
	}

	if email != "" {
		s.mailer.SendSubscriptionConfirmation(email, planName, sess.AmountTotal, invoiceURL)
	}
	s.mailer.NotifyNewSubscription(email, planName, sess.AmountTotal)
	return nil
}

func (s *WebhookService) handlePaymentFailed(event *stripe.Event) error {
	var inv stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
		return fmt.Errorf("decode invoice: %w", err)
	}

	planName := "Abonnement"
	if inv.Lines != nil && len(inv.Lines.Data) > 0 && inv.Lines.Data[0].Description != "" {
		planName = inv.Lines.Data[0].Description
	}

	if inv.CustomerEmail != "" {
		s.mailer.SendPaymentFailed(inv.CustomerEmail, planName)
	}
	s.mailer.NotifyPaymentFailed(inv.CustomerEmail, planName)
	return nil
}

func (s *WebhookService) handleSubscriptionDeleted(event *stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("decode subscription: %w", err)
	}
	if sub.Customer == nil || sub.Customer.ID == "" {
		return fmt.Errorf("subscription %s has no customer", sub.ID)
	}

	// The event only carries the customer id; the email needs a lookup.
	cust, err := s.gateway.GetCustomer(sub.Customer.ID)
	if err != nil {
		return fmt.Errorf("resolve customer %s: %w", sub.Customer.ID, err)
	}
	if cust == nil {
		return fmt.Errorf("customer %s not found", sub.Customer.ID)
	}

	planName := "Abonnement"
	if sub.Items != nil && len(sub.Items.Data) > 0 &&
		sub.Items.Data[0].Price != nil && sub.Items.Data[0].Price.Nickname != "" {
		planName = sub.Items.Data[0].Price.Nickname
	}

	if cust.Email != "" {
		s.mailer.SendCancellationConfirmation(cust.Email, planName)
	}
	s.mailer.NotifyCancellation(cust.Email, planName)
	return nil
}

func (s *WebhookService) handleSubscriptionUpdated(event *stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("decode subscription: %w", err)
	}

	// Only end-of-period cancellations are interesting, and only to the
	// operator; the payer already confirmed the action in the portal.
	if !sub.CancelAtPeriodEnd {
		return nil
	}
	if sub.Customer == nil || sub.Customer.ID == "" {
		return fmt.Errorf("subscription %s has no customer", sub.ID)
	}

	cust, err := s.gateway.GetCustomer(sub.Customer.ID)
	if err != nil {
		return fmt.Errorf("resolve customer %s: %w", sub.Customer.ID, err)
	}
	if cust == nil {
		return fmt.Errorf("customer %s not found", sub.Customer.ID)
	}

	s.mailer.NotifyScheduledCancellation(cust.Email)
	return nil
}

// alreadySeen records the event id and reports whether it was delivered
// before within the TTL. Expired entries are pruned on insert.
func (s *WebhookService) alreadySeen(eventID string) bool {
	if eventID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, at := range s.seen {
		if now.Sub(at) > seenEventTTL {
			delete(s.seen, id)
		}
	}

	if _, dup := s.seen[eventID]; dup {
		return true
	}
	s.seen[eventID] = now
	return false
}
