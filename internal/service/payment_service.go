package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/elisassist/elisassist-backend/internal/config"
	"github.com/elisassist/elisassist-backend/internal/models"
	"github.com/elisassist/elisassist-backend/pkg/payment"
)

type PaymentService struct {
	gateway StripeGateway
	cfg     *config.Config
	logger  *zap.Logger
}

func NewPaymentService(gateway StripeGateway, cfg *config.Config, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		gateway: gateway,
		cfg:     cfg,
		logger:  logger,
	}
}

// CreatePlanCheckout validates the plan selection and requests a hosted
// checkout session. The metadata attached here is the only way the webhook
// handler and the invoice builder learn what was bought.
func (s *PaymentService) CreatePlanCheckout(planID, customerEmail string) (*models.CheckoutSessionResponse, error) {
	plan, ok := s.cfg.PlanByID(planID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSelection, planID)
	}
	if plan.PriceID == "" {
		return nil, fmt.Errorf("%w: plan %q", ErrUnconfigured, planID)
	}

	sess, err := s.gateway.CreateCheckoutSession(payment.CheckoutParams{
		Mode:          plan.Mode,
		PriceID:       plan.PriceID,
		Quantity:      1,
		CustomerEmail: customerEmail,
		SuccessURL:    s.cfg.FrontendURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.cfg.FrontendURL + "/#services",
		Metadata: map[string]string{
			"planId":   plan.ID,
			"planName": plan.Name,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	s.logger.Info("checkout session created",
		zap.String("plan", plan.ID),
		zap.String("session", sess.ID),
	)
	return &models.CheckoutSessionResponse{SessionID: sess.ID, URL: sess.URL}, nil
}

// CreateHourlyCheckout validates the service selection and hour count, then
// requests a one-time checkout where the quantity is the number of hours.
func (s *PaymentService) CreateHourlyCheckout(serviceID string, hours int64, customerEmail string) (*models.CheckoutSessionResponse, error) {
	svc, ok := s.cfg.HourlyServiceByID(serviceID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSelection, serviceID)
	}
	if hours < svc.MinHours || hours > svc.MaxHours {
		return nil, &HourRangeError{Min: svc.MinHours, Max: svc.MaxHours}
	}
	if svc.PriceID == "" {
		return nil, fmt.Errorf("%w: service %q", ErrUnconfigured, serviceID)
	}

	sess, err := s.gateway.CreateCheckoutSession(payment.CheckoutParams{
		Mode:          "payment",
		PriceID:       svc.PriceID,
		Quantity:      hours,
		CustomerEmail: customerEmail,
		SuccessURL:    s.cfg.FrontendURL + "/success?session_id={CHECKOUT_SESSION_ID}&type=hourly",
		CancelURL:     s.cfg.FrontendURL + "/#services",
		Metadata: map[string]string{
			"type":        "hourly",
			"serviceId":   svc.ID,
			"serviceName": svc.Name,
			"hours":       fmt.Sprintf("%d", hours),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create hourly checkout session: %w", err)
	}

	s.logger.Info("hourly checkout session created",
		zap.String("service", svc.ID),
		zap.Int64("hours", hours),
		zap.String("session", sess.ID),
	)
	return &models.CheckoutSessionResponse{SessionID: sess.ID, URL: sess.URL}, nil
}

func (s *PaymentService) GetSessionDetails(sessionID string) (*models.SessionDetails, error) {
	sess, err := s.gateway.GetCheckoutSession(sessionID, false)
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}

	email := sess.CustomerEmail
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		email = sess.CustomerDetails.Email
	}

	return &models.SessionDetails{
		Status:        string(sess.PaymentStatus),
		CustomerEmail: email,
		Amount:        sess.AmountTotal,
		Currency:      string(sess.Currency),
		PlanName:      sess.Metadata["planName"],
	}, nil
}

// ListPlans is a static view of the plan table. Configured flags depend only
// on configuration, so repeated calls are byte-identical.
func (s *PaymentService) ListPlans() []models.PlanView {
	plans := make([]models.PlanView, 0, len(s.cfg.Plans))
	for _, p := range s.cfg.Plans {
		plans = append(plans, models.PlanView{
			ID:         p.ID,
			Name:       p.Name,
			Mode:       p.Mode,
			Configured: p.PriceID != "",
		})
	}
	return plans
}

// ListHourlyServices resolves each service's hourly rate from the Stripe
// price catalog. An unreachable price leaves the service listed but
// unconfigured with a nil rate.
func (s *PaymentService) ListHourlyServices() []models.HourlyServiceView {
	services := make([]models.HourlyServiceView, 0, len(s.cfg.HourlyServices))
	for _, svc := range s.cfg.HourlyServices {
		view := models.HourlyServiceView{
			ID:       svc.ID,
			Name:     svc.Name,
			MinHours: svc.MinHours,
			MaxHours: svc.MaxHours,
		}

		if svc.PriceID != "" {
			price, err := s.gateway.GetPrice(svc.PriceID)
			if err != nil {
				s.logger.Warn("price lookup failed",
					zap.String("service", svc.ID),
					zap.String("price", svc.PriceID),
					zap.Error(err),
				)
			} else {
				rate := float64(price.UnitAmount) / 100
				view.HourlyRate = &rate
				view.Configured = true
			}
		}

		services = append(services, view)
	}
	return services
}

// CreatePortalSession returns a hosted customer-portal URL. A customer id is
// used directly; otherwise the payer is looked up by exact email match.
func (s *PaymentService) CreatePortalSession(customerID, customerEmail string) (string, error) {
	if customerID == "" {
		if customerEmail == "" {
			return "", ErrMissingIdentifier
		}
		cust, err := s.gateway.FindCustomerByEmail(customerEmail)
		if err != nil {
			return "", fmt.Errorf("customer lookup: %w", err)
		}
		if cust == nil {
			return "", fmt.Errorf("%w: %s", ErrPayerNotFound, customerEmail)
		}
		customerID = cust.ID
	}

	portal, err := s.gateway.CreatePortalSession(customerID, s.cfg.FrontendURL+"/#services")
	if err != nil {
		return "", fmt.Errorf("create portal session: %w", err)
	}

	s.logger.Info("customer portal session created", zap.String("customer", customerID))
	return portal.URL, nil
}
