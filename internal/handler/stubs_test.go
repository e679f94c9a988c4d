package handler

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"

	"github.com/elisassist/elisassist-backend/internal/config"
	"github.com/elisassist/elisassist-backend/internal/controller"
	"github.com/elisassist/elisassist-backend/internal/service"
	"github.com/elisassist/elisassist-backend/pkg/invoice"
	"github.com/elisassist/elisassist-backend/pkg/payment"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:                 "3000",
		StripeMode:           "test",
		StripeSecretKey:      "sk_test_xxx",
		StripePublishableKey: "pk_test_xxx",
		StripeWebhookSecret:  "",
		FrontendURL:          "http://localhost:4200",
		BackendURL:           "http://localhost:3000",
		AllowedOrigins:       "http://localhost:4200",
		Plans: []config.Plan{
			{ID: "essential", Name: "Pack Starter", Mode: "subscription", PriceID: "price_essential"},
			{ID: "pro", Name: "Pack Pro", Mode: "subscription", PriceID: "price_pro"},
			{ID: "premium", Name: "Pack Premium", Mode: "subscription", PriceID: ""},
		},
		HourlyServices: []config.HourlyService{
			{ID: "admin", Name: "Gestion Administrative", PriceID: "price_admin", MinHours: 1, MaxHours: 40},
			{ID: "automation", Name: "Automatisation & Design", PriceID: "price_automation", MinHours: 1, MaxHours: 40},
			{ID: "social", Name: "Gestion Réseaux Sociaux", PriceID: "", MinHours: 1, MaxHours: 40},
		},
	}
}

type stubGateway struct {
	session *stripe.CheckoutSession
	err     error
}

func (g *stubGateway) CreateCheckoutSession(p payment.CheckoutParams) (*stripe.CheckoutSession, error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.session != nil {
		return g.session, nil
	}
	return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/cs_test_1"}, nil
}

func (g *stubGateway) GetCheckoutSession(id string, expand bool) (*stripe.CheckoutSession, error) {
	if g.err != nil {
		return nil, g.err
	}
	if g.session != nil {
		return g.session, nil
	}
	return &stripe.CheckoutSession{ID: id, PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid}, nil
}

func (g *stubGateway) GetPrice(id string) (*stripe.Price, error) {
	return &stripe.Price{ID: id, UnitAmount: 3000, Currency: "eur"}, nil
}

func (g *stubGateway) GetCustomer(id string) (*stripe.Customer, error) {
	return &stripe.Customer{ID: id, Email: "client@example.fr"}, nil
}

func (g *stubGateway) FindCustomerByEmail(email string) (*stripe.Customer, error) {
	return nil, nil
}

func (g *stubGateway) CreatePortalSession(customerID, returnURL string) (*stripe.BillingPortalSession, error) {
	return &stripe.BillingPortalSession{URL: "https://billing.stripe.com/p/session_1"}, nil
}

type fakeMailer struct {
	clientSends   int
	operatorSends int
	testSends     []string
}

func (m *fakeMailer) Send(to, subject, htmlBody string) bool { m.clientSends++; return true }
func (m *fakeMailer) NotifyOperator(subject, htmlBody string) bool {
	m.operatorSends++
	return true
}

func (m *fakeMailer) SendSubscriptionConfirmation(to, planName string, amountCents int64, invoiceURL string) bool {
	m.clientSends++
	return true
}

func (m *fakeMailer) SendHourlyConfirmation(to, serviceName string, hours int64, hourlyRate, total float64, invoiceURL string) bool {
	m.clientSends++
	return true
}

func (m *fakeMailer) SendPaymentFailed(to, planName string) bool { m.clientSends++; return true }
func (m *fakeMailer) SendCancellationConfirmation(to, planName string) bool {
	m.clientSends++
	return true
}

func (m *fakeMailer) NotifyNewSubscription(customerEmail, planName string, amountCents int64) bool {
	m.operatorSends++
	return true
}

func (m *fakeMailer) NotifyHourlyPayment(customerEmail, serviceName string, hours int64, hourlyRate, total float64) bool {
	m.operatorSends++
	return true
}

func (m *fakeMailer) NotifyPaymentFailed(customerEmail, planName string) bool {
	m.operatorSends++
	return true
}

func (m *fakeMailer) NotifyCancellation(customerEmail, planName string) bool {
	m.operatorSends++
	return true
}

func (m *fakeMailer) NotifyScheduledCancellation(customerEmail string) bool {
	m.operatorSends++
	return true
}

func (m *fakeMailer) SendTestEmail(to string) bool {
	m.testSends = append(m.testSends, to)
	return true
}

type appFixture struct {
	cfg     *config.Config
	gateway *stubGateway
	mailer  *fakeMailer
}

func newTestApp(t *testing.T, cfg *config.Config) (*appFixture, *fiber.App) {
	t.Helper()

	logger := zap.NewNop()
	gateway := &stubGateway{}
	mailer := &fakeMailer{}

	renderer, err := invoice.NewRenderer(t.TempDir(), invoice.Company{Name: "ElisAssist"}, logger)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	paymentService := service.NewPaymentService(gateway, cfg, logger)
	webhookService := service.NewWebhookService(gateway, mailer, cfg, logger)
	invoiceService := service.NewInvoiceService(gateway, renderer, logger)

	paymentHandler := NewPaymentHandler(controller.NewPaymentController(paymentService), cfg)
	webhookHandler := NewWebhookHandler(controller.NewWebhookController(webhookService), cfg.StripeWebhookSecret, logger)
	invoiceHandler := NewInvoiceHandler(controller.NewInvoiceController(invoiceService), logger)
	healthHandler := NewHealthHandler(cfg, mailer)

	app := NewRouter(cfg, paymentHandler, webhookHandler, invoiceHandler, healthHandler)

	return &appFixture{cfg: cfg, gateway: gateway, mailer: mailer}, app
}
