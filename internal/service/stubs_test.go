package service

import (
	"github.com/stripe/stripe-go/v74"

	"github.com/elisassist/elisassist-backend/internal/config"
	"github.com/elisassist/elisassist-backend/pkg/payment"
)

func testConfig() *config.Config {
	return &config.Config{
		StripeMode:  "test",
		FrontendURL: "http://localhost:4200",
		BackendURL:  "http://localhost:3000",
		Plans: []config.Plan{
			{ID: "essential", Name: "Pack Starter", Mode: "subscription", PriceID: "price_ess"},
			{ID: "pro", Name: "Pack Pro", Mode: "subscription", PriceID: "price_pro"},
			{ID: "premium", Name: "Pack Premium", Mode: "subscription", PriceID: ""},
		},
		HourlyServices: []config.HourlyService{
			{ID: "admin", Name: "Gestion Administrative", PriceID: "price_admin", MinHours: 1, MaxHours: 40},
			{ID: "social", Name: "Gestion Réseaux Sociaux", PriceID: "", MinHours: 1, MaxHours: 40},
		},
	}
}

type stubGateway struct {
	createCalls []payment.CheckoutParams
	session     *stripe.CheckoutSession
	createErr   error

	getSessionCalls int
	getSession      *stripe.CheckoutSession
	getSessionErr   error

	price    *stripe.Price
	priceErr error

	customer    *stripe.Customer
	customerErr error

	foundCustomer *stripe.Customer
	findErr       error

	portalCalls []string
	portal      *stripe.BillingPortalSession
	portalErr   error
}

func (g *stubGateway) CreateCheckoutSession(p payment.CheckoutParams) (*stripe.CheckoutSession, error) {
	g.createCalls = append(g.createCalls, p)
	if g.createErr != nil {
		return nil, g.createErr
	}
	if g.session != nil {
		return g.session, nil
	}
	return &stripe.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/c/cs_test_1"}, nil
}

func (g *stubGateway) GetCheckoutSession(id string, expand bool) (*stripe.CheckoutSession, error) {
	g.getSessionCalls++
	if g.getSessionErr != nil {
		return nil, g.getSessionErr
	}
	return g.getSession, nil
}

func (g *stubGateway) GetPrice(id string) (*stripe.Price, error) {
	if g.priceErr != nil {
		return nil, g.priceErr
	}
	return g.price, nil
}

func (g *stubGateway) GetCustomer(id string) (*stripe.Customer, error) {
	if g.customerErr != nil {
		return nil, g.customerErr
	}
	return g.customer, nil
}

func (g *stubGateway) FindCustomerByEmail(email string) (*stripe.Customer, error) {
	if g.findErr != nil {
		return nil, g.findErr
	}
	return g.foundCustomer, nil
}

func (g *stubGateway) CreatePortalSession(customerID, returnURL string) (*stripe.BillingPortalSession, error) {
	g.portalCalls = append(g.portalCalls, customerID)
	if g.portalErr != nil {
		return nil, g.portalErr
	}
	if g.portal != nil {
		return g.portal, nil
	}
	return &stripe.BillingPortalSession{URL: "https://billing.stripe.com/p/session_1"}, nil
}

type hourlyCall struct {
	To          string
	ServiceName string
	Hours       int64
	HourlyRate  float64
	Total       float64
	InvoiceURL  string
}

type subscriptionCall struct {
	To          string
	PlanName    string
	AmountCents int64
	InvoiceURL  string
}

// fakeMailer records every notification; all sends succeed.
type fakeMailer struct {
	sends            []string
	operatorSubjects []string

	subscriptionConfirmations []subscriptionCall
	hourlyConfirmations       []hourlyCall
	paymentFailures           []string
	cancellations             []string

	operatorNewSubscriptions []subscriptionCall
	operatorHourlyPayments   []hourlyCall
	operatorPaymentFailures  []string
	operatorCancellations    []string
	scheduledCancellations   []string

	testEmails []string
}

func (m *fakeMailer) Send(to, subject, htmlBody string) bool {
	m.sends = append(m.sends, to)
	return true
}

func (m *fakeMailer) NotifyOperator(subject, htmlBody string) bool {
	m.operatorSubjects = append(m.operatorSubjects, subject)
	return true
}

func (m *fakeMailer) SendSubscriptionConfirmation(to, planName string, amountCents int64, invoiceURL string) bool {
	m.subscriptionConfirmations = append(m.subscriptionConfirmations, subscriptionCall{to, planName, amountCents, invoiceURL})
	return true
}

func (m *fakeMailer) SendHourlyConfirmation(to, serviceName string, hours int64, hourlyRate, total float64, invoiceURL string) bool {
	m.hourlyConfirmations = append(m.hourlyConfirmations, hourlyCall{to, serviceName, hours, hourlyRate, total, invoiceURL})
	return true
}

func (m *fakeMailer) SendPaymentFailed(to, planName string) bool {
	m.paymentFailures = append(m.paymentFailures, to)
	return true
}

func (m *fakeMailer) SendCancellationConfirmation(to, planName string) bool {
	m.cancellations = append(m.cancellations, to)
	return true
}

func (m *fakeMailer) NotifyNewSubscription(customerEmail, planName string, amountCents int64) bool {
	m.operatorNewSubscriptions = append(m.operatorNewSubscriptions, subscriptionCall{customerEmail, planName, amountCents, ""})
	return true
}

func (m *fakeMailer) NotifyHourlyPayment(customerEmail, serviceName string, hours int64, hourlyRate, total float64) bool {
	m.operatorHourlyPayments = append(m.operatorHourlyPayments, hourlyCall{customerEmail, serviceName, hours, hourlyRate, total, ""})
	return true
}

func (m *fakeMailer) NotifyPaymentFailed(customerEmail, planName string) bool {
	m.operatorPaymentFailures = append(m.operatorPaymentFailures, customerEmail)
	return true
}

func (m *fakeMailer) NotifyCancellation(customerEmail, planName string) bool {
	m.operatorCancellations = append(m.operatorCancellations, customerEmail)
	return true
}

func (m *fakeMailer) NotifyScheduledCancellation(customerEmail string) bool {
	m.scheduledCancellations = append(m.scheduledCancellations, customerEmail)
	return true
}

func (m *fakeMailer) SendTestEmail(to string) bool {
	m.testEmails = append(m.testEmails, to)
	return true
}

// clientSendCount counts payer-facing notifications of every kind.
func (m *fakeMailer) clientSendCount() int {
	return len(m.subscriptionConfirmations) + len(m.hourlyConfirmations) +
		len(m.paymentFailures) + len(m.cancellations)
}

// operatorSendCount counts operator-facing notifications of every kind.
func (m *fakeMailer) operatorSendCount() int {
	return len(m.operatorSubjects) + len(m.operatorNewSubscriptions) +
		len(m.operatorHourlyPayments) + len(m.operatorPaymentFailures) +
		len(m.operatorCancellations) + len(m.scheduledCancellations)
}
