package payment

import (
	"github.com/stripe/stripe-go/v74"
	portalsession "github.com/stripe/stripe-go/v74/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/customer"
	"github.com/stripe/stripe-go/v74/price"
)

// CheckoutParams describes one hosted checkout session request. Metadata is
// echoed back unchanged in webhook events and is the only channel for
// round-tripping purchase intent.
type CheckoutParams struct {
	Mode          string // "subscription" or "payment"
	PriceID       string
	Quantity      int64
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

type StripeService struct {
	secretKey string
}

func NewStripeService(secretKey string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		secretKey: secretKey,
	}
}

func (s *StripeService) CreateCheckoutSession(p CheckoutParams) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(p.Mode),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(p.PriceID),
				Quantity: stripe.Int64(p.Quantity),
			},
		},
		SuccessURL:               stripe.String(p.SuccessURL),
		CancelURL:                stripe.String(p.CancelURL),
		Locale:                   stripe.String("fr"),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
	}
	if p.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	return checkoutsession.New(params)
}

// GetCheckoutSession retrieves a session. With expand set, line items and
// customer details are included, which the invoice builder needs.
func (s *StripeService) GetCheckoutSession(id string, expand bool) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	if expand {
		params.AddExpand("line_items")
		params.AddExpand("customer_details")
	}
	return checkoutsession.Get(id, params)
}

func (s *StripeService) GetPrice(id string) (*stripe.Price, error) {
	return price.Get(id, nil)
}

func (s *StripeService) GetCustomer(id string) (*stripe.Customer, error) {
	return customer.Get(id, nil)
}

// FindCustomerByEmail returns the first customer with an exact email match,
// or nil when there is none.
func (s *StripeService) FindCustomerByEmail(email string) (*stripe.Customer, error) {
	params := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	params.Limit = stripe.Int64(1)

	it := customer.List(params)
	for it.Next() {
		return it.Customer(), nil
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *StripeService) CreatePortalSession(customerID, returnURL string) (*stripe.BillingPortalSession, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	return portalsession.New(params)
}
