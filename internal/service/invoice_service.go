package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"

	"github.com/elisassist/elisassist-backend/internal/models"
	"github.com/elisassist/elisassist-backend/pkg/invoice"
)

// InvoiceResult locates a rendered invoice for streaming.
type InvoiceResult struct {
	FilePath string
	FileName string
	Number   string
}

type InvoiceService struct {
	gateway  StripeGateway
	renderer *invoice.Renderer
	logger   *zap.Logger
}

func NewInvoiceService(gateway StripeGateway, renderer *invoice.Renderer, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		gateway:  gateway,
		renderer: renderer,
		logger:   logger,
	}
}

// GenerateForSession renders an invoice for a completed checkout session.
// Unpaid sessions are rejected before any rendering work happens.
func (s *InvoiceService) GenerateForSession(sessionID string) (*InvoiceResult, error) {
	sess, err := s.gateway.GetCheckoutSession(sessionID, true)
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}
	if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return nil, fmt.Errorf("%w: session %s is %q", ErrSessionNotPaid, sessionID, sess.PaymentStatus)
	}

	data := buildSessionInvoice(sess)

	filePath, fileName, err := s.renderer.Generate(data)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{FilePath: filePath, FileName: fileName, Number: data.Number}, nil
}

// GenerateManual renders an invoice from an admin-supplied body, filling in
// missing line totals and the grand total.
func (s *InvoiceService) GenerateManual(req models.GenerateInvoiceRequest) (*InvoiceResult, error) {
	items := make([]invoice.LineItem, 0, len(req.Items))
	var total float64
	for _, it := range req.Items {
		quantity := it.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		lineTotal := it.Total
		if lineTotal == 0 {
			lineTotal = float64(quantity) * it.UnitPrice
		}
		items = append(items, invoice.LineItem{
			Description: it.Description,
			Quantity:    quantity,
			UnitPrice:   it.UnitPrice,
			Total:       lineTotal,
		})
		total += lineTotal
	}

	date := req.Date
	if date == "" {
		date = frenchDate(time.Now())
	}
	name := req.CustomerName
	if name == "" {
		name = "Client"
	}

	data := invoice.Data{
		Number:          invoice.NewNumber(),
		CustomerName:    name,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: req.CustomerAddress,
		Items:           items,
		Total:           total,
		Date:            date,
	}

	filePath, fileName, err := s.renderer.Generate(data)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{FilePath: filePath, FileName: fileName, Number: data.Number}, nil
}

// buildSessionInvoice reconstructs what was purchased from the session
// metadata, the only record of purchase intent.
func buildSessionInvoice(sess *stripe.CheckoutSession) invoice.Data {
	total := float64(sess.AmountTotal) / 100

	var item invoice.LineItem
	if sess.Metadata["type"] == "hourly" {
		hours, err := strconv.ParseInt(sess.Metadata["hours"], 10, 64)
		if err != nil || hours <= 0 {
			hours = 1
		}
		serviceName := sess.Metadata["serviceName"]
		if serviceName == "" {
			serviceName = "Prestation horaire"
		}
		item = invoice.LineItem{
			Description: serviceName,
			Quantity:    hours,
			UnitPrice:   total / float64(hours),
			Total:       total,
		}
	} else {
		planName := sess.Metadata["planName"]
		if planName == "" {
			planName = "Abonnement"
		}
		item = invoice.LineItem{
			Description: planName,
			Quantity:    1,
			UnitPrice:   total,
			Total:       total,
		}
	}

	name := "Client"
	email := sess.CustomerEmail
	var address string
	if details := sess.CustomerDetails; details != nil {
		if details.Name != "" {
			name = details.Name
		}
		if details.Email != "" {
			email = details.Email
		}
		address = formatAddress(details.Address)
	}

	return invoice.Data{
		Number:          invoice.NewNumber(),
		CustomerName:    name,
		CustomerEmail:   email,
		CustomerAddress: address,
		Items:           []invoice.LineItem{item},
		Total:           total,
		Date:            frenchDate(time.Now()),
	}
}

func formatAddress(addr *stripe.Address) string {
	if addr == nil {
		return ""
	}
	lines := []string{
		addr.Line1,
		strings.TrimSpace(addr.PostalCode + " " + addr.City),
		addr.Country,
	}
	var kept []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

func frenchDate(t time.Time) string {
	return t.Format("02/01/2006")
}
