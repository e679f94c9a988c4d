package email

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

// Config holds the sender identity. OperatorAddress is where operator
// notifications go; when empty, the sender inbox doubles as the operator
// inbox.
type Config struct {
	APIKey          string
	FromAddress     string
	FromName        string
	OperatorAddress string
	TemplatesDir    string
}

type EmailService struct {
	client       *resend.Client
	from         string
	fromName     string
	operator     string
	templatesDir string
	logger       *zap.Logger
}

func NewEmailService(cfg Config, logger *zap.Logger) *EmailService {
	operator := cfg.OperatorAddress
	if operator == "" {
		operator = cfg.FromAddress
	}
	templatesDir := cfg.TemplatesDir
	if templatesDir == "" {
		templatesDir = "pkg/email/templates"
	}

	return &EmailService{
		client:       resend.NewClient(cfg.APIKey),
		from:         cfg.FromAddress,
		fromName:     cfg.FromName,
		operator:     operator,
		templatesDir: templatesDir,
		logger:       logger,
	}
}

// Send delivers one HTML email. It never fails the caller: transport errors
// are logged and reported as false so webhook handling can carry on.
func (s *EmailService) Send(to, subject, htmlBody string) bool {
	if to == "" {
		s.logger.Warn("email skipped, empty recipient", zap.String("subject", subject))
		return false
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("email send failed", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return false
	}

	s.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject), zap.String("id", resp.Id))
	return true
}

// NotifyOperator routes a message to the configured operator inbox.
func (s *EmailService) NotifyOperator(subject, htmlBody string) bool {
	return s.Send(s.operator, subject, htmlBody)
}

func (s *EmailService) SendSubscriptionConfirmation(to, planName string, amountCents int64, invoiceURL string) bool {
	html, err := s.parseTemplate("subscription-confirmed.html", map[string]interface{}{
		"PlanName":   planName,
		"Amount":     formatEuros(amountCents),
		"InvoiceURL": invoiceURL,
		"Year":       time.Now().Year(),
	})
	if err != nil {
		s.logger.Error("template error", zap.String("template", "subscription-confirmed.html"), zap.Error(err))
		return false
	}
	return s.Send(to, "🎉 Bienvenue ! Votre abonnement est activé", html)
}

func (s *EmailService) SendHourlyConfirmation(to, serviceName string, hours int64, hourlyRate, total float64, invoiceURL string) bool {
	html, err := s.parseTemplate("hourly-confirmed.html", map[string]interface{}{
		"ServiceName": serviceName,
		"Hours":       hours,
		"HourlyRate":  fmt.Sprintf("%.2f", hourlyRate),
		"Total":       fmt.Sprintf("%.2f", total),
		"InvoiceURL":  invoiceURL,
		"Year":        time.Now().Year(),
	})
	if err != nil {
		s.logger.Error("template error", zap.String("template", "hourly-confirmed.html"), zap.Error(err))
		return false
	}
	subject := fmt.Sprintf("🎉 Confirmation de votre commande - %dh de %s", hours, serviceName)
	return s.Send(to, subject, html)
}

func (s *EmailService) SendPaymentFailed(to, planName string) bool {
	html, err := s.parseTemplate("payment-failed.html", map[string]interface{}{
		"PlanName": planName,
		"Year":     time.Now().Year(),
	})
	if err != nil {
		s.logger.Error("template error", zap.String("template", "payment-failed.html"), zap.Error(err))
		return false
	}
	return s.Send(to, "⚠️ Problème avec votre paiement", html)
}

func (s *EmailService) SendCancellationConfirmation(to, planName string) bool {
	html, err := s.parseTemplate("subscription-cancelled.html", map[string]interface{}{
		"PlanName": planName,
		"Year":     time.Now().Year(),
	})
	if err != nil {
		s.logger.Error("template error", zap.String("template", "subscription-cancelled.html"), zap.Error(err))
		return false
	}
	return s.Send(to, "Confirmation d'annulation de votre abonnement", html)
}

func (s *EmailService) NotifyNewSubscription(customerEmail, planName string, amountCents int64) bool {
	html, err := s.parseTemplate("admin-new-subscription.html", map[string]interface{}{
		"CustomerEmail": customerEmail,
		"PlanName":      planName,
		"Amount":        formatEuros(amountCents),
	})
	if err != nil {
		s.logger.Error("template error", zap.String("template", "admin-new-subscription.html"), zap.Error(err))
		return false
	}
	return s.NotifyOperator("🎉 Nouvel abonnement: "+planName, html)
}

func (s *EmailService) NotifyHourlyPayment(customerEmail, serviceName string, hours int64, hourlyRate, total float64) bool {
	html, err := s.parseTemplate("admin-hourly-payment.html", map[string]interface{}{
		"CustomerEmail": customerEmail,
		"ServiceName":   serviceName,
		"Hours":         hours,
		"HourlyRate":    fmt.Sprintf("%.2f", hourlyRate),
		"Total":         fmt.Sprintf("%.2f", total),
	})
	if err != nil {
		s.logger.Error("template error", zap.String("template", "admin-hourly-payment.html"), zap.Error(err))
		return false
	}
	subject := fmt.Sprintf("💰 Nouveau paiement horaire: %dh de %s", hours, serviceName)
	return s.NotifyOperator(subject, html)
}

func (s *EmailService) NotifyPaymentFailed(customerEmail, planName string) bool {
	html, err := s.parseTemplate("admin-payment-failed.html", map[string]interface{}{
		"CustomerEmail": customerEmail,
		"PlanName":      planName,
	})
	if err != nil {
		s.logger.Error("template error", zap.String("template", "admin-payment-failed.html"), zap.Error(err))
		return false
	}
	return s.NotifyOperator("⚠️ Échec paiement: "+customerEmail, html)
}

func (s *EmailService) NotifyCancellation(customerEmail, planName string) bool {
	html, err := s.parseTemplate("admin-cancellation.html", map[string]interface{}{
		"CustomerEmail": customerEmail,
		"PlanName":      planName,
	})
	if err != nil {
		s.logger.Error("template error", zap.String("template", "admin-cancellation.html"), zap.Error(err))
		return false
	}
	return s.NotifyOperator("❌ Annulation: "+customerEmail, html)
}

func (s *EmailService) NotifyScheduledCancellation(customerEmail string) bool {
	html, err := s.parseTemplate("admin-scheduled-cancellation.html", map[string]interface{}{
		"CustomerEmail": customerEmail,
	})
	if err != nil {
		s.logger.Error("template error", zap.String("template", "admin-scheduled-cancellation.html"), zap.Error(err))
		return false
	}
	return s.NotifyOperator("⏳ Annulation programmée: "+customerEmail, html)
}

// SendTestEmail is the diagnostic send behind POST /api/test-email.
func (s *EmailService) SendTestEmail(to string) bool {
	html := "<h2>✅ Configuration email réussie !</h2><p>Si vous recevez cet email, votre configuration fonctionne correctement.</p>"
	return s.Send(to, "Test - Configuration Email", html)
}

func (s *EmailService) parseTemplate(templateName string, data interface{}) (string, error) {
	templatePath := filepath.Join(s.templatesDir, templateName)

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", err
	}

	return body.String(), nil
}

func formatEuros(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}
