package config

import (
	"os"
)

// Plan is a subscription or one-time offer sold through Stripe Checkout.
// The price lives in Stripe; only the reference is kept here.
type Plan struct {
	ID      string
	Name    string
	Mode    string // "subscription" or "payment"
	PriceID string
}

// HourlyService is a service billed per hour. The hourly rate is resolved
// lazily from the Stripe price catalog, never stored locally.
type HourlyService struct {
	ID       string
	Name     string
	PriceID  string
	MinHours int64
	MaxHours int64
}

type EmailConfig struct {
	ResendAPIKey    string
	FromAddress     string
	FromName        string
	OperatorAddress string
	TemplatesDir    string
}

// CompanyConfig is the issuer identity printed on invoices.
type CompanyConfig struct {
	Name       string
	Address    string
	PostalCode string
	City       string
	SIRET      string
	Email      string
	Phone      string
	VATNotice  string
}

type Config struct {
	Port string

	StripeMode           string // "test" or "live"
	StripeSecretKey      string
	StripePublishableKey string
	StripeWebhookSecret  string

	FrontendURL    string
	BackendURL     string
	AllowedOrigins string

	Email   EmailConfig
	Company CompanyConfig

	InvoiceDir string

	Plans          []Plan
	HourlyServices []HourlyService
}

// Load builds the configuration from the environment. The result is
// immutable for the process lifetime; every component receives it by
// reference instead of reading the environment itself.
func Load() *Config {
	mode := getenv("STRIPE_MODE", "test")

	cfg := &Config{
		Port:                 getenv("PORT", "3000"),
		StripeMode:           mode,
		StripeSecretKey:      modeEnv(mode, "STRIPE_SECRET_KEY"),
		StripePublishableKey: modeEnv(mode, "STRIPE_PUBLISHABLE_KEY"),
		StripeWebhookSecret:  modeEnv(mode, "STRIPE_WEBHOOK_SECRET"),
		FrontendURL:          getenv("FRONTEND_URL", "http://localhost:4200"),
		BackendURL:           getenv("BACKEND_URL", "http://localhost:3000"),
		AllowedOrigins:       getenv("ALLOWED_ORIGINS", getenv("FRONTEND_URL", "http://localhost:4200")),
		InvoiceDir:           getenv("INVOICE_DIR", "invoices"),
	}

	cfg.Email = EmailConfig{
		ResendAPIKey:    os.Getenv("RESEND_API_KEY"),
		FromAddress:     os.Getenv("EMAIL_FROM_ADDRESS"),
		FromName:        getenv("EMAIL_FROM_NAME", "ElisAssist"),
		OperatorAddress: os.Getenv("ADMIN_EMAIL"),
		TemplatesDir:    getenv("EMAIL_TEMPLATES_DIR", "pkg/email/templates"),
	}

	cfg.Company = CompanyConfig{
		Name:       getenv("COMPANY_NAME", "ElisAssist Assistante Digitale"),
		Address:    getenv("COMPANY_ADDRESS", "17 rue Jannes Barret"),
		PostalCode: getenv("COMPANY_POSTAL_CODE", "33240"),
		City:       getenv("COMPANY_CITY", "Saint-André-de-Cubzac"),
		SIRET:      getenv("COMPANY_SIRET", "879 865 160 00029"),
		Email:      getenv("COMPANY_EMAIL", os.Getenv("EMAIL_FROM_ADDRESS")),
		Phone:      getenv("COMPANY_PHONE", "06 64 66 93 63"),
		VATNotice:  getenv("COMPANY_VAT_NOTICE", "TVA non applicable, art. 293 B du CGI"),
	}

	cfg.Plans = []Plan{
		{ID: "essential", Name: "Pack Starter", Mode: "subscription", PriceID: modeEnv(mode, "PRICE_ID_ESSENTIAL")},
		{ID: "pro", Name: "Pack Pro", Mode: "subscription", PriceID: modeEnv(mode, "PRICE_ID_PRO")},
		{ID: "premium", Name: "Pack Premium", Mode: "subscription", PriceID: modeEnv(mode, "PRICE_ID_PREMIUM")},
	}

	cfg.HourlyServices = []HourlyService{
		{ID: "admin", Name: "Gestion Administrative", PriceID: modeEnv(mode, "PRICE_ID_HOURLY_ADMIN"), MinHours: 1, MaxHours: 40},
		{ID: "automation", Name: "Automatisation & Design", PriceID: modeEnv(mode, "PRICE_ID_HOURLY_AUTOMATION"), MinHours: 1, MaxHours: 40},
		{ID: "social", Name: "Gestion Réseaux Sociaux", PriceID: modeEnv(mode, "PRICE_ID_HOURLY_SOCIAL"), MinHours: 1, MaxHours: 40},
	}

	return cfg
}

func (c *Config) IsLive() bool {
	return c.StripeMode == "live"
}

func (c *Config) EmailConfigured() bool {
	return c.Email.ResendAPIKey != "" && c.Email.FromAddress != ""
}

func (c *Config) WebhookConfigured() bool {
	return c.StripeWebhookSecret != ""
}

func (c *Config) PlanByID(id string) (Plan, bool) {
	for _, p := range c.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

func (c *Config) HourlyServiceByID(id string) (HourlyService, bool) {
	for _, s := range c.HourlyServices {
		if s.ID == id {
			return s, true
		}
	}
	return HourlyService{}, false
}

// PlanIDs returns the selectable plan identifiers, used in validation errors.
func (c *Config) PlanIDs() []string {
	ids := make([]string, 0, len(c.Plans))
	for _, p := range c.Plans {
		ids = append(ids, p.ID)
	}
	return ids
}

func (c *Config) HourlyServiceIDs() []string {
	ids := make([]string, 0, len(c.HourlyServices))
	for _, s := range c.HourlyServices {
		ids = append(ids, s.ID)
	}
	return ids
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// modeEnv resolves a key suffixed by the active Stripe mode, e.g.
// STRIPE_SECRET_KEY_TEST vs STRIPE_SECRET_KEY_LIVE.
func modeEnv(mode, key string) string {
	if mode == "live" {
		return os.Getenv(key + "_LIVE")
	}
	return os.Getenv(key + "_TEST")
}
