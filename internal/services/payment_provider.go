// internal/services/payment_provider.go
package services

import (
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/bazarcheck/bazarcheck-backend/internal/config"
)

// PaymentIntentResult carries the fields the client needs to confirm the
// charge on its side.
type PaymentIntentResult struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// PaymentProvider is the seam to the external payment processor. Amounts are
// integer minor units; the provider is called at most once per request, with
// no retry on failure.
type PaymentProvider interface {
	CreateIntent(amount int64, currency string, metadata map[string]string) (*PaymentIntentResult, error)
}

type stripeProvider struct {
	currency string
}

func NewStripeProvider(cfg config.PaymentConfig) PaymentProvider {
	stripe.Key = cfg.StripeSecretKey
	return &stripeProvider{currency: cfg.Currency}
}

func (p *stripeProvider) CreateIntent(amount int64, currency string, metadata map[string]string) (*PaymentIntentResult, error) {
	if currency == "" {
		currency = p.currency
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for key, value := range metadata {
		params.AddMetadata(key, value)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, err
	}

	return &PaymentIntentResult{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     string(intent.Currency),
	}, nil
}
