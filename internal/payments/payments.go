// Package payments wraps the external payment provider. The core only needs
// an opaque client secret back; everything else about the provider is out of
// scope and hidden behind the Provider interface.
package payments

import (
	"context"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"

	"github.com/agoralabs/agora/backend/internal/apperr"
)

type Provider interface {
	// CreateIntent registers a payment of amountCents and returns the
	// client-usable secret for completing it.
	CreateIntent(ctx context.Context, amountCents int64, email, name string) (string, error)
}

type StripeProvider struct{}

func NewStripeProvider(secretKey string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{}
}

func (p *StripeProvider) CreateIntent(_ context.Context, amountCents int64, email, name string) (string, error) {
	intent, err := paymentintent.New(&stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		Metadata: map[string]string{
			"email": email,
			"name":  name,
		},
	})
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "Failed to create payment intent", err)
	}
	return intent.ClientSecret, nil
}
