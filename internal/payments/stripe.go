package payments

import (
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v78"
	stripeclient "github.com/stripe/stripe-go/v78/client"

	"zipmyproject/internal/models"
)

// StripeGateway creates Stripe payment intents and verifies completion by
// re-fetching the intent from Stripe. Verification trusts Stripe's
// server-side status, never a client-supplied flag.
type StripeGateway struct {
	api *stripeclient.API
}

// NewStripeGateway creates a new StripeGateway with its own API client, so
// tests and multiple gateways never share global key state.
func NewStripeGateway(secretKey string) *StripeGateway {
	return NewStripeGatewayWithBackends(secretKey, nil)
}

// NewStripeGatewayWithBackends creates a StripeGateway over custom backends,
// letting tests point the API client at a local server.
func NewStripeGatewayWithBackends(secretKey string, backends *stripe.Backends) *StripeGateway {
	api := &stripeclient.API{}
	api.Init(secretKey, backends)
	return &StripeGateway{api: api}
}

// Method returns the payment method tag this gateway serves.
func (g *StripeGateway) Method() string {
	return models.PaymentMethodStripe
}

// CreateIntent opens a Stripe payment intent for the requested amount, with
// project and user identifiers attached as metadata.
func (g *StripeGateway) CreateIntent(req IntentRequest) (*ClientData, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountMinor),
		Currency: stripe.String(strings.ToLower(req.Currency)),
	}
	params.AddMetadata("projectId", req.ProjectID)
	params.AddMetadata("userId", req.UserID)
	params.AddMetadata("projectTitle", req.ProjectTitle)

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe payment intent: %w", err)
	}

	return &ClientData{
		ClientSecret: intent.ClientSecret,
		Amount:       float64(req.AmountMinor) / 100,
		Currency:     strings.ToUpper(req.Currency),
	}, nil
}

// VerifyPayment re-fetches the payment intent by ID and accepts it only when
// Stripe reports the charge succeeded. A fetch failure counts as a failed
// verification, not an internal error, matching the checkout flow's
// indistinguishable-failure contract.
func (g *StripeGateway) VerifyPayment(req VerifyRequest) (bool, error) {
	intent, err := g.api.PaymentIntents.Get(req.PaymentID, nil)
	if err != nil {
		return false, nil
	}
	return intent.Status == stripe.PaymentIntentStatusSucceeded, nil
}
