// Package payments wraps the third-party payment providers behind one
// Gateway interface. Each adapter creates a provider-side payment intent
// before the buyer pays and verifies its completion afterwards; no local
// state is kept for abandoned checkouts.
package payments

// IntentRequest describes the charge to open with a provider. Amount is in
// minor units (paise/cents); the project and user identifiers ride along as
// provider-side metadata for later reconciliation.
type IntentRequest struct {
	AmountMinor  int64
	Currency     string
	ProjectID    string
	ProjectTitle string
	UserID       string
}

// ClientData is what the browser needs to drive the provider's payment UI.
// Razorpay fills OrderID and KeyID; Stripe fills ClientSecret.
type ClientData struct {
	OrderID      string  `json:"orderId,omitempty"`
	ClientSecret string  `json:"clientSecret,omitempty"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	KeyID        string  `json:"keyId,omitempty"`
}

// VerifyRequest carries the client-supplied proof of a completed payment.
// Which fields matter depends on the provider: Razorpay checks the signature
// over OrderID and PaymentID, Stripe re-fetches the intent by PaymentID.
type VerifyRequest struct {
	PaymentID string
	OrderID   string
	Signature string
}

// Gateway is one payment provider. VerifyPayment returns false both for a
// genuinely failed payment and for a tampered request; callers cannot and
// should not distinguish the two.
type Gateway interface {
	Method() string
	CreateIntent(req IntentRequest) (*ClientData, error)
	VerifyPayment(req VerifyRequest) (bool, error)
}
