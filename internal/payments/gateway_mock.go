package payments

import (
	"fmt"
	"sync/atomic"
)

// MockGateway is an in-memory Gateway for tests and local development. When
// Secret is set, VerifyPayment performs the real Razorpay-style HMAC check
// against it; otherwise it returns Valid as-is.
type MockGateway struct {
	MethodName string
	KeyID      string
	Secret     string
	Valid      bool
	FailCreate bool

	counter atomic.Int64
}

// NewMockGateway creates a MockGateway answering for the given method tag.
func NewMockGateway(method string) *MockGateway {
	return &MockGateway{MethodName: method, KeyID: "key_mock", Valid: true}
}

// Method returns the configured payment method tag.
func (g *MockGateway) Method() string {
	return g.MethodName
}

// CreateIntent fabricates a deterministic order id without any network call.
func (g *MockGateway) CreateIntent(req IntentRequest) (*ClientData, error) {
	if g.FailCreate {
		return nil, fmt.Errorf("mock gateway: intent creation failed")
	}
	n := g.counter.Add(1)
	return &ClientData{
		OrderID:      fmt.Sprintf("order_mock_%d", n),
		ClientSecret: fmt.Sprintf("pi_mock_%d_secret", n),
		Amount:       float64(req.AmountMinor) / 100,
		Currency:     req.Currency,
		KeyID:        g.KeyID,
	}, nil
}

// VerifyPayment checks the HMAC signature when a secret is configured,
// otherwise answers with the preset Valid flag.
func (g *MockGateway) VerifyPayment(req VerifyRequest) (bool, error) {
	if g.Secret != "" {
		return VerifySignature(req.OrderID, req.PaymentID, req.Signature, g.Secret), nil
	}
	return g.Valid, nil
}
