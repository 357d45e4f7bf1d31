package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"

	"zipmyproject/internal/models"
)

// RazorpayGateway creates Razorpay orders and verifies their checkout
// signatures locally with the shared key secret.
type RazorpayGateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

// NewRazorpayGateway creates a new RazorpayGateway.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// Method returns the payment method tag this gateway serves.
func (g *RazorpayGateway) Method() string {
	return models.PaymentMethodRazorpay
}

// CreateIntent creates a Razorpay order for the requested amount. The order
// carries project and user identifiers in its notes so a charge can be traced
// back without any local record of the attempt.
func (g *RazorpayGateway) CreateIntent(req IntentRequest) (*ClientData, error) {
	data := map[string]interface{}{
		"amount":   req.AmountMinor,
		"currency": req.Currency,
		"receipt":  fmt.Sprintf("order_%d", time.Now().UnixMilli()),
		"notes": map[string]interface{}{
			"projectId":    req.ProjectID,
			"userId":       req.UserID,
			"projectTitle": req.ProjectTitle,
		},
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok {
		return nil, fmt.Errorf("razorpay order response missing id")
	}

	return &ClientData{
		OrderID:  orderID,
		Amount:   float64(req.AmountMinor) / 100,
		Currency: req.Currency,
		KeyID:    g.keyID,
	}, nil
}

// VerifyPayment recomputes the checkout signature over "orderId|paymentId"
// and compares it to the client-supplied one.
func (g *RazorpayGateway) VerifyPayment(req VerifyRequest) (bool, error) {
	return VerifySignature(req.OrderID, req.PaymentID, req.Signature, g.keySecret), nil
}

// VerifySignature checks a Razorpay checkout signature: HMAC-SHA256 over
// orderID + "|" + paymentID keyed with the key secret, hex encoded. The
// comparison is constant time.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
