package payments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRazorpayGateway_CreateIntent(t *testing.T) {
	var payload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.True(t, strings.HasSuffix(r.URL.Path, "/orders"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":       "order_fake_1",
			"amount":   payload["amount"],
			"currency": payload["currency"],
			"status":   "created",
		})
	}))
	defer server.Close()

	gateway := NewRazorpayGateway("rzp_test_key", "rzp_test_secret")
	gateway.client.Order.Request.BaseURL = server.URL

	data, err := gateway.CreateIntent(IntentRequest{
		AmountMinor:  299900,
		Currency:     "INR",
		ProjectID:    "proj-1",
		ProjectTitle: "Library Management System",
		UserID:       "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "order_fake_1", data.OrderID)
	assert.Equal(t, 2999.0, data.Amount)
	assert.Equal(t, "INR", data.Currency)
	assert.Equal(t, "rzp_test_key", data.KeyID)

	// The order carries the amount in paise, a timestamped receipt, and the
	// purchase identifiers as notes.
	assert.Equal(t, float64(299900), payload["amount"])
	assert.Equal(t, "INR", payload["currency"])
	receipt, _ := payload["receipt"].(string)
	assert.True(t, strings.HasPrefix(receipt, "order_"))
	assert.Greater(t, len(receipt), len("order_"))
	notes, ok := payload["notes"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "proj-1", notes["projectId"])
	assert.Equal(t, "user-1", notes["userId"])
	assert.Equal(t, "Library Management System", notes["projectTitle"])
}

func TestRazorpayGateway_CreateIntentMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "created"})
	}))
	defer server.Close()

	gateway := NewRazorpayGateway("rzp_test_key", "rzp_test_secret")
	gateway.client.Order.Request.BaseURL = server.URL

	_, err := gateway.CreateIntent(IntentRequest{AmountMinor: 100, Currency: "INR"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}
