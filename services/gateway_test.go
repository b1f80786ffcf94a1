package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderSendsCredentialsAndParsesSession(t *testing.T) {
	var gotPath, gotClientID, gotSecret string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotClientID = r.Header.Get("x-client-id")
		gotSecret = r.Header.Get("x-client-secret")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"order_id":           "ORD123",
			"payment_session_id": "session_abc",
		})
	}))
	defer server.Close()

	client := NewGatewayClient(GatewayConfig{
		AppID:   "app-id",
		Secret:  "secret-key",
		BaseURL: server.URL,
	})

	session, err := client.CreateOrder("ORD123", 500, CustomerDetails{
		CustomerID:    "user_1",
		CustomerName:  "Alice",
		CustomerEmail: "alice@example.com",
	}, "http://front/return", "http://back/notify")
	require.NoError(t, err)

	assert.Equal(t, "/pg/orders", gotPath)
	assert.Equal(t, "app-id", gotClientID)
	assert.Equal(t, "secret-key", gotSecret)
	assert.Equal(t, "ORD123", gotBody["order_id"])
	assert.Equal(t, 500.0, gotBody["order_amount"])

	meta, ok := gotBody["order_meta"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "http://back/notify", meta["notify_url"])

	assert.Equal(t, "session_abc", session.PaymentSessionID)
}

func TestCreateOrderSurfacesProviderMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))
	defer server.Close()

	client := NewGatewayClient(GatewayConfig{BaseURL: server.URL})

	_, err := client.CreateOrder("ORD1", 100, CustomerDetails{}, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.Contains(t, err.Error(), "401")
}

func TestCreateOrderRejectsMissingSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"order_id": "ORD1"})
	}))
	defer server.Close()

	client := NewGatewayClient(GatewayConfig{BaseURL: server.URL})

	_, err := client.CreateOrder("ORD1", 100, CustomerDetails{}, "", "")
	assert.Error(t, err)
}

func TestGetOrderPaymentsParsesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pg/orders/ORD42/payments", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"payment_status": "SUCCESS", "cf_payment_id": "cf_1", "payment_amount": 250.0},
			{"payment_status": "FAILED", "cf_payment_id": "cf_0", "payment_amount": 250.0},
		})
	}))
	defer server.Close()

	client := NewGatewayClient(GatewayConfig{BaseURL: server.URL})

	payments, err := client.GetOrderPayments("ORD42")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "SUCCESS", payments[0].PaymentStatus)
	assert.Equal(t, "cf_1", payments[0].TransactionID)
	assert.Equal(t, 250.0, payments[0].Amount)
}

func TestCheckoutURLEscapesParams(t *testing.T) {
	client := NewGatewayClient(GatewayConfig{FrontendURL: "http://front.test"})

	url := client.CheckoutURL("ORD 1", "sess/2")
	assert.Equal(t, "http://front.test/checkout?order_id=ORD+1&session_id=sess%2F2", url)
}
