package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// GatewayConfig holds the payment provider credentials and endpoint.
type GatewayConfig struct {
	AppID   string
	Secret  string
	BaseURL string

	// FrontendURL hosts the checkout page users are redirected to.
	FrontendURL string
}

// CustomerDetails identifies the paying user to the provider.
type CustomerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

// CheckoutSession is the provider's handle for a hosted checkout.
type CheckoutSession struct {
	OrderID          string `json:"order_id"`
	PaymentSessionID string `json:"payment_session_id"`
}

// PaymentResult is one payment attempt reported by the provider's
// order/payments endpoint.
type PaymentResult struct {
	PaymentStatus string  `json:"payment_status"`
	TransactionID string  `json:"cf_payment_id"`
	Amount        float64 `json:"payment_amount"`
}

// GatewayClient talks to the payment provider's REST API.
type GatewayClient struct {
	config     GatewayConfig
	httpClient *http.Client
}

// NewGatewayClient builds a provider client with a pooled HTTP transport.
func NewGatewayClient(config GatewayConfig) *GatewayClient {
	httpClient := &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 20,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Timeout: 30 * time.Second,
	}

	return &GatewayClient{
		config:     config,
		httpClient: httpClient,
	}
}

// Config returns the client's configuration.
func (gc *GatewayClient) Config() GatewayConfig {
	return gc.config
}

// CreateOrder opens a hosted checkout session scoped to orderID. The
// provider calls notifyURL when the payment settles and sends the user back
// to returnURL after checkout.
func (gc *GatewayClient) CreateOrder(orderID string, amount float64, customer CustomerDetails, returnURL, notifyURL string) (*CheckoutSession, error) {
	payload := map[string]interface{}{
		"order_id":         orderID,
		"order_amount":     amount,
		"order_currency":   "INR",
		"customer_details": customer,
		"order_meta": map[string]string{
			"return_url": returnURL,
			"notify_url": notifyURL,
		},
	}

	body, err := gc.post("/pg/orders", payload)
	if err != nil {
		return nil, err
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %v", err)
	}
	if session.PaymentSessionID == "" {
		return nil, fmt.Errorf("provider returned no payment session for order %s", orderID)
	}

	return &session, nil
}

// GetOrderPayments queries the provider for the payments recorded against
// an order. Used by the client-poll status view; the webhook remains the
// authoritative path.
func (gc *GatewayClient) GetOrderPayments(orderID string) ([]PaymentResult, error) {
	endpoint := fmt.Sprintf("%s/pg/orders/%s/payments", gc.config.BaseURL, url.PathEscape(orderID))
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	gc.setAuthHeaders(req)

	resp, err := gc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider returned %d: %s", resp.StatusCode, providerMessage(body))
	}

	var payments []PaymentResult
	if err := json.Unmarshal(body, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %v", err)
	}

	return payments, nil
}

// CheckoutURL builds the hosted checkout link for a session. Encoded into
// the QR code handed to kiosk/poster flows.
func (gc *GatewayClient) CheckoutURL(orderID, sessionID string) string {
	return fmt.Sprintf("%s/checkout?order_id=%s&session_id=%s",
		gc.config.FrontendURL, url.QueryEscape(orderID), url.QueryEscape(sessionID))
}

func (gc *GatewayClient) post(path string, payload interface{}) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, gc.config.BaseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	gc.setAuthHeaders(req)

	resp, err := gc.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider returned %d: %s", resp.StatusCode, providerMessage(body))
	}

	return body, nil
}

func (gc *GatewayClient) setAuthHeaders(req *http.Request) {
	req.Header.Set("x-client-id", gc.config.AppID)
	req.Header.Set("x-client-secret", gc.config.Secret)
}

// providerMessage pulls the human-readable message out of a provider error
// body, falling back to the raw body.
func providerMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return string(body)
}
