package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrPaymentNotConfigured is returned before any network call when the bearer token is missing.
	ErrPaymentNotConfigured = errors.New("PAYMENT_AUTH_TOKEN is not configured")

	// ErrProviderUnavailable wraps transport failures and unreadable provider replies.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

const (
	createPaymentPath = "/create_payment.php"
	checkPaymentPath  = "/check_utr.php"
)

// ProviderResponse is a provider reply forwarded as-is.
type ProviderResponse struct {
	StatusCode int
	Body       json.RawMessage
}

// PaymentGateway relays booking payments to the external provider. It keeps no state.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, payload map[string]any) (*ProviderResponse, error)
	CheckPayment(ctx context.Context, payload map[string]any) (*ProviderResponse, error)
}

type httpPaymentGateway struct {
	baseURL   string
	authToken string
	client    *http.Client
}

// NewPaymentGateway creates a PaymentGateway talking to baseURL with a bearer token.
// A zero timeout leaves the client default (no timeout).
func NewPaymentGateway(baseURL, authToken string, timeout time.Duration) PaymentGateway {
	return &httpPaymentGateway{
		baseURL:   baseURL,
		authToken: authToken,
		client:    &http.Client{Timeout: timeout},
	}
}

func (g *httpPaymentGateway) CreatePayment(ctx context.Context, payload map[string]any) (*ProviderResponse, error) {
	return g.post(ctx, createPaymentPath, payload)
}

func (g *httpPaymentGateway) CheckPayment(ctx context.Context, payload map[string]any) (*ProviderResponse, error) {
	return g.post(ctx, checkPaymentPath, payload)
}

func (g *httpPaymentGateway) post(ctx context.Context, path string, payload map[string]any) (*ProviderResponse, error) {
	if g.authToken == "" {
		return nil, ErrPaymentNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payment request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.authToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading reply: %v", ErrProviderUnavailable, err)
	}
	return &ProviderResponse{StatusCode: resp.StatusCode, Body: wrapJSON(raw)}, nil
}

// wrapJSON passes JSON through and wraps anything else as {"response": "<text>"}.
func wrapJSON(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	wrapped, _ := json.Marshal(map[string]string{"response": string(trimmed)})
	return wrapped
}

// PaymentLink extracts the payment link from a create reply, if the provider sent one.
func PaymentLink(body json.RawMessage) string {
	var reply map[string]any
	if err := json.Unmarshal(body, &reply); err != nil {
		return ""
	}
	for _, key := range []string{"paymentLink", "payment_link", "payment_url", "url"} {
		if link, ok := reply[key].(string); ok && link != "" {
			return link
		}
	}
	if data, ok := reply["data"].(map[string]any); ok {
		for _, key := range []string{"paymentLink", "payment_link", "payment_url", "url"} {
			if link, ok := data[key].(string); ok && link != "" {
				return link
			}
		}
	}
	return ""
}
