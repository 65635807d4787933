package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrSMSNotConfigured is returned before any network call when the API key is missing.
var ErrSMSNotConfigured = errors.New("OTP_API_KEY is not configured")

// SMSSender delivers one-time codes.
type SMSSender interface {
	SendOTP(ctx context.Context, mobile, code string) (string, error)
}

type httpSMSSender struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewSMSSender creates an SMSSender for the bulk-SMS endpoint.
func NewSMSSender(endpoint, apiKey string, timeout time.Duration) SMSSender {
	return &httpSMSSender{endpoint: endpoint, apiKey: apiKey, client: &http.Client{Timeout: timeout}}
}

// SendOTP returns the provider's reply text unchanged. Any non-2xx reply counts as
// a failed delivery.
func (s *httpSMSSender) SendOTP(ctx context.Context, mobile, code string) (string, error) {
	if s.apiKey == "" {
		return "", ErrSMSNotConfigured
	}

	u, err := url.Parse(s.endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing sms endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", s.apiKey)
	q.Set("mobile", mobile)
	q.Set("otp", code)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("building sms request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading sms reply: %v", ErrProviderUnavailable, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: sms provider returned %d", ErrProviderUnavailable, resp.StatusCode)
	}
	return string(body), nil
}
