package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentGateway_CreatePaymentForwardsReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/create_payment.php", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "order-1", body["unique_id"])
		assert.Equal(t, "1000", body["amount"])

		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, `{"status":"ok","payment_link":"https://pay.example/x"}`)
	}))
	defer server.Close()

	gw := NewPaymentGateway(server.URL, "secret-token", 5*time.Second)
	resp, err := gw.CreatePayment(context.Background(), map[string]any{"unique_id": "order-1", "amount": "1000", "mobile": "9876543210"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "https://pay.example/x", PaymentLink(resp.Body))
}

func TestPaymentGateway_WrapsNonJSONReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/check_utr.php", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "UTR not found")
	}))
	defer server.Close()

	gw := NewPaymentGateway(server.URL, "secret-token", 5*time.Second)
	resp, err := gw.CheckPayment(context.Background(), map[string]any{"unique_id": "order-1", "utr": "123456789012"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"response":"UTR not found"}`, string(resp.Body))
}

func TestPaymentGateway_MissingTokenSkipsNetwork(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	gw := NewPaymentGateway(server.URL, "", 5*time.Second)
	_, err := gw.CreatePayment(context.Background(), map[string]any{"unique_id": "order-1"})
	assert.ErrorIs(t, err, ErrPaymentNotConfigured)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestPaymentGateway_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	gw := NewPaymentGateway(url, "secret-token", time.Second)
	_, err := gw.CreatePayment(context.Background(), map[string]any{"unique_id": "order-1"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestPaymentLink(t *testing.T) {
	assert.Equal(t, "https://a", PaymentLink(json.RawMessage(`{"paymentLink":"https://a"}`)))
	assert.Equal(t, "https://b", PaymentLink(json.RawMessage(`{"data":{"payment_url":"https://b"}}`)))
	assert.Empty(t, PaymentLink(json.RawMessage(`{"status":"failed"}`)))
	assert.Empty(t, PaymentLink(json.RawMessage(`[1,2]`)))
}
