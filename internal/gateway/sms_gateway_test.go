package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMSSender_SendOTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		q := r.URL.Query()
		assert.Equal(t, "sms-key", q.Get("key"))
		assert.Equal(t, "9876543210", q.Get("mobile"))
		assert.Equal(t, "123456", q.Get("otp"))
		_, _ = io.WriteString(w, "Message Submitted")
	}))
	defer server.Close()

	sender := NewSMSSender(server.URL+"/panel/api/bulksms/", "sms-key", 5*time.Second)
	reply, err := sender.SendOTP(context.Background(), "9876543210", "123456")
	require.NoError(t, err)
	assert.Equal(t, "Message Submitted", reply)
}

func TestSMSSender_Failures(t *testing.T) {
	_, err := NewSMSSender("http://127.0.0.1:1/", "", time.Second).SendOTP(context.Background(), "9876543210", "123456")
	assert.ErrorIs(t, err, ErrSMSNotConfigured)

	for _, status := range []int{http.StatusServiceUnavailable, http.StatusUnauthorized, http.StatusBadRequest} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, "Invalid API key")
		}))

		_, err = NewSMSSender(server.URL, "sms-key", time.Second).SendOTP(context.Background(), "9876543210", "123456")
		assert.ErrorIs(t, err, ErrProviderUnavailable, "status %d", status)
		server.Close()
	}
}
