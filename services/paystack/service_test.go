package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/interfaces"
	"github.com/ruachost/domainstack/internal/config"
	er "github.com/ruachost/domainstack/internal/errors"
)

func newTestService(serverURL string) interfaces.PaystackService {
	return NewPaystackService(&config.PaystackConfig{
		Url:           serverURL,
		SecretKey:     "sk_test_secret",
		WebhookSecret: "whsec_test",
		Currency:      "NGN",
	})
}

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestInitializeTransaction(t *testing.T) {
	// Arrange
	var gotPayload map[string]any
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		fmt.Fprint(w, `{
			"status": true,
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code": "abc123",
				"reference": "ref-1"
			}
		}`)
	}))
	defer server.Close()

	svc := newTestService(server.URL)

	// Act
	result, err := svc.InitializeTransaction(context.Background(), &dto.InitializePaymentRequest{
		Amount:    5500.50,
		Email:     "jane@example.com",
		Reference: "ref-1",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc123", result.AuthorizationURL)
	assert.Equal(t, "abc123", result.AccessCode)
	assert.Equal(t, "ref-1", result.Reference)

	assert.Equal(t, "Bearer sk_test_secret", gotAuth)
	// amount converted to kobo and rounded to an integer
	assert.Equal(t, float64(550050), gotPayload["amount"])
	assert.Equal(t, "NGN", gotPayload["currency"])
}

func TestInitializeTransaction_NotConfigured(t *testing.T) {
	svc := NewPaystackService(&config.PaystackConfig{Url: "http://127.0.0.1:1"})

	_, err := svc.InitializeTransaction(context.Background(), &dto.InitializePaymentRequest{
		Amount:    100,
		Email:     "jane@example.com",
		Reference: "ref-1",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, er.ErrNotConfigured))
}

func TestInitializeTransaction_GatewayRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": false, "message": "Invalid key"}`)
	}))
	defer server.Close()

	svc := newTestService(server.URL)

	_, err := svc.InitializeTransaction(context.Background(), &dto.InitializePaymentRequest{
		Amount:    100,
		Email:     "jane@example.com",
		Reference: "ref-1",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid key")
}

func TestVerifyTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/verify/ref-1", r.URL.Path)
		fmt.Fprint(w, `{
			"status": true,
			"data": {"status": "success", "reference": "ref-1", "amount": 550050, "currency": "NGN"}
		}`)
	}))
	defer server.Close()

	svc := newTestService(server.URL)

	data, err := svc.VerifyTransaction(context.Background(), "ref-1")

	require.NoError(t, err)
	assert.Equal(t, "success", data.Status)
	assert.Equal(t, "ref-1", data.Reference)
	assert.Equal(t, int64(550050), data.Amount)
}

func TestVerifyTransaction_ChargeNotSuccessful(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"status": true,
			"data": {"status": "abandoned", "reference": "ref-1", "amount": 550050, "currency": "NGN"}
		}`)
	}))
	defer server.Close()

	svc := newTestService(server.URL)

	data, err := svc.VerifyTransaction(context.Background(), "ref-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, er.ErrPaymentFailed))
	require.NotNil(t, data)
	assert.Equal(t, "abandoned", data.Status)
}

func TestVerifyTransaction_UnknownReference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": false, "message": "Transaction reference not found"}`)
	}))
	defer server.Close()

	svc := newTestService(server.URL)

	_, err := svc.VerifyTransaction(context.Background(), "missing-ref")

	require.Error(t, err)
	assert.True(t, errors.Is(err, er.ErrPaymentFailed))
}

func TestValidateWebhookSignature(t *testing.T) {
	svc := newTestService("http://unused")
	body := []byte(`{"event":"charge.success","data":{"reference":"ref-1"}}`)

	assert.True(t, svc.ValidateWebhookSignature(body, signBody("whsec_test", body)))
}

func TestValidateWebhookSignature_Invalid(t *testing.T) {
	svc := newTestService("http://unused")
	body := []byte(`{"event":"charge.success"}`)

	assert.False(t, svc.ValidateWebhookSignature(body, signBody("wrong-secret", body)))
	assert.False(t, svc.ValidateWebhookSignature(body, "deadbeef"))
	assert.False(t, svc.ValidateWebhookSignature(body, ""))
}

func TestValidateWebhookSignature_TamperedBody(t *testing.T) {
	svc := newTestService("http://unused")
	body := []byte(`{"event":"charge.success","data":{"amount":550050}}`)
	sig := signBody("whsec_test", body)

	tampered := []byte(`{"event":"charge.success","data":{"amount":1}}`)
	assert.False(t, svc.ValidateWebhookSignature(tampered, sig))
}

func TestValidateWebhookSignature_NoSecretConfigured(t *testing.T) {
	svc := NewPaystackService(&config.PaystackConfig{})
	body := []byte(`{}`)

	assert.False(t, svc.ValidateWebhookSignature(body, signBody("", body)))
}
