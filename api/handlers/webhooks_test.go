package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/internal/config"
	"github.com/ruachost/domainstack/services/paystack"
)

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) CreateOrder(ctx context.Context, request *dto.CreateOrderRequest) (*dto.CreateOrderResult, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreateOrderResult), args.Error(1)
}

func (m *mockOrderService) MarkOrderPaid(ctx context.Context, reference string) error {
	args := m.Called(ctx, reference)
	return args.Error(0)
}

func (m *mockOrderService) ReconcilePendingPayments(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

const webhookSecret = "whsec_test"

func signPaystackBody(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func newWebhookRouter(orders *mockOrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	paystackService := paystack.NewPaystackService(&config.PaystackConfig{
		WebhookSecret: webhookSecret,
		Currency:      "NGN",
	})
	handler := NewWebhooksHandler(paystackService, orders)

	router := gin.New()
	router.POST("/api/webhooks/paystack", handler.PaystackWebhook())
	return router
}

func postWebhook(router *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/paystack", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("x-paystack-signature", signature)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestPaystackWebhook_MissingSignature(t *testing.T) {
	router := newWebhookRouter(new(mockOrderService))

	w := postWebhook(router, []byte(`{}`), "")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing signature")
}

func TestPaystackWebhook_InvalidSignature(t *testing.T) {
	router := newWebhookRouter(new(mockOrderService))

	w := postWebhook(router, []byte(`{}`), "deadbeef")

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid signature")
}

func TestPaystackWebhook_ChargeSuccessCreatesPaidOrder(t *testing.T) {
	// Arrange
	orders := new(mockOrderService)
	var captured *dto.CreateOrderRequest
	orders.On("CreateOrder", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*dto.CreateOrderRequest)
	}).Return(&dto.CreateOrderResult{OrderID: "9001"}, nil)
	router := newWebhookRouter(orders)

	body := []byte(`{
		"event": "charge.success",
		"data": {
			"reference": "ref-1",
			"status": "success",
			"amount": 550050,
			"metadata": {
				"customer": {"firstName": "Jane", "lastName": "Doe", "email": "jane@example.com"},
				"domains": [{"name": "example.com", "domaintype": "register", "regperiod": 1}]
			}
		}
	}`)

	// Act
	w := postWebhook(router, body, signPaystackBody(webhookSecret, body))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	orders.AssertExpectations(t)
	require.NotNil(t, captured)
	assert.True(t, captured.Paid)
	assert.Equal(t, "ref-1", captured.Reference)
	assert.Equal(t, 5500.50, captured.Amount)
	assert.Equal(t, "jane@example.com", captured.Customer.Email)
	require.Len(t, captured.Domains, 1)
	assert.Equal(t, "example.com", captured.Domains[0].Name)
}

func TestPaystackWebhook_ChargeSuccessWithoutMetadata(t *testing.T) {
	orders := new(mockOrderService)
	router := newWebhookRouter(orders)

	body := []byte(`{"event": "charge.success", "data": {"reference": "ref-1", "status": "success", "amount": 550050}}`)

	w := postWebhook(router, body, signPaystackBody(webhookSecret, body))

	require.Equal(t, http.StatusOK, w.Code)
	orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestPaystackWebhook_IgnoresOtherEvents(t *testing.T) {
	orders := new(mockOrderService)
	router := newWebhookRouter(orders)

	body := []byte(`{"event": "transfer.success", "data": {"reference": "ref-1"}}`)

	w := postWebhook(router, body, signPaystackBody(webhookSecret, body))

	require.Equal(t, http.StatusOK, w.Code)
	orders.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestPaystackWebhook_OrderCreationFailure(t *testing.T) {
	orders := new(mockOrderService)
	orders.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, assert.AnError)
	router := newWebhookRouter(orders)

	body := []byte(`{
		"event": "charge.success",
		"data": {
			"reference": "ref-1",
			"amount": 550050,
			"metadata": {
				"customer": {"email": "jane@example.com"},
				"domains": [{"name": "example.com"}]
			}
		}
	}`)

	w := postWebhook(router, body, signPaystackBody(webhookSecret, body))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to create order")
}
