package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/interfaces"
	er "github.com/ruachost/domainstack/internal/errors"
	"github.com/ruachost/domainstack/internal/tracing"
)

const paystackSignatureHeader = "x-paystack-signature"

type WebhooksHandler struct {
	paystackService interfaces.PaystackService
	orderService    interfaces.OrderService
}

func NewWebhooksHandler(paystackService interfaces.PaystackService, orderService interfaces.OrderService) *WebhooksHandler {
	return &WebhooksHandler{
		paystackService: paystackService,
		orderService:    orderService,
	}
}

// PaystackWebhook consumes signed Paystack events. On charge.success it
// places the order carried in the event metadata.
func (h *WebhooksHandler) PaystackWebhook() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "PaystackWebhook")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		// the signature covers the raw body, read it before any decoding
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
			return
		}

		signature := c.GetHeader(paystackSignatureHeader)
		if signature == "" {
			tracing.TraceErr(span, er.ErrSignatureMissing)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing signature"})
			return
		}
		if !h.paystackService.ValidateWebhookSignature(body, signature) {
			tracing.TraceErr(span, er.ErrSignatureInvalid)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid signature"})
			return
		}

		var event dto.PaystackWebhookEvent
		if err := json.Unmarshal(body, &event); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid payload"})
			return
		}
		span.LogKV("event", event.Event)

		if event.Event == "charge.success" {
			metadata := event.Data.Metadata
			if metadata != nil && metadata.Customer != nil && len(metadata.Domains) > 0 {
				_, err := h.orderService.CreateOrder(ctx, &dto.CreateOrderRequest{
					Customer:  metadata.Customer,
					Domains:   metadata.Domains,
					Reference: event.Data.Reference,
					Amount:    float64(event.Data.Amount) / 100,
					Paid:      true,
				})
				if err != nil {
					tracing.TraceErr(span, err)
					c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create order"})
					return
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
