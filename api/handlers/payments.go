package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/interfaces"
	er "github.com/ruachost/domainstack/internal/errors"
	"github.com/ruachost/domainstack/internal/tracing"
)

type PaymentsHandler struct {
	paystackService interfaces.PaystackService
}

func NewPaymentsHandler(paystackService interfaces.PaystackService) *PaymentsHandler {
	return &PaymentsHandler{
		paystackService: paystackService,
	}
}

// InitializePayment starts a Paystack transaction and returns the checkout
// authorization URL.
func (h *PaymentsHandler) InitializePayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "InitializePayment")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var req dto.InitializePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		if req.Amount <= 0 || req.Email == "" || req.Reference == "" {
			message := "Missing required fields"
			tracing.TraceErr(span, errors.New(message))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
			return
		}
		span.LogKV("reference", req.Reference)

		result, err := h.paystackService.InitializeTransaction(ctx, &req)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to initialize payment"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    result,
		})
	}
}

// VerifyPayment confirms a Paystack transaction by reference
func (h *PaymentsHandler) VerifyPayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "VerifyPayment")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		reference := c.Query("reference")
		if reference == "" {
			message := "Reference is required"
			tracing.TraceErr(span, errors.New(message))
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
			return
		}
		span.LogKV("reference", reference)

		data, err := h.paystackService.VerifyTransaction(ctx, reference)
		if err != nil {
			tracing.TraceErr(span, err)
			if errors.Is(err, er.ErrPaymentFailed) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Payment verification failed"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    data,
		})
	}
}
