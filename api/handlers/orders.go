package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/interfaces"
	"github.com/ruachost/domainstack/internal/enum"
	er "github.com/ruachost/domainstack/internal/errors"
	"github.com/ruachost/domainstack/internal/models"
	"github.com/ruachost/domainstack/internal/repository"
	"github.com/ruachost/domainstack/internal/tracing"
)

type OrdersHandler struct {
	orderService    interfaces.OrderService
	orderRepository repository.OrderRepository
}

func NewOrdersHandler(orderService interfaces.OrderService, repos *repository.Repositories) *OrdersHandler {
	return &OrdersHandler{
		orderService:    orderService,
		orderRepository: repos.OrderRepository,
	}
}

// CreateOrder registers the customer in WHMCS when needed and places a
// domain order on their behalf.
func (h *OrdersHandler) CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "CreateOrder")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var req dto.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		result, err := h.orderService.CreateOrder(ctx, &req)
		if err != nil {
			tracing.TraceErr(span, err)
			if er.IsValidationError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    result,
		})
	}
}

// ListRecentOrders returns the latest persisted orders. Internal use only,
// the route sits behind the API key middleware.
func (h *OrdersHandler) ListRecentOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "ListRecentOrders")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		limit := 50
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 500 {
				tracing.TraceErr(span, err)
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid limit parameter"})
				return
			}
			limit = parsed
		}

		var orders []models.Order
		var err error
		if raw := c.Query("status"); raw != "" {
			orders, err = h.orderRepository.GetOrdersByStatus(ctx, enum.GetOrderStatus(raw))
		} else {
			orders, err = h.orderRepository.GetRecentOrders(ctx, limit)
		}
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to list orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    orders,
		})
	}
}
