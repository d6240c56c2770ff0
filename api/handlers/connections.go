package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/interfaces"
	"github.com/ruachost/domainstack/internal/enum"
	er "github.com/ruachost/domainstack/internal/errors"
	"github.com/ruachost/domainstack/internal/tracing"
	"github.com/ruachost/domainstack/internal/utils"
)

type ConnectionsHandler struct {
	connectionService interfaces.DomainConnectionService
}

func NewConnectionsHandler(connectionService interfaces.DomainConnectionService) *ConnectionsHandler {
	return &ConnectionsHandler{
		connectionService: connectionService,
	}
}

// ConnectDomain evaluates a customer domain against the platform DNS targets
// and returns setup instructions plus the current connection state.
func (h *ConnectionsHandler) ConnectDomain() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "ConnectDomain")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var req dto.ConnectDomainRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		if req.Domain == "" {
			tracing.TraceErr(span, er.ErrDomainRequired)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Domain is required"})
			return
		}

		domain := utils.NormalizeDomain(req.Domain)
		if !utils.IsValidDomain(domain) {
			tracing.TraceErr(span, er.ErrDomainInvalid)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid domain name"})
			return
		}
		tracing.TagDomain(span, domain)

		result := h.connectionService.Connect(ctx, domain, enum.GetServiceType(req.ServiceType))
		c.JSON(http.StatusOK, result)
	}
}

// VerifyDomain re-checks the live DNS state of a domain and reports whether
// it points at the platform yet.
func (h *ConnectionsHandler) VerifyDomain() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "VerifyDomain")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		domain := c.Query("domain")
		if domain == "" {
			tracing.TraceErr(span, er.ErrDomainRequired)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Domain parameter is required"})
			return
		}

		domain = utils.NormalizeDomain(domain)
		tracing.TagDomain(span, domain)

		status, snapshot := h.connectionService.Verify(ctx, domain)
		if status == enum.VerificationStatusFailed {
			c.JSON(http.StatusInternalServerError, dto.VerifyDomainResponse{
				Success: false,
				Status:  status,
				Domain:  domain,
				Error:   "Failed to verify domain",
			})
			return
		}

		c.JSON(http.StatusOK, dto.VerifyDomainResponse{
			Success:   true,
			Status:    status,
			Domain:    domain,
			DNSStatus: snapshot,
		})
	}
}
