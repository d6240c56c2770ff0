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
	"github.com/ruachost/domainstack/internal/utils"
)

type DomainsHandler struct {
	challengeService interfaces.ChallengeService
	whmcsService     interfaces.WHMCSService
	dnsLookupService interfaces.DNSLookupService
}

func NewDomainsHandler(challengeService interfaces.ChallengeService, whmcsService interfaces.WHMCSService, dnsLookupService interfaces.DNSLookupService) *DomainsHandler {
	return &DomainsHandler{
		challengeService: challengeService,
		whmcsService:     whmcsService,
		dnsLookupService: dnsLookupService,
	}
}

// IssueSearchChallenge hands out a signed arithmetic challenge that the
// subsequent search request must answer.
func (h *DomainsHandler) IssueSearchChallenge() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, _ := opentracing.StartSpanFromContext(c.Request.Context(), "IssueSearchChallenge")
		defer span.Finish()
		tracing.TagComponentRest(span)

		challenge, err := h.challengeService.Issue()
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create challenge"})
			return
		}

		c.JSON(http.StatusOK, challenge)
	}
}

// SearchDomain checks availability and pricing for a domain. The request
// must carry a valid answer to a previously issued challenge.
func (h *DomainsHandler) SearchDomain() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "SearchDomain")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var req dto.DomainSearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.Domain == "" {
			tracing.TraceErr(span, er.ErrDomainRequired)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Domain parameter is required"})
			return
		}
		tracing.TagDomain(span, req.Domain)

		if req.Answer == nil || req.ChallengeID == "" || req.Sig == "" {
			tracing.TraceErr(span, er.ErrChallengeIncomplete)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Challenge validation failed"})
			return
		}
		if !h.challengeService.Verify(*req.Answer, req.ChallengeID, req.Sig) {
			tracing.TraceErr(span, er.ErrChallengeInvalid)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge response"})
			return
		}

		result, err := h.whmcsService.SearchDomain(ctx, utils.NormalizeDomain(req.Domain))
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check domain availability"})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// GetPricing returns renewal pricing for the TLD of the given domain
func (h *DomainsHandler) GetPricing() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "GetPricing")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		domain := c.Query("domain")
		if domain == "" {
			tracing.TraceErr(span, er.ErrDomainRequired)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Domain parameter is required"})
			return
		}

		pricing, err := h.whmcsService.GetTLDPricing(ctx, utils.ExtractTLD(utils.NormalizeDomain(domain)))
		if err != nil {
			tracing.TraceErr(span, err)
			if errors.Is(err, er.ErrPricingNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No pricing data found for this domain"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch domain pricing"})
			return
		}

		price := pricing.RegisterYear
		if pricing.RenewYear != nil {
			price = *pricing.RenewYear
		}
		c.JSON(http.StatusOK, dto.DomainPricing{
			Price:    price,
			Currency: pricing.Currency,
		})
	}
}

// GetDomainStatus returns registration status and expiry for a domain
func (h *DomainsHandler) GetDomainStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "GetDomainStatus")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		domain := c.Query("domain")
		if domain == "" {
			tracing.TraceErr(span, er.ErrDomainRequired)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Domain parameter is required"})
			return
		}
		tracing.TagDomain(span, domain)

		status, err := h.whmcsService.GetDomainStatus(ctx, utils.NormalizeDomain(domain))
		if err != nil {
			tracing.TraceErr(span, err)
			if errors.Is(err, er.ErrDomainNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Domain not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch domain status"})
			return
		}

		c.JSON(http.StatusOK, status)
	}
}

// ListDNSRecords returns the current public DNS records of a domain
func (h *DomainsHandler) ListDNSRecords() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "ListDNSRecords")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		domain := c.Query("domain")
		if domain == "" {
			tracing.TraceErr(span, er.ErrDomainRequired)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Domain parameter is required"})
			return
		}

		domain = utils.NormalizeDomain(domain)
		if !utils.IsValidDomain(domain) {
			tracing.TraceErr(span, er.ErrDomainInvalid)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid domain name"})
			return
		}
		tracing.TagDomain(span, domain)

		records := h.dnsLookupService.ListRecords(ctx, domain)
		c.JSON(http.StatusOK, gin.H{
			"domain":  domain,
			"records": records,
		})
	}
}

type renewDomainRequest struct {
	DomainID  string `json:"domainId"`
	Period    int    `json:"period"`
	AutoRenew bool   `json:"autoRenew"`
}

// RenewDomain places a renewal order for an existing domain
func (h *DomainsHandler) RenewDomain() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "RenewDomain")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var req renewDomainRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.DomainID == "" || req.Period == 0 {
			message := "Domain ID and renewal period are required"
			tracing.TraceErr(span, errors.New(message))
			c.JSON(http.StatusBadRequest, gin.H{"error": message})
			return
		}
		if req.Period < 1 || req.Period > 10 {
			message := "Renewal period must be between 1 and 10 years"
			tracing.TraceErr(span, errors.New(message))
			c.JSON(http.StatusBadRequest, gin.H{"error": message})
			return
		}

		orderID, err := h.whmcsService.RenewDomain(ctx, req.DomainID, req.Period, req.AutoRenew)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to renew domain"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"orderId": orderID,
		})
	}
}
