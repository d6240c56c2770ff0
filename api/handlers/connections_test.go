package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/internal/enum"
)

type stubConnectionService struct {
	result       *dto.ConnectionResult
	status       enum.VerificationStatus
	snapshot     *dto.DNSSnapshot
	gotDomain    string
	gotService   enum.ServiceType
	verifyDomain string
}

func (s *stubConnectionService) Connect(ctx context.Context, domain string, serviceType enum.ServiceType) *dto.ConnectionResult {
	s.gotDomain = domain
	s.gotService = serviceType
	return s.result
}

func (s *stubConnectionService) Verify(ctx context.Context, domain string) (enum.VerificationStatus, *dto.DNSSnapshot) {
	s.verifyDomain = domain
	return s.status, s.snapshot
}

func newConnectionsRouter(stub *stubConnectionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewConnectionsHandler(stub)

	router := gin.New()
	router.POST("/api/connect-domain", handler.ConnectDomain())
	router.GET("/api/verify-domain", handler.VerifyDomain())
	return router
}

func TestConnectDomain(t *testing.T) {
	stub := &stubConnectionService{
		result: &dto.ConnectionResult{
			Success:            true,
			Domain:             "example.com",
			VerificationStatus: enum.VerificationStatusPending,
			Instructions:       []string{"1. Log in to your domain registrar"},
		},
	}
	router := newConnectionsRouter(stub)

	body := []byte(`{"domain": "Example.com", "serviceType": "website_builder"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/connect-domain", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "example.com", stub.gotDomain)
	assert.Equal(t, enum.ServiceTypeWebsiteBuilder, stub.gotService)

	var result dto.ConnectionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, enum.VerificationStatusPending, result.VerificationStatus)
}

func TestConnectDomain_MissingDomain(t *testing.T) {
	router := newConnectionsRouter(&stubConnectionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/connect-domain", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Domain is required")
}

func TestConnectDomain_InvalidDomain(t *testing.T) {
	router := newConnectionsRouter(&stubConnectionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/connect-domain", bytes.NewReader([]byte(`{"domain": "not a domain"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid domain name")
}

func TestVerifyDomain(t *testing.T) {
	stub := &stubConnectionService{
		status: enum.VerificationStatusVerified,
		snapshot: &dto.DNSSnapshot{
			Nameservers: []string{"nsa.ruachost.com."},
		},
	}
	router := newConnectionsRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/verify-domain?domain=example.com", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "example.com", stub.verifyDomain)

	var resp dto.VerifyDomainResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, enum.VerificationStatusVerified, resp.Status)
	require.NotNil(t, resp.DNSStatus)
	assert.Equal(t, []string{"nsa.ruachost.com."}, resp.DNSStatus.Nameservers)
}

func TestVerifyDomain_MissingDomain(t *testing.T) {
	router := newConnectionsRouter(&stubConnectionService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/verify-domain", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Domain parameter is required")
}

func TestVerifyDomain_Failed(t *testing.T) {
	stub := &stubConnectionService{
		status: enum.VerificationStatusFailed,
	}
	router := newConnectionsRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/verify-domain?domain=example.com", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.VerifyDomainResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, enum.VerificationStatusFailed, resp.Status)
}
