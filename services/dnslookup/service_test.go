package dnslookup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/interfaces"
	"github.com/ruachost/domainstack/internal/config"
)

// fakeResolver serves canned Google DoH JSON responses keyed by record type
func fakeResolver(t *testing.T, answers map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		recordType := r.URL.Query().Get("type")
		body, ok := answers[recordType]
		if !ok {
			body = `{"Status": 0, "Answer": []}`
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
}

func newTestService(resolverURL string) interfaces.DNSLookupService {
	return NewDNSLookupService(&config.DNSConfig{
		ResolverURL: resolverURL,
		TimeoutSec:  2,
	})
}

func TestResolve(t *testing.T) {
	server := fakeResolver(t, map[string]string{
		"NS": `{"Status": 0, "Answer": [
			{"name": "example.com.", "type": 2, "TTL": 3600, "data": "nsa.ruachost.com."},
			{"name": "example.com.", "type": 2, "TTL": 3600, "data": "nsb.ruachost.com."}
		]}`,
	})
	defer server.Close()

	svc := newTestService(server.URL)

	records := svc.Resolve(context.Background(), "example.com", interfaces.DNSRecordTypeNS)

	assert.Equal(t, []dto.DNSRecord{
		{Name: "example.com.", Value: "nsa.ruachost.com."},
		{Name: "example.com.", Value: "nsb.ruachost.com."},
	}, records)
}

func TestResolve_NoAnswer(t *testing.T) {
	server := fakeResolver(t, nil)
	defer server.Close()

	svc := newTestService(server.URL)

	records := svc.Resolve(context.Background(), "example.com", interfaces.DNSRecordTypeA)

	assert.Empty(t, records)
}

func TestResolve_ResolverFailureDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestService(server.URL)

	records := svc.Resolve(context.Background(), "example.com", interfaces.DNSRecordTypeA)

	assert.Empty(t, records)
}

func TestResolve_UnreachableResolverDegradesToEmpty(t *testing.T) {
	svc := newTestService("http://127.0.0.1:1")

	records := svc.Resolve(context.Background(), "example.com", interfaces.DNSRecordTypeA)

	assert.Empty(t, records)
}

func TestSnapshot(t *testing.T) {
	server := fakeResolver(t, map[string]string{
		"NS": `{"Status": 0, "Answer": [
			{"name": "example.com.", "type": 2, "TTL": 3600, "data": "nsa.ruachost.com."}
		]}`,
		"A": `{"Status": 0, "Answer": [
			{"name": "example.com.", "type": 1, "TTL": 300, "data": "185.199.108.153"}
		]}`,
		"CNAME": `{"Status": 0, "Answer": [
			{"name": "www.example.com.", "type": 5, "TTL": 300, "data": "sites.ruachost.com."}
		]}`,
	})
	defer server.Close()

	svc := newTestService(server.URL)

	snapshot := svc.Snapshot(context.Background(), "example.com")

	assert.Equal(t, []string{"nsa.ruachost.com."}, snapshot.Nameservers)
	assert.Equal(t, []dto.DNSRecord{{Name: "example.com.", Value: "185.199.108.153"}}, snapshot.ARecords)
	assert.Equal(t, []dto.DNSRecord{{Name: "www.example.com.", Value: "sites.ruachost.com."}}, snapshot.CnameRecords)
	assert.False(t, snapshot.Timestamp.IsZero())
	assert.Empty(t, snapshot.Error)
}

func TestSnapshot_CancelledContextSetsError(t *testing.T) {
	server := fakeResolver(t, nil)
	defer server.Close()

	svc := newTestService(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snapshot := svc.Snapshot(ctx, "example.com")

	assert.NotEmpty(t, snapshot.Error)
	assert.Empty(t, snapshot.Nameservers)
}

func TestListRecords(t *testing.T) {
	server := fakeResolver(t, map[string]string{
		"A": `{"Status": 0, "Answer": [
			{"name": "example.com.", "type": 1, "TTL": 300, "data": "185.199.108.153"}
		]}`,
		"MX": `{"Status": 0, "Answer": [
			{"name": "example.com.", "type": 15, "TTL": 3600, "data": "10 mail.example.com."}
		]}`,
	})
	defer server.Close()

	svc := newTestService(server.URL)

	records := svc.ListRecords(context.Background(), "example.com")

	assert.Equal(t, []dto.TypedDNSRecord{
		{Type: "A", Name: "example.com.", Value: "185.199.108.153", TTL: 300},
		{Type: "MX", Name: "example.com.", Value: "10 mail.example.com.", TTL: 3600},
	}, records)
}
