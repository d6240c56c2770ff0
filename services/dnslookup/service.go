package dnslookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/interfaces"
	"github.com/ruachost/domainstack/internal/config"
	"github.com/ruachost/domainstack/internal/tracing"
	"github.com/ruachost/domainstack/internal/utils"
)

// Google public resolver JSON API: https://developers.google.com/speed/public-dns/docs/doh/json
type dnsLookupService struct {
	cfg        *config.DNSConfig
	httpClient *http.Client
}

func NewDNSLookupService(cfg *config.DNSConfig) interfaces.DNSLookupService {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &dnsLookupService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type resolveResponse struct {
	Status int             `json:"Status"`
	Answer []resolveAnswer `json:"Answer"`
}

type resolveAnswer struct {
	Name string `json:"name"`
	Type int    `json:"type"`
	TTL  uint32 `json:"TTL"`
	Data string `json:"data"`
}

func (s *dnsLookupService) Resolve(ctx context.Context, domain string, recordType interfaces.DNSRecordType) []dto.DNSRecord {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DNSLookupService.Resolve")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagDomain(span, domain)
	span.LogKV("recordType", string(recordType))

	answers, err := s.lookup(ctx, domain, recordType)
	if err != nil {
		// best effort: a failed lookup degrades to an empty record set
		tracing.TraceErr(span, err)
		return []dto.DNSRecord{}
	}

	records := make([]dto.DNSRecord, 0, len(answers))
	for _, answer := range answers {
		records = append(records, dto.DNSRecord{
			Name:  answer.Name,
			Value: answer.Data,
		})
	}

	span.LogFields(tracingLog.Int("result.records", len(records)))
	return records
}

func (s *dnsLookupService) Snapshot(ctx context.Context, domain string) *dto.DNSSnapshot {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DNSLookupService.Snapshot")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagDomain(span, domain)

	snapshot := &dto.DNSSnapshot{
		Timestamp: utils.Now(),
	}

	// The three lookups are independent, one slow or failing query must not
	// block or fail the others.
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		records := s.Resolve(ctx, domain, interfaces.DNSRecordTypeNS)
		nameservers := make([]string, 0, len(records))
		for _, record := range records {
			nameservers = append(nameservers, record.Value)
		}
		snapshot.Nameservers = nameservers
	}()
	go func() {
		defer wg.Done()
		snapshot.ARecords = s.Resolve(ctx, domain, interfaces.DNSRecordTypeA)
	}()
	go func() {
		defer wg.Done()
		snapshot.CnameRecords = s.Resolve(ctx, domain, interfaces.DNSRecordTypeCNAME)
	}()

	wg.Wait()

	if ctx.Err() != nil {
		snapshot.Error = ctx.Err().Error()
	}

	return snapshot
}

func (s *dnsLookupService) ListRecords(ctx context.Context, domain string) []dto.TypedDNSRecord {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DNSLookupService.ListRecords")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagDomain(span, domain)

	records := []dto.TypedDNSRecord{}
	for _, recordType := range []interfaces.DNSRecordType{interfaces.DNSRecordTypeA, interfaces.DNSRecordTypeCNAME, interfaces.DNSRecordTypeMX} {
		answers, err := s.lookup(ctx, domain, recordType)
		if err != nil {
			tracing.TraceErr(span, err)
			continue
		}
		for _, answer := range answers {
			records = append(records, dto.TypedDNSRecord{
				Type:  string(recordType),
				Name:  answer.Name,
				Value: answer.Data,
				TTL:   answer.TTL,
			})
		}
	}

	return records
}

func (s *dnsLookupService) lookup(ctx context.Context, domain string, recordType interfaces.DNSRecordType) ([]resolveAnswer, error) {
	params := url.Values{}
	params.Add("name", domain)
	params.Add("type", string(recordType))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.ResolverURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build resolver request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call dns resolver")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dns resolver returned status %d", resp.StatusCode)
	}

	var result resolveResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrap(err, "failed to parse resolver response")
	}

	return result.Answer, nil
}
