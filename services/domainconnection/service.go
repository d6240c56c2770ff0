package domainconnection

import (
	"context"
	"strings"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/interfaces"
	"github.com/ruachost/domainstack/internal/config"
	"github.com/ruachost/domainstack/internal/enum"
	"github.com/ruachost/domainstack/internal/tracing"
)

type domainConnectionService struct {
	platform  *config.PlatformConfig
	dnsLookup interfaces.DNSLookupService
}

func NewDomainConnectionService(platform *config.PlatformConfig, dnsLookup interfaces.DNSLookupService) interfaces.DomainConnectionService {
	return &domainConnectionService{
		platform:  platform,
		dnsLookup: dnsLookup,
	}
}

func (s *domainConnectionService) Connect(ctx context.Context, domain string, serviceType enum.ServiceType) *dto.ConnectionResult {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainConnectionService.Connect")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagDomain(span, domain)
	span.LogKV("serviceType", serviceType.String())

	instructions := generateInstructions(s.platform, domain, serviceType)

	snapshot := s.dnsLookup.Snapshot(ctx, domain)
	if ctx.Err() != nil {
		// the snapshot was cut short, report a failed check rather than a
		// misleading pending one
		tracing.TraceErr(span, ctx.Err())
		return &dto.ConnectionResult{
			Success:            false,
			Domain:             domain,
			Instructions:       []string{},
			VerificationStatus: enum.VerificationStatusFailed,
			Error:              ctx.Err().Error(),
		}
	}

	status := enum.VerificationStatusPending
	if s.isConnected(snapshot) {
		status = enum.VerificationStatusVerified
	}
	span.LogFields(tracingLog.String("result.status", status.String()))

	return &dto.ConnectionResult{
		Success:            true,
		Domain:             domain,
		Nameservers:        instructions.Nameservers,
		ARecords:           instructions.ARecords,
		CnameRecords:       instructions.CnameRecords,
		Instructions:       instructions.Instructions,
		VerificationStatus: status,
		CurrentDNSStatus:   snapshot,
	}
}

func (s *domainConnectionService) Verify(ctx context.Context, domain string) (enum.VerificationStatus, *dto.DNSSnapshot) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainConnectionService.Verify")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagDomain(span, domain)

	snapshot := s.dnsLookup.Snapshot(ctx, domain)
	if ctx.Err() != nil {
		tracing.TraceErr(span, ctx.Err())
		return enum.VerificationStatusFailed, snapshot
	}

	if s.isConnected(snapshot) {
		return enum.VerificationStatusVerified, snapshot
	}
	return enum.VerificationStatusPending, snapshot
}

// isConnected applies the matching predicate: the domain counts as connected
// when ALL platform nameservers are represented in the current NS set, or at
// least one A record hits the platform IP exactly, or at least one CNAME
// points into the platform root domain. Any single match suffices; DNS
// propagation is asynchronous and partial matches during the 24-48h
// transition window are expected.
func (s *domainConnectionService) isConnected(snapshot *dto.DNSSnapshot) bool {
	hasCorrectNameservers := true
	for _, platformNS := range s.platform.Nameservers() {
		found := false
		for _, currentNS := range snapshot.Nameservers {
			if strings.Contains(strings.ToLower(currentNS), strings.ToLower(platformNS)) {
				found = true
				break
			}
		}
		if !found {
			hasCorrectNameservers = false
			break
		}
	}

	hasCorrectARecords := false
	for _, record := range snapshot.ARecords {
		if record.Value == s.platform.IPAddress {
			hasCorrectARecords = true
			break
		}
	}

	hasCorrectCNAME := false
	for _, record := range snapshot.CnameRecords {
		if strings.Contains(record.Value, s.platform.RootDomain) {
			hasCorrectCNAME = true
			break
		}
	}

	return hasCorrectNameservers || hasCorrectARecords || hasCorrectCNAME
}
