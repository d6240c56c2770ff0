package interfaces

import (
	"context"

	"github.com/ruachost/domainstack/dto"
)

type DNSRecordType string

const (
	DNSRecordTypeA     DNSRecordType = "A"
	DNSRecordTypeCNAME DNSRecordType = "CNAME"
	DNSRecordTypeNS    DNSRecordType = "NS"
	DNSRecordTypeMX    DNSRecordType = "MX"
)

type DNSLookupService interface {
	// Resolve returns the records of the given type for domain. Lookup
	// failures degrade to an empty list, never an error.
	Resolve(ctx context.Context, domain string, recordType DNSRecordType) []dto.DNSRecord
	// Snapshot fans out NS, A and CNAME lookups and joins them into one
	// best-effort snapshot.
	Snapshot(ctx context.Context, domain string) *dto.DNSSnapshot
	// ListRecords returns a flat typed record list (A, CNAME, MX) for the
	// DNS listing endpoint.
	ListRecords(ctx context.Context, domain string) []dto.TypedDNSRecord
}
