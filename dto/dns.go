package dto

import "time"

// DNSRecord is one resolved record of a given type for a domain.
type DNSRecord struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DNSSnapshot is the point-in-time DNS state of a domain, produced fresh
// on every evaluation and never cached.
type DNSSnapshot struct {
	Nameservers  []string    `json:"nameservers"`
	ARecords     []DNSRecord `json:"aRecords"`
	CnameRecords []DNSRecord `json:"cnameRecords"`
	Timestamp    time.Time   `json:"timestamp"`
	Error        string      `json:"error,omitempty"`
}

// TypedDNSRecord carries the record type alongside name/value, used by the
// flat DNS listing endpoint.
type TypedDNSRecord struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
	TTL   uint32 `json:"ttl"`
}
