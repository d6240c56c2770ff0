package dto

import "github.com/ruachost/domainstack/internal/enum"

// ConnectionResult is returned once per connection-check invocation. It has
// no server-side identity, each request recomputes it from a live DNS
// snapshot.
type ConnectionResult struct {
	Success            bool                    `json:"success"`
	Domain             string                  `json:"domain"`
	Nameservers        []string                `json:"nameservers,omitempty"`
	ARecords           []DNSRecord             `json:"aRecords,omitempty"`
	CnameRecords       []DNSRecord             `json:"cnameRecords,omitempty"`
	Instructions       []string                `json:"instructions"`
	VerificationStatus enum.VerificationStatus `json:"verificationStatus"`
	Error              string                  `json:"error,omitempty"`
	CurrentDNSStatus   *DNSSnapshot            `json:"currentDnsStatus,omitempty"`
}

type ConnectDomainRequest struct {
	Domain      string `json:"domain"`
	ServiceType string `json:"serviceType"`
}

type VerifyDomainResponse struct {
	Success   bool                    `json:"success"`
	Status    enum.VerificationStatus `json:"status"`
	Domain    string                  `json:"domain"`
	DNSStatus *DNSSnapshot            `json:"dnsStatus,omitempty"`
	Error     string                  `json:"error,omitempty"`
}
