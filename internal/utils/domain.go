package utils

import (
	"regexp"
	"strings"
)

var domainNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9](\.[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9])*\.[a-zA-Z]{2,}$`)

// IsValidDomain reports whether s looks like a registrable domain name.
// It is a form-level check, not an authoritative one.
func IsValidDomain(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) == 0 || len(s) > 253 {
		return false
	}
	return domainNameRegex.MatchString(s)
}

// NormalizeDomain lowercases the domain and strips surrounding whitespace
// and a trailing dot from DNS answers.
func NormalizeDomain(domain string) string {
	domain = strings.TrimSpace(strings.ToLower(domain))
	return strings.TrimSuffix(domain, ".")
}

// ExtractTLD returns the TLD portion of a domain without the leading dot,
// e.g. "example.com" -> "com", "shop.co.uk" -> "co.uk".
func ExtractTLD(domain string) string {
	domain = NormalizeDomain(domain)
	parts := strings.SplitN(domain, ".", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
