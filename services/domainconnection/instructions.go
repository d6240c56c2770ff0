package domainconnection

import (
	"fmt"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/internal/config"
	"github.com/ruachost/domainstack/internal/enum"
)

type dnsInstructions struct {
	Nameservers  []string
	ARecords     []dto.DNSRecord
	CnameRecords []dto.DNSRecord
	Instructions []string
}

// generateInstructions builds the registrar-side steps a customer must
// follow to point their domain at the platform, per service type.
func generateInstructions(platform *config.PlatformConfig, domain string, serviceType enum.ServiceType) *dnsInstructions {
	result := &dnsInstructions{
		Nameservers:  platform.Nameservers(),
		ARecords:     []dto.DNSRecord{},
		CnameRecords: []dto.DNSRecord{},
	}

	switch serviceType {
	case enum.ServiceTypeWebsiteBuilder:
		// website builder connects through A records
		result.ARecords = []dto.DNSRecord{
			{Name: "@", Value: platform.IPAddress},
			{Name: "www", Value: platform.IPAddress},
		}
		result.Instructions = []string{
			"1. Log in to your domain registrar",
			"2. Go to DNS settings",
			"3. Add these A records:",
			fmt.Sprintf("   @ (root domain) points to %s", platform.IPAddress),
			fmt.Sprintf("   www points to %s", platform.IPAddress),
			"4. Save changes and wait for propagation (up to 48 hours)",
			"5. Your website will be accessible once DNS propagates",
		}

	case enum.ServiceTypeEcommerce:
		// e-commerce uses a root A record plus CNAMEs into the platform
		result.ARecords = []dto.DNSRecord{
			{Name: "@", Value: platform.IPAddress},
		}
		result.CnameRecords = []dto.DNSRecord{
			{Name: "www", Value: fmt.Sprintf("%s.%s", domain, platform.RootDomain)},
			{Name: "shop", Value: fmt.Sprintf("shop.%s", platform.RootDomain)},
		}
		result.Instructions = []string{
			"1. Access your domain's DNS settings",
			"2. Add these records:",
			fmt.Sprintf("   A record: @ (root domain) points to %s", platform.IPAddress),
			fmt.Sprintf("   CNAME: www points to %s.%s", domain, platform.RootDomain),
			fmt.Sprintf("   CNAME: shop points to shop.%s", platform.RootDomain),
			"3. Save and wait for DNS propagation (up to 48 hours)",
			"4. Your e-commerce store will be accessible once DNS propagates",
		}

	default:
		// hosting replaces the nameservers outright
		result.Instructions = []string{
			"1. Log in to your domain registrar (GoDaddy, Namecheap, etc.)",
			"2. Find the DNS or Nameserver settings",
			"3. Update nameservers to:",
			fmt.Sprintf("   %s", platform.Nameserver1),
			fmt.Sprintf("   %s", platform.Nameserver2),
			"4. Save changes and wait 24-48 hours for DNS propagation",
			"5. Your domain will be automatically configured once DNS propagates",
		}
	}

	return result
}
