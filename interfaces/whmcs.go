package interfaces

import (
	"context"

	"github.com/ruachost/domainstack/dto"
)

type WHMCSService interface {
	CheckDomainAvailability(ctx context.Context, domain string) (bool, error)
	GetTLDPricing(ctx context.Context, tld string) (*TLDPricing, error)
	SearchDomain(ctx context.Context, domain string) (*dto.DomainSearchResult, error)
	GetClientIDByEmail(ctx context.Context, email string) (string, error)
	AddClient(ctx context.Context, customer *dto.Customer) (string, error)
	AddOrder(ctx context.Context, clientID, paymentMethod string, domains []dto.OrderDomain) (string, error)
	GetDomainStatus(ctx context.Context, domain string) (*dto.DomainStatus, error)
	RenewDomain(ctx context.Context, domainID string, period int, autoRenew bool) (string, error)
}

type TLDPricing struct {
	TLD          string   `json:"tld"`
	Currency     string   `json:"currency"`
	RegisterYear float64  `json:"registerYear"`
	RenewYear    *float64 `json:"renewYear,omitempty"`
}
