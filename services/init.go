package services

import (
	"github.com/ruachost/domainstack/interfaces"
	"github.com/ruachost/domainstack/internal/config"
	"github.com/ruachost/domainstack/internal/logger"
	"github.com/ruachost/domainstack/internal/repository"
	"github.com/ruachost/domainstack/services/challenge"
	"github.com/ruachost/domainstack/services/dnslookup"
	"github.com/ruachost/domainstack/services/domainconnection"
	"github.com/ruachost/domainstack/services/order"
	"github.com/ruachost/domainstack/services/paystack"
	"github.com/ruachost/domainstack/services/whmcs"
)

type Services struct {
	DNSLookupService        interfaces.DNSLookupService
	DomainConnectionService interfaces.DomainConnectionService
	ChallengeService        interfaces.ChallengeService
	WHMCSService            interfaces.WHMCSService
	PaystackService         interfaces.PaystackService
	OrderService            interfaces.OrderService
}

type Config struct {
	Platform  *config.PlatformConfig
	Challenge *config.ChallengeConfig
	WHMCS     *config.WHMCSConfig
	Paystack  *config.PaystackConfig
	DNS       *config.DNSConfig
}

func InitServices(cfg *Config, log logger.Logger, repos *repository.Repositories) *Services {
	dnsLookupService := dnslookup.NewDNSLookupService(cfg.DNS)
	whmcsService := whmcs.NewWHMCSService(cfg.WHMCS)
	paystackService := paystack.NewPaystackService(cfg.Paystack)

	return &Services{
		DNSLookupService:        dnsLookupService,
		DomainConnectionService: domainconnection.NewDomainConnectionService(cfg.Platform, dnsLookupService),
		ChallengeService:        challenge.NewChallengeService(cfg.Challenge),
		WHMCSService:            whmcsService,
		PaystackService:         paystackService,
		OrderService:            order.NewOrderService(repos, cfg.Platform, whmcsService, paystackService),
	}
}
