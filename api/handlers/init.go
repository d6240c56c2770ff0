package handlers

import (
	"github.com/ruachost/domainstack/internal/repository"
	"github.com/ruachost/domainstack/services"
)

type APIHandlers struct {
	Domains     *DomainsHandler
	Connections *ConnectionsHandler
	Orders      *OrdersHandler
	Payments    *PaymentsHandler
	Webhooks    *WebhooksHandler
}

func InitHandlers(s *services.Services, repos *repository.Repositories) *APIHandlers {
	return &APIHandlers{
		Domains:     NewDomainsHandler(s.ChallengeService, s.WHMCSService, s.DNSLookupService),
		Connections: NewConnectionsHandler(s.DomainConnectionService),
		Orders:      NewOrdersHandler(s.OrderService, repos),
		Payments:    NewPaymentsHandler(s.PaystackService),
		Webhooks:    NewWebhooksHandler(s.PaystackService, s.OrderService),
	}
}
