package order

import (
	"context"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/interfaces"
	"github.com/ruachost/domainstack/internal/config"
	"github.com/ruachost/domainstack/internal/enum"
	er "github.com/ruachost/domainstack/internal/errors"
	"github.com/ruachost/domainstack/internal/models"
	"github.com/ruachost/domainstack/internal/repository"
	"github.com/ruachost/domainstack/internal/tracing"
)

var requiredCustomerFields = []string{
	"firstName",
	"lastName",
	"email",
	"address1",
	"city",
	"state",
	"postcode",
	"country",
	"phonenumber",
}

type orderService struct {
	postgres *repository.Repositories
	platform *config.PlatformConfig
	whmcs    interfaces.WHMCSService
	paystack interfaces.PaystackService
}

func NewOrderService(postgres *repository.Repositories, platform *config.PlatformConfig, whmcs interfaces.WHMCSService, paystack interfaces.PaystackService) interfaces.OrderService {
	return &orderService{
		postgres: postgres,
		platform: platform,
		whmcs:    whmcs,
		paystack: paystack,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, request *dto.CreateOrderRequest) (*dto.CreateOrderResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrderService.CreateOrder")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.LogObjectAsJson(span, "request", request)

	if err := validateCustomer(request.Customer); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	domains, err := s.normalizeDomains(request.Domains)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	paymentMethod := request.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "paystack"
	}

	// find the WHMCS client by email, create one when missing
	clientID, err := s.whmcs.GetClientIDByEmail(ctx, request.Customer.Email)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	isNewClient := false
	if clientID == "" {
		clientID, err = s.whmcs.AddClient(ctx, request.Customer)
		if err != nil {
			tracing.TraceErr(span, errors.Wrap(err, "failed to create client"))
			return nil, err
		}
		isNewClient = true
	}
	span.LogKV("clientId", clientID)
	span.LogFields(tracingLog.Bool("isNewClient", isNewClient))

	whmcsOrderID, err := s.whmcs.AddOrder(ctx, clientID, paymentMethod, domains)
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to create order in WHMCS"))
		return nil, err
	}

	reference := request.Reference
	if reference == "" {
		reference, err = gonanoid.New()
		if err != nil {
			tracing.TraceErr(span, err)
			return nil, err
		}
	}

	status := enum.OrderStatusPending
	if request.Paid {
		status = enum.OrderStatusPaid
	}

	orderModel := &models.Order{
		Reference:        reference,
		CustomerEmail:    request.Customer.Email,
		Status:           status,
		TotalAmount:      request.Amount,
		Currency:         currencyOrDefault(request.Currency),
		PaymentMethod:    paymentMethod,
		PaymentReference: request.Reference,
		WhmcsOrderID:     whmcsOrderID,
		WhmcsClientID:    clientID,
	}
	for _, domain := range domains {
		orderModel.Domains = append(orderModel.Domains, models.OrderDomain{
			Domain:      domain.Name,
			DomainType:  domain.DomainType,
			RegPeriod:   domain.RegPeriod,
			Nameserver1: domain.Nameserver1,
			Nameserver2: domain.Nameserver2,
		})
	}

	if _, err = s.postgres.OrderRepository.CreateOrder(ctx, orderModel); err != nil {
		// the WHMCS order already exists; surface the persistence failure but
		// keep the order id in the span for manual reconciliation
		span.LogKV("whmcsOrderId", whmcsOrderID)
		tracing.TraceErr(span, errors.Wrap(err, "failed to persist order"))
		return nil, err
	}

	return &dto.CreateOrderResult{
		OrderID:       whmcsOrderID,
		ClientID:      clientID,
		IsNewClient:   isNewClient,
		Domains:       domains,
		PaymentMethod: paymentMethod,
	}, nil
}

func (s *orderService) MarkOrderPaid(ctx context.Context, reference string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrderService.MarkOrderPaid")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("reference", reference)

	orderModel, err := s.postgres.OrderRepository.GetOrderByReference(ctx, reference)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	if orderModel == nil {
		tracing.TraceErr(span, er.ErrOrderNotFound)
		return er.ErrOrderNotFound
	}

	return s.postgres.OrderRepository.UpdateOrderStatus(ctx, reference, enum.OrderStatusPaid)
}

// ReconcilePendingPayments re-checks orders still marked pending against
// Paystack and promotes the ones whose charge went through. Run from cron to
// catch webhooks that never arrived.
func (s *orderService) ReconcilePendingPayments(ctx context.Context) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "OrderService.ReconcilePendingPayments")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	pending, err := s.postgres.OrderRepository.GetOrdersByStatus(ctx, enum.OrderStatusPending)
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	span.LogFields(tracingLog.Int("pendingOrders", len(pending)))

	for _, orderModel := range pending {
		if orderModel.PaymentReference == "" {
			continue
		}
		data, verifyErr := s.paystack.VerifyTransaction(ctx, orderModel.PaymentReference)
		if verifyErr != nil || data == nil {
			// still unpaid or gateway unavailable, try again next run
			continue
		}
		if updateErr := s.postgres.OrderRepository.UpdateOrderStatus(ctx, orderModel.Reference, enum.OrderStatusPaid); updateErr != nil {
			tracing.TraceErr(span, updateErr)
		}
	}

	return nil
}

func (s *orderService) normalizeDomains(domains []dto.OrderDomain) ([]dto.OrderDomain, error) {
	if len(domains) == 0 {
		return nil, er.NewValidationError("At least one domain is required")
	}

	normalized := make([]dto.OrderDomain, 0, len(domains))
	for i, domain := range domains {
		if domain.Name == "" {
			return nil, er.NewValidationError("Domain name is required for domain at index %d", i)
		}
		if domain.DomainType == "" {
			domain.DomainType = "register"
		}
		if domain.DomainType != "register" && domain.DomainType != "transfer" {
			return nil, er.NewValidationError("Domain type must be either \"register\" or \"transfer\" for domain: %s", domain.Name)
		}
		if domain.RegPeriod == 0 {
			domain.RegPeriod = 1
		}
		if domain.RegPeriod < 1 {
			return nil, er.NewValidationError("Registration period must be a number greater than 0 for domain: %s", domain.Name)
		}
		if domain.Nameserver1 == "" {
			domain.Nameserver1 = s.platform.Nameserver1
		}
		if domain.Nameserver2 == "" {
			domain.Nameserver2 = s.platform.Nameserver2
		}
		normalized = append(normalized, domain)
	}

	return normalized, nil
}

func validateCustomer(customer *dto.Customer) error {
	if customer == nil {
		return er.NewValidationError("Missing required fields: customer and domains")
	}

	values := map[string]string{
		"firstName":   customer.FirstName,
		"lastName":    customer.LastName,
		"email":       customer.Email,
		"address1":    customer.Address1,
		"city":        customer.City,
		"state":       customer.State,
		"postcode":    customer.Postcode,
		"country":     customer.Country,
		"phonenumber": customer.PhoneNumber,
	}
	for _, field := range requiredCustomerFields {
		if values[field] == "" {
			return er.NewValidationError("Missing required customer field: %s", field)
		}
	}
	return nil
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return "NGN"
	}
	return currency
}
