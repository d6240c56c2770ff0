package whmcs

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"
	"golang.org/x/net/context"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/interfaces"
	"github.com/ruachost/domainstack/internal/config"
	er "github.com/ruachost/domainstack/internal/errors"
	"github.com/ruachost/domainstack/internal/tracing"
	"github.com/ruachost/domainstack/internal/utils"
)

// WHMCS API reference: https://developers.whmcs.com/api/api-index/
type whmcsService struct {
	cfg        *config.WHMCSConfig
	httpClient *http.Client
}

func NewWHMCSService(cfg *config.WHMCSConfig) interfaces.WHMCSService {
	return &whmcsService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type apiResponse struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

func (s *whmcsService) makeRequest(ctx context.Context, action string, params url.Values) ([]byte, error) {
	// validate if whmcs is configured
	if s.cfg.Url == "" || s.cfg.Identifier == "" || s.cfg.Secret == "" {
		return nil, errors.Wrap(er.ErrNotConfigured, "whmcs")
	}

	query := url.Values{}
	query.Add("action", action)
	query.Add("identifier", s.cfg.Identifier)
	query.Add("secret", s.cfg.Secret)
	query.Add("accesskey", s.cfg.AccessKey)
	query.Add("responsetype", s.cfg.ResponseType)
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Url+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build WHMCS request")
	}
	if span := opentracing.SpanFromContext(ctx); span != nil {
		req = tracing.InjectSpanContextIntoHTTPRequest(req, span)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call WHMCS API")
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read WHMCS response")
	}

	// Cloudflare fronts the billing panel and answers 522 with a bare text body
	if string(responseBody) == "error code: 522" {
		return nil, er.ErrConnectionTimeout
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("WHMCS API request failed with status: %d", resp.StatusCode)
	}

	return responseBody, nil
}

// CheckDomainAvailability checks whether the domain can be registered. An
// empty whois body in the DomainWhois response means the domain is free.
func (s *whmcsService) CheckDomainAvailability(ctx context.Context, domain string) (bool, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "WHMCSService.CheckDomainAvailability")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagDomain(span, domain)

	params := url.Values{}
	params.Add("domain", domain)

	responseBody, err := s.makeRequest(ctx, "DomainWhois", params)
	if err != nil {
		tracing.TraceErr(span, err)
		return false, err
	}

	var result struct {
		apiResponse
		Whois string `json:"whois"`
	}
	if err = json.Unmarshal(responseBody, &result); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to parse DomainWhois response"))
		return false, err
	}
	if result.Result != "success" {
		err = fmt.Errorf("WHMCS API returned error: %s", result.Message)
		tracing.TraceErr(span, err)
		return false, err
	}

	available := result.Whois == ""
	span.LogFields(tracingLog.Bool("result.available", available))
	return available, nil
}

func (s *whmcsService) GetTLDPricing(ctx context.Context, tld string) (*interfaces.TLDPricing, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "WHMCSService.GetTLDPricing")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("tld", tld)

	params := url.Values{}
	params.Add("tld", tld)

	responseBody, err := s.makeRequest(ctx, "GetTLDPricing", params)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	var result struct {
		apiResponse
		Currency struct {
			Code string `json:"code"`
		} `json:"currency"`
		Pricing map[string]struct {
			Register map[string]string `json:"register"`
			Renew    map[string]string `json:"renew"`
		} `json:"pricing"`
	}
	if err = json.Unmarshal(responseBody, &result); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to parse GetTLDPricing response"))
		return nil, err
	}
	if result.Result != "success" {
		err = fmt.Errorf("WHMCS API returned error: %s", result.Message)
		tracing.TraceErr(span, err)
		return nil, err
	}

	tldData, ok := result.Pricing[tld]
	if !ok || tldData.Register["1"] == "" {
		tracing.TraceErr(span, er.ErrPricingNotFound)
		return nil, er.ErrPricingNotFound
	}

	registerPrice, err := strconv.ParseFloat(tldData.Register["1"], 64)
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to parse register price"))
		return nil, err
	}

	currency := result.Currency.Code
	if currency == "" {
		currency = "USD"
	}

	pricing := &interfaces.TLDPricing{
		TLD:          tld,
		Currency:     currency,
		RegisterYear: registerPrice,
	}
	if renewRaw := tldData.Renew["1"]; renewRaw != "" {
		if renewPrice, parseErr := strconv.ParseFloat(renewRaw, 64); parseErr == nil {
			pricing.RenewYear = &renewPrice
		}
	}

	return pricing, nil
}

// SearchDomain composes availability and year-one pricing into one search
// result. Pricing failures degrade to a zero price rather than failing the
// search.
func (s *whmcsService) SearchDomain(ctx context.Context, domain string) (*dto.DomainSearchResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "WHMCSService.SearchDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagDomain(span, domain)

	available, err := s.CheckDomainAvailability(ctx, domain)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	result := &dto.DomainSearchResult{
		Domain:             domain,
		Available:          available,
		Currency:           "USD",
		RegistrationPeriod: 1,
	}

	if available {
		tld := utils.ExtractTLD(domain)
		pricing, pricingErr := s.GetTLDPricing(ctx, tld)
		if pricingErr != nil {
			tracing.TraceErr(span, pricingErr)
		} else {
			result.Price = pricing.RegisterYear
			result.Currency = pricing.Currency
			result.RenewalPrice = pricing.RenewYear
		}
	}

	return result, nil
}

func (s *whmcsService) GetClientIDByEmail(ctx context.Context, email string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "WHMCSService.GetClientIDByEmail")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	params := url.Values{}
	params.Add("email", email)

	responseBody, err := s.makeRequest(ctx, "GetClientsDetails", params)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	var result struct {
		apiResponse
		ID int64 `json:"id"`
	}
	if err = json.Unmarshal(responseBody, &result); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to parse GetClientsDetails response"))
		return "", err
	}
	if result.Result != "success" || result.ID == 0 {
		// no client with this email yet
		return "", nil
	}

	return strconv.FormatInt(result.ID, 10), nil
}

func (s *whmcsService) AddClient(ctx context.Context, customer *dto.Customer) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "WHMCSService.AddClient")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	params := url.Values{}
	params.Add("firstname", customer.FirstName)
	params.Add("lastname", customer.LastName)
	params.Add("email", customer.Email)
	params.Add("phonenumber", customer.PhoneNumber)
	params.Add("companyname", customer.CompanyName)
	params.Add("address1", customer.Address1)
	params.Add("address2", customer.Address2)
	params.Add("city", customer.City)
	params.Add("state", customer.State)
	params.Add("country", customer.Country)
	params.Add("postcode", customer.Postcode)

	responseBody, err := s.makeRequest(ctx, "AddClient", params)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	var result struct {
		apiResponse
		ClientID int64 `json:"clientid"`
	}
	if err = json.Unmarshal(responseBody, &result); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to parse AddClient response"))
		return "", err
	}
	if result.Result != "success" {
		tracing.TraceErr(span, er.ErrClientCreateFailed)
		return "", er.ErrClientCreateFailed
	}

	return strconv.FormatInt(result.ClientID, 10), nil
}

func (s *whmcsService) AddOrder(ctx context.Context, clientID, paymentMethod string, domains []dto.OrderDomain) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "WHMCSService.AddOrder")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("clientId", clientID)
	span.LogFields(tracingLog.Int("domains", len(domains)))

	params := url.Values{}
	params.Add("clientid", clientID)
	params.Add("paymentmethod", paymentMethod)
	for i, domain := range domains {
		index := strconv.Itoa(i)
		params.Add("domain["+index+"]", domain.Name)
		params.Add("domaintype["+index+"]", domain.DomainType)
		params.Add("regperiod["+index+"]", strconv.Itoa(domain.RegPeriod))
		if domain.Nameserver1 != "" {
			params.Add("nameserver1", domain.Nameserver1)
		}
		if domain.Nameserver2 != "" {
			params.Add("nameserver2", domain.Nameserver2)
		}
	}

	responseBody, err := s.makeRequest(ctx, "AddOrder", params)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	var result struct {
		apiResponse
		OrderID int64 `json:"orderid"`
	}
	if err = json.Unmarshal(responseBody, &result); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to parse AddOrder response"))
		return "", err
	}
	if result.Result != "success" {
		err = fmt.Errorf("WHMCS API returned error: %s", result.Message)
		tracing.TraceErr(span, err)
		return "", err
	}

	return strconv.FormatInt(result.OrderID, 10), nil
}

func (s *whmcsService) GetDomainStatus(ctx context.Context, domain string) (*dto.DomainStatus, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "WHMCSService.GetDomainStatus")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagDomain(span, domain)

	params := url.Values{}
	params.Add("domain", domain)

	responseBody, err := s.makeRequest(ctx, "GetClientsDomains", params)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	var result struct {
		apiResponse
		Domains struct {
			Domain []struct {
				DomainName  string `json:"domainname"`
				Status      string `json:"status"`
				NextDueDate string `json:"nextduedate"`
			} `json:"domain"`
		} `json:"domains"`
	}
	if err = json.Unmarshal(responseBody, &result); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to parse GetClientsDomains response"))
		return nil, err
	}
	if result.Result != "success" || len(result.Domains.Domain) == 0 {
		tracing.TraceErr(span, er.ErrDomainNotFound)
		return nil, er.ErrDomainNotFound
	}

	domainData := result.Domains.Domain[0]
	status := &dto.DomainStatus{
		Domain:     domainData.DomainName,
		Status:     mapDomainStatus(domainData.Status),
		ExpiryDate: domainData.NextDueDate,
	}
	if expiry, parseErr := time.Parse("2006-01-02", domainData.NextDueDate); parseErr == nil {
		status.DaysLeft = int(time.Until(expiry).Hours() / 24)
	}

	return status, nil
}

func (s *whmcsService) RenewDomain(ctx context.Context, domainID string, period int, autoRenew bool) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "WHMCSService.RenewDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("domainId", domainID)

	autoRenewFlag := "0"
	if autoRenew {
		autoRenewFlag = "1"
	}

	params := url.Values{}
	params.Add("domainid", domainID)
	params.Add("regperiod", strconv.Itoa(period))
	params.Add("autorenew", autoRenewFlag)

	responseBody, err := s.makeRequest(ctx, "DomainRenew", params)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	var result struct {
		apiResponse
		OrderID int64 `json:"orderid"`
	}
	if err = json.Unmarshal(responseBody, &result); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to parse DomainRenew response"))
		return "", err
	}
	if result.Result != "success" {
		err = fmt.Errorf("WHMCS API returned error: %s", result.Message)
		tracing.TraceErr(span, err)
		return "", err
	}

	return strconv.FormatInt(result.OrderID, 10), nil
}

func mapDomainStatus(whmcsStatus string) string {
	switch whmcsStatus {
	case "Active", "active":
		return "active"
	case "Expired", "expired":
		return "expired"
	case "Suspended", "suspended":
		return "suspended"
	default:
		return "pending"
	}
}
