package paystack

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/interfaces"
	"github.com/ruachost/domainstack/internal/config"
	er "github.com/ruachost/domainstack/internal/errors"
	"github.com/ruachost/domainstack/internal/tracing"
)

// Paystack API reference: https://paystack.com/docs/api/
type paystackService struct {
	cfg        *config.PaystackConfig
	httpClient *http.Client
}

func NewPaystackService(cfg *config.PaystackConfig) interfaces.PaystackService {
	return &paystackService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type paystackResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *paystackService) InitializeTransaction(ctx context.Context, request *dto.InitializePaymentRequest) (*dto.InitializePaymentResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "PaystackService.InitializeTransaction")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.LogObjectAsJson(span, "request", request)

	if s.cfg.SecretKey == "" {
		err := errors.Wrap(er.ErrNotConfigured, "paystack")
		tracing.TraceErr(span, err)
		return nil, err
	}

	// Paystack expects the amount in kobo (smallest currency unit) as an
	// integer; the merchant account only settles NGN.
	payload := map[string]any{
		"amount":    int64(math.Round(request.Amount * 100)),
		"email":     request.Email,
		"reference": request.Reference,
		"currency":  s.cfg.Currency,
	}
	if request.CallbackURL != "" {
		payload["callback_url"] = request.CallbackURL
	}
	if request.Metadata != nil {
		payload["metadata"] = request.Metadata
	}

	body, err := json.Marshal(payload)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	responseBody, err := s.makeRequest(ctx, http.MethodPost, "/transaction/initialize", body)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	var response paystackResponse
	if err = json.Unmarshal(responseBody, &response); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to parse Paystack response"))
		return nil, err
	}
	if !response.Status || response.Data == nil {
		err = fmt.Errorf("failed to initialize payment: %s", response.Message)
		tracing.TraceErr(span, err)
		return nil, err
	}

	var result dto.InitializePaymentResult
	if err = json.Unmarshal(response.Data, &result); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to parse Paystack data"))
		return nil, err
	}

	return &result, nil
}

func (s *paystackService) VerifyTransaction(ctx context.Context, reference string) (*dto.TransactionData, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "PaystackService.VerifyTransaction")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("reference", reference)

	if s.cfg.SecretKey == "" {
		err := errors.Wrap(er.ErrNotConfigured, "paystack")
		tracing.TraceErr(span, err)
		return nil, err
	}

	responseBody, err := s.makeRequest(ctx, http.MethodGet, "/transaction/verify/"+reference, nil)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	var response paystackResponse
	if err = json.Unmarshal(responseBody, &response); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to parse Paystack response"))
		return nil, err
	}
	if !response.Status || response.Data == nil {
		tracing.TraceErr(span, er.ErrPaymentFailed)
		return nil, er.ErrPaymentFailed
	}

	var data dto.TransactionData
	if err = json.Unmarshal(response.Data, &data); err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "failed to parse transaction data"))
		return nil, err
	}
	span.LogFields(tracingLog.String("result.status", data.Status))

	if data.Status != "success" {
		return &data, er.ErrPaymentFailed
	}

	return &data, nil
}

// ValidateWebhookSignature checks the HMAC-SHA512 hex digest Paystack sends
// in x-paystack-signature over the raw request body.
func (s *paystackService) ValidateWebhookSignature(body []byte, signature string) bool {
	if s.cfg.WebhookSecret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha512.New, []byte(s.cfg.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *paystackService) makeRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.cfg.Url+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build Paystack request")
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.SecretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if span := opentracing.SpanFromContext(ctx); span != nil {
		req = tracing.InjectSpanContextIntoHTTPRequest(req, span)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call Paystack API")
	}
	defer resp.Body.Close()

	responseBody := new(bytes.Buffer)
	if _, err = responseBody.ReadFrom(resp.Body); err != nil {
		return nil, errors.Wrap(err, "failed to read Paystack response")
	}

	return responseBody.Bytes(), nil
}
