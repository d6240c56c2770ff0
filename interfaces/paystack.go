package interfaces

import (
	"context"

	"github.com/ruachost/domainstack/dto"
)

type PaystackService interface {
	InitializeTransaction(ctx context.Context, request *dto.InitializePaymentRequest) (*dto.InitializePaymentResult, error)
	VerifyTransaction(ctx context.Context, reference string) (*dto.TransactionData, error)
	ValidateWebhookSignature(body []byte, signature string) bool
}
