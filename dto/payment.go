package dto

import "encoding/json"

type InitializePaymentRequest struct {
	Amount      float64        `json:"amount"`
	Email       string         `json:"email"`
	Reference   string         `json:"reference"`
	CallbackURL string         `json:"callback_url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

type InitializePaymentResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type TransactionData struct {
	Status    string          `json:"status"`
	Reference string          `json:"reference"`
	Amount    int64           `json:"amount"`
	Currency  string          `json:"currency"`
	Metadata  json.RawMessage `json:"metadata"`
}

// PaystackWebhookEvent is the signed event payload delivered by Paystack.
type PaystackWebhookEvent struct {
	Event string              `json:"event"`
	Data  PaystackWebhookData `json:"data"`
}

type PaystackWebhookData struct {
	Reference string                   `json:"reference"`
	Status    string                   `json:"status"`
	Amount    int64                    `json:"amount"`
	Metadata  *PaystackWebhookMetadata `json:"metadata"`
}

type PaystackWebhookMetadata struct {
	Customer *Customer     `json:"customer"`
	Domains  []OrderDomain `json:"domains"`
}
