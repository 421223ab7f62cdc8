package port

import "context"

// CreateIntentRequest carries the validated input for a payment intent.
type CreateIntentRequest struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency" validate:"required,iso4217"`
}

// CreateIntentResponse returns the processor's opaque client secret.
type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentProvider is the external payment processor.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (CreateIntentResponse, error)
}

// Payments is the application-facing payment service.
type Payments interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (CreateIntentResponse, error)
}
