// Package stripe implements the payment provider port with the Stripe API.
package stripe

import (
	"context"
	"fmt"

	stripesdk "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"

	"github.com/strogmv/chatpush/internal/port"
)

type Client struct{}

func New(secretKey string) *Client {
	stripesdk.Key = secretKey
	return &Client{}
}

// CreateIntent performs the one-shot payment-intent call. The raw provider
// error is returned to the service layer, which logs it and maps it to a
// generic internal error for the caller.
func (c *Client) CreateIntent(ctx context.Context, req port.CreateIntentRequest) (port.CreateIntentResponse, error) {
	params := &stripesdk.PaymentIntentParams{
		Params: stripesdk.Params{
			Context: ctx,
		},
		Amount:   stripesdk.Int64(req.Amount),
		Currency: stripesdk.String(req.Currency),
		AutomaticPaymentMethods: &stripesdk.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripesdk.Bool(true),
		},
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return port.CreateIntentResponse{}, fmt.Errorf("create payment intent: %w", err)
	}
	return port.CreateIntentResponse{ClientSecret: pi.ClientSecret}, nil
}
