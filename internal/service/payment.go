package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/strogmv/chatpush/internal/pkg/apperr"
	"github.com/strogmv/chatpush/internal/pkg/logger"
	"github.com/strogmv/chatpush/internal/port"
)

var validate = validator.New()

// PaymentImpl fronts the external payment processor. There is no internal
// state: one validated request, one provider call.
type PaymentImpl struct {
	provider port.PaymentProvider
}

func NewPaymentImpl(provider port.PaymentProvider) *PaymentImpl {
	return &PaymentImpl{provider: provider}
}

// CreateIntent validates the request and forwards it to the provider.
// Provider failures are logged with full detail but surface to the caller
// as a generic internal error.
func (s *PaymentImpl) CreateIntent(ctx context.Context, req port.CreateIntentRequest) (port.CreateIntentResponse, error) {
	if err := validate.Struct(req); err != nil {
		return port.CreateIntentResponse{}, apperr.New(
			http.StatusBadRequest,
			"invalid-argument",
			"amount and currency are required",
		)
	}

	resp, err := s.provider.CreateIntent(ctx, req)
	if err != nil {
		logger.From(ctx).Error("payment provider call failed",
			slog.Int64("amount", req.Amount),
			slog.String("currency", req.Currency),
			slog.Any("error", err),
		)
		return port.CreateIntentResponse{}, apperr.New(
			http.StatusInternalServerError,
			"internal",
			"payment intent creation failed",
		)
	}
	return resp, nil
}
