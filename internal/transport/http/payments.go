package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/strogmv/chatpush/internal/pkg/apperr"
	"github.com/strogmv/chatpush/internal/pkg/logger"
	"github.com/strogmv/chatpush/internal/port"
)

type PaymentHandler struct {
	svc       port.Payments
	jwtSecret []byte
}

func NewPaymentHandler(svc port.Payments, jwtSecret []byte) *PaymentHandler {
	return &PaymentHandler{svc: svc, jwtSecret: jwtSecret}
}

// CreateIntent handles POST /api/v1/payments/intent.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromBearer(r, h.jwtSecret)
	if err != nil {
		writeError(w, apperr.New(http.StatusUnauthorized, "unauthenticated", "authentication required"))
		return
	}

	var req port.CreateIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(http.StatusBadRequest, "invalid-argument", "invalid request body"))
		return
	}

	resp, err := h.svc.CreateIntent(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	logger.From(r.Context()).Info("payment intent created", slog.String("user_id", userID))
	writeJSON(w, http.StatusOK, resp)
}
