package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/strogmv/chatpush/internal/pkg/apperr"
	"github.com/strogmv/chatpush/internal/port"
)

type paymentsMock struct {
	CreateIntentFunc func(ctx context.Context, req port.CreateIntentRequest) (port.CreateIntentResponse, error)
}

func (m *paymentsMock) CreateIntent(ctx context.Context, req port.CreateIntentRequest) (port.CreateIntentResponse, error) {
	if m.CreateIntentFunc != nil {
		return m.CreateIntentFunc(ctx, req)
	}
	return port.CreateIntentResponse{ClientSecret: "cs_test"}, nil
}

const testSecret = "test-secret"

func signedToken(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func decodeErrorCode(t *testing.T, body string) string {
	t.Helper()
	var out struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode error body %q: %v", body, err)
	}
	return out.Error.Code
}

func TestCreateIntentRequiresAuthentication(t *testing.T) {
	t.Parallel()

	router := NewRouter(&paymentsMock{}, []byte(testSecret))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/intent", strings.NewReader(`{"amount":100,"currency":"USD"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec.Body.String()); code != "unauthenticated" {
		t.Fatalf("unexpected error code %q", code)
	}
}

func TestCreateIntentRejectsForgedToken(t *testing.T) {
	t.Parallel()

	router := NewRouter(&paymentsMock{}, []byte(testSecret))

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"})
	raw, err := forged.SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/intent", strings.NewReader(`{"amount":100,"currency":"USD"}`))
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}

func TestCreateIntentRejectsBadBody(t *testing.T) {
	t.Parallel()

	router := NewRouter(&paymentsMock{}, []byte(testSecret))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/intent", strings.NewReader(`{"amount":`))
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec.Body.String()); code != "invalid-argument" {
		t.Fatalf("unexpected error code %q", code)
	}
}

func TestCreateIntentMapsServiceErrors(t *testing.T) {
	t.Parallel()

	svc := &paymentsMock{
		CreateIntentFunc: func(context.Context, port.CreateIntentRequest) (port.CreateIntentResponse, error) {
			return port.CreateIntentResponse{}, apperr.New(http.StatusInternalServerError, "internal", "payment intent creation failed")
		},
	}
	router := NewRouter(svc, []byte(testSecret))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/intent", strings.NewReader(`{"amount":100,"currency":"USD"}`))
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec.Body.String()); code != "internal" {
		t.Fatalf("unexpected error code %q", code)
	}
}

func TestCreateIntentReturnsClientSecret(t *testing.T) {
	t.Parallel()

	var got port.CreateIntentRequest
	svc := &paymentsMock{
		CreateIntentFunc: func(_ context.Context, req port.CreateIntentRequest) (port.CreateIntentResponse, error) {
			got = req
			return port.CreateIntentResponse{ClientSecret: "cs_live_42"}, nil
		},
	}
	router := NewRouter(svc, []byte(testSecret))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/intent", strings.NewReader(`{"amount":2500,"currency":"EUR"}`))
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "u1"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if got.Amount != 2500 || got.Currency != "EUR" {
		t.Fatalf("unexpected request forwarded: %+v", got)
	}

	var out map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["clientSecret"] != "cs_live_42" {
		t.Fatalf("unexpected response: %+v", out)
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	router := NewRouter(&paymentsMock{}, []byte(testSecret))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("unexpected health response: %d %q", rec.Code, rec.Body.String())
	}
}
