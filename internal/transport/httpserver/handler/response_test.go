package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	accessdomain "rental-app-go/internal/domain/access"
	"rental-app-go/internal/domain/validation"
	"rental-app-go/pkg/logger"
)

func testHandlers() *Handlers {
	return &Handlers{log: logger.New(io.Discard, slog.LevelError, "json")}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return envelope
}

func TestWriteDomainErrorValidation(t *testing.T) {
	h := testHandlers()
	rec := httptest.NewRecorder()

	h.writeDomainError(rec, "tenants.create", validation.Errorf("username is required"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error.Code != "invalid_request" {
		t.Fatalf("code = %q, want invalid_request", envelope.Error.Code)
	}
	if envelope.Error.Message != "username is required" {
		t.Fatalf("message = %q", envelope.Error.Message)
	}
}

func TestWriteDomainErrorForbidden(t *testing.T) {
	h := testHandlers()
	rec := httptest.NewRecorder()

	h.writeDomainError(rec, "bills.by_booking", accessdomain.ErrForbidden)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if envelope := decodeEnvelope(t, rec); envelope.Error.Code != "forbidden" {
		t.Fatalf("code = %q, want forbidden", envelope.Error.Code)
	}
}
