package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	accessdomain "rental-app-go/internal/domain/access"
	billingdomain "rental-app-go/internal/domain/billing"
	bookingdomain "rental-app-go/internal/domain/booking"
	maintenancedomain "rental-app-go/internal/domain/maintenance"
	pkgdomain "rental-app-go/internal/domain/pkgdelivery"
	propertydomain "rental-app-go/internal/domain/property"
	tenantdomain "rental-app-go/internal/domain/tenant"
	"rental-app-go/internal/domain/validation"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeDomainError maps the shared domain sentinels to HTTP statuses.
func (h *Handlers) writeDomainError(w http.ResponseWriter, op string, err error) {
	var unavailable *bookingdomain.RoomUnavailableError
	var mismatch *bookingdomain.RoomMismatchError
	var invalid *validation.Error

	switch {
	case errors.As(err, &invalid):
		h.log.BusinessError(op+": invalid request", err)
		writeError(w, http.StatusBadRequest, "invalid_request", invalid.Msg)
	case errors.Is(err, accessdomain.ErrForbidden):
		h.log.BusinessError(op+": forbidden", err)
		writeError(w, http.StatusForbidden, "forbidden", "not allowed")
	case errors.Is(err, propertydomain.ErrPropertyNotFound),
		errors.Is(err, propertydomain.ErrRoomNotFound),
		errors.Is(err, bookingdomain.ErrBookingNotFound),
		errors.Is(err, bookingdomain.ErrRoomNotFound),
		errors.Is(err, billingdomain.ErrBillNotFound),
		errors.Is(err, billingdomain.ErrBookingNotFound),
		errors.Is(err, maintenancedomain.ErrRequestNotFound),
		errors.Is(err, pkgdomain.ErrPackageNotFound),
		errors.Is(err, tenantdomain.ErrTenantNotFound):
		h.log.BusinessError(op+": not found", err)
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.As(err, &unavailable):
		h.log.BusinessError(op+": room unavailable", err, "room_id", unavailable.RoomID)
		writeError(w, http.StatusConflict, "room_unavailable", err.Error())
	case errors.As(err, &mismatch):
		h.log.BusinessError(op+": room mismatch", err, "room_id", mismatch.RoomID)
		writeError(w, http.StatusBadRequest, "room_mismatch", err.Error())
	case errors.Is(err, propertydomain.ErrRoomCodeTaken),
		errors.Is(err, propertydomain.ErrRoomOccupied),
		errors.Is(err, propertydomain.ErrPropertyInUse),
		errors.Is(err, billingdomain.ErrInvalidTransition),
		errors.Is(err, maintenancedomain.ErrNotCancellable),
		errors.Is(err, pkgdomain.ErrAlreadyReceived),
		errors.Is(err, tenantdomain.ErrUsernameTaken):
		h.log.BusinessError(op+": conflict", err)
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, bookingdomain.ErrInvalidRange),
		errors.Is(err, bookingdomain.ErrNothingPending),
		errors.Is(err, propertydomain.ErrInvalidUtility),
		errors.Is(err, maintenancedomain.ErrInvalidStatus),
		errors.Is(err, maintenancedomain.ErrNotYourRoom):
		h.log.BusinessError(op+": invalid request", err)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError(op+": failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
