package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	bookingdomain "rental-app-go/internal/domain/booking"
)

type createBookingRequest struct {
	RoomID       string `json:"room_id"`
	UserID       string `json:"user_id"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	BillingCycle string `json:"billing_cycle"`
}

type updateBookingRequest struct {
	RoomID    string `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	_, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	items, err := h.Bookings.ListBookings(r.Context(), scope)
	if err != nil {
		h.writeDomainError(w, "bookings.list", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.RoomID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "room_id is required")
		return
	}

	start, err := parseDateRequired(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	end, err := parseDateRequired(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	// Tenants book for themselves; managers may book on behalf of a user.
	userID := principal.ID
	if strings.TrimSpace(req.UserID) != "" {
		if !scope.Manages() && req.UserID != principal.ID {
			writeError(w, http.StatusForbidden, "forbidden", "not allowed")
			return
		}
		userID = req.UserID
	}

	b, err := h.Bookings.CreateBooking(r.Context(), bookingdomain.CreateBookingInput{
		RoomID:       req.RoomID,
		UserID:       userID,
		StartDate:    start,
		EndDate:      end,
		BillingCycle: bookingdomain.Cycle(req.BillingCycle),
	})
	if err != nil {
		h.writeDomainError(w, "bookings.create", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "create", "booking", b.ID, "")
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handlers) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var req updateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	start, err := parseDateRequired(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	end, err := parseDateRequired(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	b, err := h.Bookings.UpdateBooking(r.Context(), scope, bookingdomain.UpdateBookingInput{
		ID:        chi.URLParam(r, "id"),
		RoomID:    req.RoomID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		h.writeDomainError(w, "bookings.update", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "booking", b.ID, "")
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}
	if !scope.Manages() {
		writeError(w, http.StatusForbidden, "forbidden", "not allowed")
		return
	}

	b, err := h.Bookings.ConfirmBooking(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "bookings.confirm", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "booking", b.ID, "confirmed")
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	b, err := h.Bookings.CancelBooking(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "bookings.cancel", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "booking", b.ID, "cancelled")
	writeJSON(w, http.StatusOK, b)
}

func (h *Handlers) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	bookingID := chi.URLParam(r, "id")
	if err := h.Bookings.DeleteBooking(r.Context(), scope, bookingID); err != nil {
		h.writeDomainError(w, "bookings.delete", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "delete", "booking", bookingID, "")
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
