package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	billingdomain "rental-app-go/internal/domain/billing"
	"rental-app-go/internal/notify"
)

// billRequest carries the meter readings flat in the body; the Readings
// fields parse leniently (number or numeric string, junk becomes zero).
type billRequest struct {
	BookingID string `json:"booking_id"`
	billingdomain.Readings
	Note             string `json:"note"`
	IncludeRoomPrice bool   `json:"include_room_price"`
}

func (h *Handlers) ListRoomPrices(w http.ResponseWriter, r *http.Request) {
	_, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	items, err := h.Billing.ListRoomPrices(r.Context(), scope)
	if err != nil {
		h.writeDomainError(w, "bills.prices", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) ListBillsByBooking(w http.ResponseWriter, r *http.Request) {
	_, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	items, err := h.Billing.ListBillsByBooking(r.Context(), scope, chi.URLParam(r, "booking_id"))
	if err != nil {
		h.writeDomainError(w, "bills.by_booking", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) CreateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.BookingID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "booking_id is required")
		return
	}

	bill, err := h.Billing.CreateBill(r.Context(), scope, billingdomain.CreateBillInput{
		BookingID:        req.BookingID,
		Readings:         req.Readings,
		Note:             req.Note,
		IncludeRoomPrice: req.IncludeRoomPrice,
	})
	if err != nil {
		h.writeDomainError(w, "bills.create", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "create", "bill", bill.ID, bill.TotalAmount.String())
	writeJSON(w, http.StatusCreated, bill)
}

func (h *Handlers) UpdateBill(w http.ResponseWriter, r *http.Request) {
	var req billRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	bill, err := h.Billing.UpdateBill(r.Context(), scope, billingdomain.UpdateBillInput{
		BillID:           chi.URLParam(r, "id"),
		BookingID:        req.BookingID,
		Readings:         req.Readings,
		Note:             req.Note,
		IncludeRoomPrice: req.IncludeRoomPrice,
	})
	if err != nil {
		h.writeDomainError(w, "bills.update", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "bill", bill.ID, bill.TotalAmount.String())
	writeJSON(w, http.StatusOK, bill)
}

func (h *Handlers) ConfirmBill(w http.ResponseWriter, r *http.Request) {
	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	bill, err := h.Billing.ConfirmBill(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "bills.confirm", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "bill", bill.ID, "paid")
	writeJSON(w, http.StatusOK, bill)
}

// SendBill pushes a bill-issued notification to the tenant. Delivery is best
// effort; the endpoint succeeds as soon as the bill and recipient resolve.
func (h *Handlers) SendBill(w http.ResponseWriter, r *http.Request) {
	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}
	if !scope.Manages() {
		writeError(w, http.StatusForbidden, "forbidden", "not allowed")
		return
	}

	bill, err := h.Billing.GetBill(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "bills.send", err)
		return
	}
	pricing, err := h.Billing.GetBookingPricing(r.Context(), bill.BookingID)
	if err != nil {
		h.writeDomainError(w, "bills.send", err)
		return
	}
	if !scope.AllowsProperty(pricing.PropertyID) {
		writeError(w, http.StatusForbidden, "forbidden", "not allowed")
		return
	}

	h.Notifier.Send(r.Context(), pricing.TenantLineID, notify.Message{
		Title: "New bill issued",
		Text:  "A bill for " + pricing.RoomName + " is ready.",
		Lines: []notify.MessageLine{
			{Label: "Property", Value: pricing.PropertyName},
			{Label: "Room", Value: pricing.RoomCode},
			{Label: "Total", Value: bill.TotalAmount.StringFixed(2)},
		},
	})

	h.Activity.Record(r.Context(), principal.ID, "notify", "bill", bill.ID, pricing.TenantName)
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *Handlers) DeleteBill(w http.ResponseWriter, r *http.Request) {
	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	billID := chi.URLParam(r, "id")
	if err := h.Billing.DeleteBill(r.Context(), scope, billID); err != nil {
		h.writeDomainError(w, "bills.delete", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "delete", "bill", billID, "")
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
