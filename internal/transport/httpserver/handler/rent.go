package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListRent is the tenant's own rent view: every bill on their confirmed
// bookings plus the property's current display rates.
func (h *Handlers) ListRent(w http.ResponseWriter, r *http.Request) {
	principal, _, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	items, err := h.Billing.ListRent(r.Context(), principal.ID)
	if err != nil {
		h.writeDomainError(w, "rent.list", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) PayBill(w http.ResponseWriter, r *http.Request) {
	principal, _, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	bill, err := h.Billing.PayBill(r.Context(), principal.ID, chi.URLParam(r, "bill_id"))
	if err != nil {
		h.writeDomainError(w, "rent.pay", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "bill", bill.ID, "payment claimed")
	writeJSON(w, http.StatusOK, bill)
}
