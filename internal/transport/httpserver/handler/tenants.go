package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	bookingdomain "rental-app-go/internal/domain/booking"
	tenantdomain "rental-app-go/internal/domain/tenant"
)

type tenantRequest struct {
	Username    string                    `json:"username"`
	Fullname    string                    `json:"fullname"`
	Email       string                    `json:"email"`
	Phone       string                    `json:"phone"`
	LineID      string                    `json:"line_id"`
	Assignments []tenantdomain.Assignment `json:"rooms"`
}

type tenantResponse struct {
	User     tenantdomain.User       `json:"user"`
	Bookings []bookingdomain.Booking `json:"bookings"`
}

func (h *Handlers) ListTenants(w http.ResponseWriter, r *http.Request) {
	_, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	items, err := h.Tenants.List(r.Context(), scope)
	if err != nil {
		h.writeDomainError(w, "tenants.list", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req tenantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	user, bookings, err := h.Tenants.Create(r.Context(), scope, tenantdomain.CreateInput{
		Username:    req.Username,
		Fullname:    req.Fullname,
		Email:       req.Email,
		Phone:       req.Phone,
		LineID:      req.LineID,
		Assignments: req.Assignments,
	})
	if err != nil {
		h.writeDomainError(w, "tenants.create", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "create", "tenant", user.ID, user.Username)
	writeJSON(w, http.StatusCreated, tenantResponse{User: *user, Bookings: bookings})
}

func (h *Handlers) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	var req tenantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	user, bookings, err := h.Tenants.Update(r.Context(), scope, tenantdomain.UpdateInput{
		TenantID:    chi.URLParam(r, "id"),
		Fullname:    req.Fullname,
		Email:       req.Email,
		Phone:       req.Phone,
		LineID:      req.LineID,
		Assignments: req.Assignments,
	})
	if err != nil {
		h.writeDomainError(w, "tenants.update", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "tenant", user.ID, user.Username)
	writeJSON(w, http.StatusOK, tenantResponse{User: *user, Bookings: bookings})
}

func (h *Handlers) ConfirmTenant(w http.ResponseWriter, r *http.Request) {
	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	tenantID := chi.URLParam(r, "id")
	if err := h.Tenants.Confirm(r.Context(), scope, tenantID); err != nil {
		h.writeDomainError(w, "tenants.confirm", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "tenant", tenantID, "confirmed")
	writeJSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
}

func (h *Handlers) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	tenantID := chi.URLParam(r, "id")
	if err := h.Tenants.Delete(r.Context(), scope, tenantID); err != nil {
		h.writeDomainError(w, "tenants.delete", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "delete", "tenant", tenantID, "")
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
