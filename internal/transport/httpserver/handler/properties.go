package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	accessdomain "rental-app-go/internal/domain/access"
	propertydomain "rental-app-go/internal/domain/property"
)

type createPropertyRequest struct {
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	Image        string          `json:"image"`
	Description  string          `json:"description"`
	OwnerID      string          `json:"owner_id"`
	ElectricRate decimal.Decimal `json:"electric_rate"`
	WaterRate    decimal.Decimal `json:"water_rate"`
}

type updatePropertyRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

type assignmentRequest struct {
	UserID string `json:"user_id"`
}

type setRateRequest struct {
	Type          string          `json:"type"`
	Rate          decimal.Decimal `json:"rate"`
	EffectiveFrom string          `json:"effective_from"`
}

func (h *Handlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	_, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	var (
		items []propertydomain.PropertyWithStats
		err   error
	)
	if scope.Manages() {
		items, err = h.Properties.ListManagedProperties(r.Context(), scope)
	} else {
		items, err = h.Properties.ListProperties(r.Context())
	}
	if err != nil {
		h.writeDomainError(w, "properties.list", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) GetProperty(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.scopeFor(w, r); !ok {
		return
	}

	property, err := h.Properties.GetProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "properties.get", err)
		return
	}
	writeJSON(w, http.StatusOK, property)
}

func (h *Handlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}
	if scope.Kind != accessdomain.Unrestricted {
		writeError(w, http.StatusForbidden, "forbidden", "not allowed")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	property, err := h.Properties.CreateProperty(r.Context(), propertydomain.CreatePropertyInput{
		Name:         req.Name,
		Address:      req.Address,
		Image:        req.Image,
		Description:  req.Description,
		OwnerID:      req.OwnerID,
		ElectricRate: req.ElectricRate,
		WaterRate:    req.WaterRate,
	})
	if err != nil {
		h.writeDomainError(w, "properties.create", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "create", "property", property.ID, property.Name)
	writeJSON(w, http.StatusCreated, property)
}

func (h *Handlers) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	var req updatePropertyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	property, err := h.Properties.UpdateProperty(r.Context(), scope, propertydomain.UpdatePropertyInput{
		ID:          chi.URLParam(r, "id"),
		Name:        req.Name,
		Address:     req.Address,
		Image:       req.Image,
		Description: req.Description,
	})
	if err != nil {
		h.writeDomainError(w, "properties.update", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "property", property.ID, property.Name)
	writeJSON(w, http.StatusOK, property)
}

func (h *Handlers) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	propertyID := chi.URLParam(r, "id")
	if err := h.Properties.DeleteProperty(r.Context(), scope, propertyID); err != nil {
		h.writeDomainError(w, "properties.delete", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "delete", "property", propertyID, "")
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handlers) AssignOwner(w http.ResponseWriter, r *http.Request) {
	h.assign(w, r, "properties.assign_owner", h.Properties.AssignOwner)
}

func (h *Handlers) RemoveOwner(w http.ResponseWriter, r *http.Request) {
	h.assign(w, r, "properties.remove_owner", h.Properties.RemoveOwner)
}

func (h *Handlers) AssignStaff(w http.ResponseWriter, r *http.Request) {
	h.assign(w, r, "properties.assign_staff", h.Properties.AssignStaff)
}

func (h *Handlers) RemoveStaff(w http.ResponseWriter, r *http.Request) {
	h.assign(w, r, "properties.remove_staff", h.Properties.RemoveStaff)
}

func (h *Handlers) assign(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context, scope accessdomain.Scope, propertyID, userID string) error) {
	var req assignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_id is required")
		return
	}

	propertyID := chi.URLParam(r, "id")
	if err := fn(r.Context(), scope, propertyID, req.UserID); err != nil {
		h.writeDomainError(w, op, err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "property", propertyID, op)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) SetUtilityRate(w http.ResponseWriter, r *http.Request) {
	var req setRateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	effectiveFrom := time.Now().UTC()
	if strings.TrimSpace(req.EffectiveFrom) != "" {
		parsed, err := parseDateRequired(req.EffectiveFrom)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid effective_from date")
			return
		}
		effectiveFrom = parsed
	}

	rate, err := h.Properties.SetUtilityRate(r.Context(), scope, propertydomain.SetRateInput{
		PropertyID:    chi.URLParam(r, "id"),
		Type:          propertydomain.UtilityType(req.Type),
		Rate:          req.Rate,
		EffectiveFrom: effectiveFrom,
	})
	if err != nil {
		h.writeDomainError(w, "properties.set_rate", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "utility_rate", rate.ID, string(rate.Type))
	writeJSON(w, http.StatusOK, rate)
}

func (h *Handlers) ListRateHistory(w http.ResponseWriter, r *http.Request) {
	_, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	rates, err := h.Properties.ListRateHistory(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "properties.rate_history", err)
		return
	}
	writeJSON(w, http.StatusOK, rates)
}
