package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	maintenancedomain "rental-app-go/internal/domain/maintenance"
)

type maintenanceRequest struct {
	RoomID      string `json:"room_id"`
	Description string `json:"description"`
}

type maintenanceStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handlers) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	_, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	items, err := h.Maintenance.List(r.Context(), scope)
	if err != nil {
		h.writeDomainError(w, "maintenance.list", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) ListMyMaintenance(w http.ResponseWriter, r *http.Request) {
	principal, _, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	items, err := h.Maintenance.ListMine(r.Context(), principal.ID)
	if err != nil {
		h.writeDomainError(w, "maintenance.list_mine", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	var req maintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, _, ok := h.scopeFor(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "description is required")
		return
	}

	request, err := h.Maintenance.Create(r.Context(), maintenancedomain.CreateInput{
		UserID:      principal.ID,
		RoomID:      req.RoomID,
		Description: req.Description,
	})
	if err != nil {
		h.writeDomainError(w, "maintenance.create", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "create", "maintenance_request", request.ID, "")
	writeJSON(w, http.StatusCreated, request)
}

func (h *Handlers) UpdateMaintenance(w http.ResponseWriter, r *http.Request) {
	var req maintenanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, _, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	request, err := h.Maintenance.Update(r.Context(), maintenancedomain.UpdateInput{
		RequestID:   chi.URLParam(r, "id"),
		UserID:      principal.ID,
		RoomID:      req.RoomID,
		Description: req.Description,
	})
	if err != nil {
		h.writeDomainError(w, "maintenance.update", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "maintenance_request", request.ID, "")
	writeJSON(w, http.StatusOK, request)
}

func (h *Handlers) CancelMaintenance(w http.ResponseWriter, r *http.Request) {
	principal, _, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	request, err := h.Maintenance.Cancel(r.Context(), principal.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "maintenance.cancel", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "maintenance_request", request.ID, "cancelled")
	writeJSON(w, http.StatusOK, request)
}

func (h *Handlers) SetMaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	var req maintenanceStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}
	if !scope.Manages() {
		writeError(w, http.StatusForbidden, "forbidden", "not allowed")
		return
	}

	request, err := h.Maintenance.SetStatus(r.Context(), scope, chi.URLParam(r, "id"), maintenancedomain.Status(req.Status))
	if err != nil {
		h.writeDomainError(w, "maintenance.set_status", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "maintenance_request", request.ID, req.Status)
	writeJSON(w, http.StatusOK, request)
}

func (h *Handlers) DeleteMaintenance(w http.ResponseWriter, r *http.Request) {
	principal, _, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	if err := h.Maintenance.Delete(r.Context(), principal.ID, requestID); err != nil {
		h.writeDomainError(w, "maintenance.delete", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "delete", "maintenance_request", requestID, "")
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
