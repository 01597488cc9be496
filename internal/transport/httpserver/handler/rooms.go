package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	propertydomain "rental-app-go/internal/domain/property"
)

type roomRequest struct {
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	Description  string          `json:"description"`
	PriceMonthly decimal.Decimal `json:"price_monthly"`
	PriceTerm    decimal.Decimal `json:"price_term"`
	Deposit      decimal.Decimal `json:"deposit"`
	HasAC        bool            `json:"has_ac"`
	HasFan       bool            `json:"has_fan"`
}

func (h *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.scopeFor(w, r); !ok {
		return
	}

	rooms, err := h.Properties.ListRooms(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "rooms.list", err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "code is required")
		return
	}

	room, err := h.Properties.CreateRoom(r.Context(), scope, propertydomain.CreateRoomInput{
		PropertyID:   chi.URLParam(r, "id"),
		Name:         req.Name,
		Code:         req.Code,
		Description:  req.Description,
		PriceMonthly: req.PriceMonthly,
		PriceTerm:    req.PriceTerm,
		Deposit:      req.Deposit,
		HasAC:        req.HasAC,
		HasFan:       req.HasFan,
	})
	if err != nil {
		h.writeDomainError(w, "rooms.create", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "create", "room", room.ID, room.Code)
	writeJSON(w, http.StatusCreated, room)
}

func (h *Handlers) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "code is required")
		return
	}

	room, err := h.Properties.UpdateRoom(r.Context(), scope, propertydomain.UpdateRoomInput{
		RoomID:       chi.URLParam(r, "id"),
		Name:         req.Name,
		Code:         req.Code,
		Description:  req.Description,
		PriceMonthly: req.PriceMonthly,
		PriceTerm:    req.PriceTerm,
		Deposit:      req.Deposit,
		HasAC:        req.HasAC,
		HasFan:       req.HasFan,
	})
	if err != nil {
		h.writeDomainError(w, "rooms.update", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "room", room.ID, room.Code)
	writeJSON(w, http.StatusOK, room)
}

func (h *Handlers) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	roomID := chi.URLParam(r, "id")
	if err := h.Properties.DeleteRoom(r.Context(), scope, roomID); err != nil {
		h.writeDomainError(w, "rooms.delete", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "delete", "room", roomID, "")
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
