package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	pkgdomain "rental-app-go/internal/domain/pkgdelivery"
	"rental-app-go/internal/notify"
)

type packageRequest struct {
	PropertyID  string          `json:"property_id"`
	UserID      string          `json:"user_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

func (h *Handlers) ListPackages(w http.ResponseWriter, r *http.Request) {
	_, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	items, err := h.Packages.List(r.Context(), scope)
	if err != nil {
		h.writeDomainError(w, "packages.list", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req packageRequest
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

	pkg, err := h.Packages.Create(r.Context(), scope, pkgdomain.CreateInput{
		PropertyID:  req.PropertyID,
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		h.writeDomainError(w, "packages.create", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "create", "package", pkg.ID, pkg.Name)
	writeJSON(w, http.StatusCreated, pkg)
}

func (h *Handlers) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	var req packageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	pkg, err := h.Packages.Update(r.Context(), scope, pkgdomain.UpdateInput{
		PackageID:   chi.URLParam(r, "id"),
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		h.writeDomainError(w, "packages.update", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "package", pkg.ID, pkg.Name)
	writeJSON(w, http.StatusOK, pkg)
}

func (h *Handlers) ReceivePackage(w http.ResponseWriter, r *http.Request) {
	principal, _, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	pkg, err := h.Packages.MarkReceived(r.Context(), principal.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "packages.receive", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "update", "package", pkg.ID, "received")
	writeJSON(w, http.StatusOK, pkg)
}

// NotifyPackage pushes an arrival notice to the recipient, best effort.
func (h *Handlers) NotifyPackage(w http.ResponseWriter, r *http.Request) {
	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}
	if !scope.Manages() {
		writeError(w, http.StatusForbidden, "forbidden", "not allowed")
		return
	}

	detail, err := h.Packages.GetDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, "packages.notify", err)
		return
	}
	if !scope.AllowsProperty(detail.PropertyID) {
		writeError(w, http.StatusForbidden, "forbidden", "not allowed")
		return
	}

	h.Notifier.Send(r.Context(), detail.RecipientLineID, notify.Message{
		Title: "Package arrived",
		Text:  detail.Name + " is waiting for pickup.",
		Lines: []notify.MessageLine{
			{Label: "Property", Value: detail.PropertyName},
			{Label: "Package", Value: detail.Name},
		},
	})

	h.Activity.Record(r.Context(), principal.ID, "notify", "package", detail.ID, detail.RecipientName)
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *Handlers) DeletePackage(w http.ResponseWriter, r *http.Request) {
	principal, scope, ok := h.scopeFor(w, r)
	if !ok {
		return
	}

	packageID := chi.URLParam(r, "id")
	if err := h.Packages.Delete(r.Context(), scope, packageID); err != nil {
		h.writeDomainError(w, "packages.delete", err)
		return
	}

	h.Activity.Record(r.Context(), principal.ID, "delete", "package", packageID, "")
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
