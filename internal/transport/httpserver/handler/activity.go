package handler

import (
	"net/http"
)

func (h *Handlers) ListActivity(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.scopeFor(w, r); !ok {
		return
	}

	limit, err := parseIntParam(r.URL.Query().Get("limit"), 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}

	items, err := h.Activity.ListRecent(r.Context(), limit)
	if err != nil {
		h.writeDomainError(w, "activity.list", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
