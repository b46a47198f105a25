package handler

import (
	"net/http"
	"strings"

	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/store"
)

// LeadHandler captures contact-form submissions from unauthenticated
// visitors and lists them for admins.
type LeadHandler struct {
	store store.LeadStore
}

// NewLeadHandler creates a LeadHandler.
func NewLeadHandler(s store.LeadStore) *LeadHandler {
	return &LeadHandler{store: s}
}

// CreateLead records a visitor submission. No authentication; the route is
// rate-limited at the router instead.
// POST /leads
func (h *LeadHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var lead model.Lead
	if err := readJSON(r, &lead); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if lead.Name == "" || lead.Message == "" {
		writeError(w, http.StatusBadRequest, "Name and message are required")
		return
	}
	if !strings.Contains(lead.Email, "@") {
		writeError(w, http.StatusBadRequest, "A valid email address is required")
		return
	}

	if err := h.store.CreateLead(r.Context(), &lead); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record lead")
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

// ListLeads returns all captured leads, newest first.
// GET /leads
func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.store.ListLeads(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leads")
		return
	}
	writeJSON(w, http.StatusOK, model.ListResponse{
		Resource: leads,
		Meta:     &model.ResponseMeta{Count: len(leads)},
	})
}
