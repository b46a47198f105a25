package handler

import (
	"net/http"

	"github.com/inkwellcms/inkwell/internal/store"
)

// SystemHandler serves the root banner and the schema listing consumed by
// the admin frontend's collection browser.
type SystemHandler struct{}

// NewSystemHandler creates a SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// Root responds with a plain liveness message.
// GET /
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Inkwell CMS backend running",
	})
}

// Schema lists the document collections the backend manages.
// GET /schema
func (h *SystemHandler) Schema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"collections": store.Collections(),
	})
}
