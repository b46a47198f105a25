package handler

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxUploadBytes bounds a single media upload.
const maxUploadBytes = 20 << 20 // 20MB

// MediaHandler stores uploaded files under a local directory and serves them
// back. A pass-through placeholder for object storage.
type MediaHandler struct {
	dir string
}

// NewMediaHandler creates a MediaHandler rooted at dir, creating the
// directory if needed.
func NewMediaHandler(dir string) (*MediaHandler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &MediaHandler{dir: dir}, nil
}

// Upload saves the multipart "file" field under a generated name and returns
// the public URL.
// POST /media/upload
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	// Generated name: timestamp plus random suffix, original extension kept.
	ext := filepath.Ext(header.Filename)
	name := time.Now().UTC().Format("20060102150405") + "-" + uuid.NewString()[:8] + ext

	dst, err := os.Create(filepath.Join(h.dir, name))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"url":  "/media/" + name,
		"name": header.Filename,
	})
}

// Serve streams a stored file back to the client.
// GET /media/{name}
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	// Base strips any path components, so ../ traversal cannot escape dir.
	name := filepath.Base(chi.URLParam(r, "name"))
	path := filepath.Join(h.dir, name)

	if info, err := os.Stat(path); err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	http.ServeFile(w, r, path)
}
