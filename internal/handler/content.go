package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellcms/inkwell/internal/model"
	"github.com/inkwellcms/inkwell/internal/store"
)

// ContentHandler serves CRUD for the three content collections. Listing and
// reading are public; writes sit behind the auth middleware at the router.
type ContentHandler struct {
	store store.ContentStore
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(s store.ContentStore) *ContentHandler {
	return &ContentHandler{store: s}
}

// ---------------------------------------------------------------------------
// Blog posts
// ---------------------------------------------------------------------------

// CreateBlogPost persists a new blog post.
// POST /blog
func (h *ContentHandler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	var post model.BlogPost
	if err := readJSON(r, &post); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if post.Title == "" || post.Slug == "" || post.Content == "" {
		writeError(w, http.StatusBadRequest, "Title, slug, and content are required")
		return
	}
	if post.Status == "" {
		post.Status = model.StatusDraft
	}
	normalizeBlogPost(&post)

	if err := h.store.CreateBlogPost(r.Context(), &post); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create blog post")
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// ListBlogPosts returns blog posts, optionally filtered by ?status=.
// GET /blog
func (h *ContentHandler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListBlogPosts(r.Context(), queryString(r, "status"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list blog posts")
		return
	}
	writeJSON(w, http.StatusOK, model.ListResponse{
		Resource: posts,
		Meta:     &model.ResponseMeta{Count: len(posts)},
	})
}

// GetBlogPost returns one blog post by ID.
// GET /blog/{id}
func (h *ContentHandler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.store.GetBlogPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err, "blog post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// UpdateBlogPost replaces a blog post.
// PUT /blog/{id}
func (h *ContentHandler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	var post model.BlogPost
	if err := readJSON(r, &post); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	post.ID = chi.URLParam(r, "id")
	if post.Title == "" || post.Slug == "" || post.Content == "" {
		writeError(w, http.StatusBadRequest, "Title, slug, and content are required")
		return
	}
	normalizeBlogPost(&post)

	if err := h.store.UpdateBlogPost(r.Context(), &post); err != nil {
		h.writeStoreError(w, err, "blog post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// DeleteBlogPost removes a blog post.
// DELETE /blog/{id}
func (h *ContentHandler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteBlogPost(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, err, "blog post")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ---------------------------------------------------------------------------
// Partner logos
// ---------------------------------------------------------------------------

// CreatePartnerLogo persists a new partner logo.
// POST /partners
func (h *ContentHandler) CreatePartnerLogo(w http.ResponseWriter, r *http.Request) {
	logo, ok := h.decodeLogo(w, r)
	if !ok {
		return
	}
	if err := h.store.CreatePartnerLogo(r.Context(), logo); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create partner logo")
		return
	}
	writeJSON(w, http.StatusCreated, logo)
}

// ListPartnerLogos returns logos sorted by display order, optionally
// filtered by ?active=.
// GET /partners
func (h *ContentHandler) ListPartnerLogos(w http.ResponseWriter, r *http.Request) {
	logos, err := h.store.ListPartnerLogos(r.Context(), queryBoolPtr(r, "active"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list partner logos")
		return
	}
	writeJSON(w, http.StatusOK, model.ListResponse{
		Resource: logos,
		Meta:     &model.ResponseMeta{Count: len(logos)},
	})
}

// GetPartnerLogo returns one logo by ID.
// GET /partners/{id}
func (h *ContentHandler) GetPartnerLogo(w http.ResponseWriter, r *http.Request) {
	logo, err := h.store.GetPartnerLogo(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err, "partner logo")
		return
	}
	writeJSON(w, http.StatusOK, logo)
}

// UpdatePartnerLogo replaces a logo.
// PUT /partners/{id}
func (h *ContentHandler) UpdatePartnerLogo(w http.ResponseWriter, r *http.Request) {
	logo, ok := h.decodeLogo(w, r)
	if !ok {
		return
	}
	logo.ID = chi.URLParam(r, "id")
	if err := h.store.UpdatePartnerLogo(r.Context(), logo); err != nil {
		h.writeStoreError(w, err, "partner logo")
		return
	}
	writeJSON(w, http.StatusOK, logo)
}

// DeletePartnerLogo removes a logo.
// DELETE /partners/{id}
func (h *ContentHandler) DeletePartnerLogo(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePartnerLogo(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, err, "partner logo")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *ContentHandler) decodeLogo(w http.ResponseWriter, r *http.Request) (*model.PartnerLogo, bool) {
	var logo model.PartnerLogo
	logo.IsActive = true // default for omitted field
	if err := readJSON(r, &logo); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	if logo.Name == "" || logo.ImageURL == "" || logo.Alt == "" {
		writeError(w, http.StatusBadRequest, "Name, image_url, and alt are required")
		return nil, false
	}
	return &logo, true
}

// ---------------------------------------------------------------------------
// Case studies
// ---------------------------------------------------------------------------

// CreateCaseStudy persists a new case study.
// POST /cases
func (h *ContentHandler) CreateCaseStudy(w http.ResponseWriter, r *http.Request) {
	var cs model.CaseStudy
	if err := readJSON(r, &cs); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if cs.Title == "" || cs.Slug == "" || cs.Client == "" {
		writeError(w, http.StatusBadRequest, "Title, slug, and client are required")
		return
	}
	if cs.Status == "" {
		cs.Status = model.StatusDraft
	}
	normalizeCaseStudy(&cs)

	if err := h.store.CreateCaseStudy(r.Context(), &cs); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create case study")
		return
	}
	writeJSON(w, http.StatusCreated, cs)
}

// ListCaseStudies returns case studies, optionally filtered by ?status=.
// GET /cases
func (h *ContentHandler) ListCaseStudies(w http.ResponseWriter, r *http.Request) {
	cases, err := h.store.ListCaseStudies(r.Context(), queryString(r, "status"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list case studies")
		return
	}
	writeJSON(w, http.StatusOK, model.ListResponse{
		Resource: cases,
		Meta:     &model.ResponseMeta{Count: len(cases)},
	})
}

// GetCaseStudy returns one case study by ID.
// GET /cases/{id}
func (h *ContentHandler) GetCaseStudy(w http.ResponseWriter, r *http.Request) {
	cs, err := h.store.GetCaseStudy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, err, "case study")
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// UpdateCaseStudy replaces a case study.
// PUT /cases/{id}
func (h *ContentHandler) UpdateCaseStudy(w http.ResponseWriter, r *http.Request) {
	var cs model.CaseStudy
	if err := readJSON(r, &cs); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	cs.ID = chi.URLParam(r, "id")
	if cs.Title == "" || cs.Slug == "" || cs.Client == "" {
		writeError(w, http.StatusBadRequest, "Title, slug, and client are required")
		return
	}
	normalizeCaseStudy(&cs)

	if err := h.store.UpdateCaseStudy(r.Context(), &cs); err != nil {
		h.writeStoreError(w, err, "case study")
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// DeleteCaseStudy removes a case study.
// DELETE /cases/{id}
func (h *ContentHandler) DeleteCaseStudy(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCaseStudy(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStoreError(w, err, "case study")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ---------------------------------------------------------------------------

func (h *ContentHandler) writeStoreError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "Failed to access "+what)
}

// normalizeBlogPost replaces nil slices so listings always serialize arrays.
func normalizeBlogPost(post *model.BlogPost) {
	if post.Categories == nil {
		post.Categories = []string{}
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
}

func normalizeCaseStudy(cs *model.CaseStudy) {
	if cs.Tags == nil {
		cs.Tags = []string{}
	}
	if cs.Gallery == nil {
		cs.Gallery = []string{}
	}
}
