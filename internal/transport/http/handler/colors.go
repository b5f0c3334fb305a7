package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/journal-api/internal/application/color"
	"github.com/journal-api/internal/domain"
	"github.com/journal-api/internal/pkg/id"
	"github.com/journal-api/internal/pkg/validate"
)

type ColorHandler struct {
	colors color.Service
}

func NewColorHandler(colors color.Service) *ColorHandler {
	return &ColorHandler{colors: colors}
}

// Create handles POST /createColor.
func (h *ColorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.colors.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// List handles GET /getColors.
func (h *ColorHandler) List(w http.ResponseWriter, r *http.Request) {
	cs, err := h.colors.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// Names handles GET /getColorsNames. Same records as List, but image keys
// stay raw: this endpoint feeds dropdowns that never render images, so no
// URL signing round-trips.
func (h *ColorHandler) Names(w http.ResponseWriter, r *http.Request) {
	cs, err := h.colors.Names(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

// Get handles GET /getColorById/{id}.
func (h *ColorHandler) Get(w http.ResponseWriter, r *http.Request) {
	colorID := chi.URLParam(r, "id")
	if !id.Valid(colorID) {
		writeError(w, http.StatusBadRequest, "invalid color id")
		return
	}

	c, err := h.colors.Get(r.Context(), colorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Update handles POST /updateColor.
func (h *ColorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !id.Valid(req.ID) {
		writeError(w, http.StatusBadRequest, "invalid color id")
		return
	}

	c, err := h.colors.Update(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Delete handles POST /deleteColor.
func (h *ColorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !id.Valid(req.ID) {
		writeError(w, http.StatusBadRequest, "invalid color id")
		return
	}

	if err := h.colors.Delete(r.Context(), req.ID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "color deleted"})
}

// UploadImage handles POST /uploadColor/{id}.
func (h *ColorHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	colorID := chi.URLParam(r, "id")
	if !id.Valid(colorID) {
		writeError(w, http.StatusBadRequest, "invalid color id")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	f, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer f.Close()

	c, err := h.colors.UploadImage(r.Context(), colorID, f, header.Header.Get("Content-Type"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
