package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/journal-api/internal/application/file"
	"github.com/journal-api/internal/pkg/id"
)

type FileHandler struct {
	files file.Service
}

func NewFileHandler(files file.Service) *FileHandler {
	return &FileHandler{files: files}
}

// Upload handles POST /uploadFile. Expects a multipart form with a
// "document" part plus "subType" and optional "title" fields.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	f, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing document file")
		return
	}
	defer f.Close()

	subType := r.FormValue("subType")
	if subType == "" {
		writeError(w, http.StatusBadRequest, "subType is required")
		return
	}

	rec, err := h.files.Upload(r.Context(), file.UploadInput{
		Reader:      f,
		ContentType: header.Header.Get("Content-Type"),
		SubType:     subType,
		Title:       r.FormValue("title"),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// List handles GET /getFiles.
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	fs, err := h.files.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fs)
}

type signedURLEnvelope struct {
	URL string `json:"url"`
}

// Get handles GET /getFile/{id}: a time-limited download link for the
// attachment. Malformed ids are rejected before any store access.
func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "id")
	if !id.Valid(fileID) {
		writeError(w, http.StatusBadRequest, "invalid file id")
		return
	}

	url, err := h.files.SignedURL(r.Context(), fileID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, signedURLEnvelope{URL: url})
}

// Delete handles DELETE /deleteFile/{id}.
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "id")
	if !id.Valid(fileID) {
		writeError(w, http.StatusBadRequest, "invalid file id")
		return
	}

	rec, err := h.files.Delete(r.Context(), fileID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
