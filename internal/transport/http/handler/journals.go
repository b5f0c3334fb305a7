package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/journal-api/internal/application/journal"
	"github.com/journal-api/internal/domain"
	"github.com/journal-api/internal/pkg/id"
	"github.com/journal-api/internal/pkg/validate"
)

// maxUploadBytes caps multipart upload memory before spilling to disk.
const maxUploadBytes = 32 << 20

type JournalHandler struct {
	journals journal.Service
}

func NewJournalHandler(journals journal.Service) *JournalHandler {
	return &JournalHandler{journals: journals}
}

// Create handles POST /createJournal.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	j, err := h.journals.Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

// List handles GET /getJournals.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	js, err := h.journals.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, js)
}

// Latest handles GET /getJournal: the most recently created article.
func (h *JournalHandler) Latest(w http.ResponseWriter, r *http.Request) {
	j, err := h.journals.Latest(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

// Get handles GET /getJournalById/{id}.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	journalID := chi.URLParam(r, "id")
	if !id.Valid(journalID) {
		writeError(w, http.StatusBadRequest, "invalid journal id")
		return
	}

	j, err := h.journals.Get(r.Context(), journalID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

// Update handles POST /updateJournal.
func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !id.Valid(req.ID) {
		writeError(w, http.StatusBadRequest, "invalid journal id")
		return
	}

	j, err := h.journals.Update(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

type deleteRequest struct {
	ID string `json:"id"`
}

// Delete handles POST /deleteJournal.
func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !id.Valid(req.ID) {
		writeError(w, http.StatusBadRequest, "invalid journal id")
		return
	}

	if err := h.journals.Delete(r.Context(), req.ID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "journal deleted"})
}

// UploadImage handles POST /uploadArticlePhoto/{id}. Expects a multipart
// form with an "image" part; any previous image object is replaced.
func (h *JournalHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	journalID := chi.URLParam(r, "id")
	if !id.Valid(journalID) {
		writeError(w, http.StatusBadRequest, "invalid journal id")
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

	j, err := h.journals.UploadImage(r.Context(), journalID, f, header.Header.Get("Content-Type"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}
