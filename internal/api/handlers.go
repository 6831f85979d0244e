package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/starford/notatnik/internal/apperr"
	"github.com/starford/notatnik/internal/models"
	"github.com/starford/notatnik/internal/noteservice"
	"github.com/starford/notatnik/internal/notestore"
	"github.com/starford/notatnik/internal/sse"
)

// Notifier receives note-list mutations after they are persisted.
type Notifier interface {
	PublishNoteEvent(kind string, entry models.Entry)
}

type noopNotifier struct{}

func (noopNotifier) PublishNoteEvent(string, models.Entry) {}

// Handler holds API route handlers. The store has a single owner, so every
// request runs under mu.
type Handler struct {
	mu       sync.Mutex
	store    *notestore.Store
	logger   *slog.Logger
	notifier Notifier
}

// NewHandler creates a new Handler. notifier may be nil.
func NewHandler(store *notestore.Store, logger *slog.Logger, notifier Notifier) *Handler {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Handler{store: store, logger: logger, notifier: notifier}
}

// ListResponse is the body of GET /notes.
type ListResponse struct {
	Notes []models.Entry `json:"notes"`
	Total int            `json:"total"`
}

// AddRequest is the body of POST /notes.
type AddRequest struct {
	Text *string `json:"text"`
}

// RemoveResponse is the body of a successful DELETE /notes/{index}.
type RemoveResponse struct {
	Removed string `json:"removed"`
}

// ListNotes handles GET /api/notes.
func (h *Handler) ListNotes(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	entries := h.store.Entries()
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, ListResponse{Notes: entries, Total: len(entries)})
}

// AddNote handles POST /api/notes.
func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Text == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("text is required"))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.Add(*req.Text); err != nil {
		if errors.Is(err, apperr.ErrInvalidText) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		h.logger.Error("add note failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	entry := models.Entry{Index: h.store.Len() - 1, Text: *req.Text}
	h.notifier.PublishNoteEvent(sse.KindAdded, entry)
	writeJSON(w, http.StatusCreated, entry)
}

// RemoveNote handles DELETE /api/notes/{index}.
func (h *Handler) RemoveNote(w http.ResponseWriter, r *http.Request) {
	index, err := noteservice.ParseIndex(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody(noteservice.MsgInvalidIndex))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	res, err := h.store.Remove(index)
	if err != nil {
		h.logger.Error("remove note failed", slog.Int("index", index), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if res.Status == notestore.InvalidIndex {
		writeJSON(w, http.StatusNotFound, errorBody(noteservice.MsgInvalidIndex))
		return
	}
	h.notifier.PublishNoteEvent(sse.KindRemoved, models.Entry{Index: index, Text: res.Note})
	writeJSON(w, http.StatusOK, RemoveResponse{Removed: res.Note})
}
