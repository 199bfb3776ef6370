package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/respond"
)

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Version int    `json:"version"`
}

// NotesHandler serves the demo notes resource through the respond helpers.
type NotesHandler struct {
	store  *NoteStore
	logger *zap.Logger
}

func NewNotesHandler(store *NoteStore, logger *zap.Logger) *NotesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotesHandler{store: store, logger: logger}
}

func (h *NotesHandler) List(ctx *fasthttp.RequestCtx) {
	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 50)
	offset := parseInt(string(ctx.QueryArgs().Peek("offset")), 0)

	notes, total := h.store.List(limit, offset)
	respond.From(ctx).Success(respond.Options{
		Data: notes,
		Meta: map[string]any{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}

func (h *NotesHandler) Create(ctx *fasthttp.RequestCtx) {
	r := respond.From(ctx)

	req, ok := h.parseNote(ctx)
	if !ok {
		return
	}
	if fieldErrors := validateNote(req); len(fieldErrors) > 0 {
		r.UnprocessableEntity(respond.Options{Errors: fieldErrors})
		return
	}

	note := h.store.Create(req.Title, req.Content)
	h.logger.Info("note created", zap.String("note_id", note.ID))
	r.Created(respond.Options{
		Data:    note,
		Headers: map[string]string{"Location": "/api/v1/notes/" + note.ID},
	})
}

func (h *NotesHandler) Get(ctx *fasthttp.RequestCtx) {
	r := respond.From(ctx)

	note, err := h.store.Get(noteID(ctx))
	switch {
	case errors.Is(err, errNoteDeleted):
		r.Gone()
	case errors.Is(err, errNoteNotFound):
		r.NotFound()
	default:
		r.Success(respond.Options{Data: note})
	}
}

func (h *NotesHandler) Update(ctx *fasthttp.RequestCtx) {
	r := respond.From(ctx)

	req, ok := h.parseNote(ctx)
	if !ok {
		return
	}
	if fieldErrors := validateNote(req); len(fieldErrors) > 0 {
		r.UnprocessableEntity(respond.Options{Errors: fieldErrors})
		return
	}

	note, err := h.store.Update(noteID(ctx), req.Version, req.Title, req.Content)
	switch {
	case errors.Is(err, errVersionMismatch):
		r.Conflict(respond.Options{Message: "Note was modified by another request"})
	case errors.Is(err, errNoteDeleted):
		r.Gone()
	case errors.Is(err, errNoteNotFound):
		r.NotFound()
	default:
		r.Success(respond.Options{Message: "Note updated", Data: note})
	}
}

// Archive marks the note for background archival and answers 202; the demo
// has no real queue behind it.
func (h *NotesHandler) Archive(ctx *fasthttp.RequestCtx) {
	r := respond.From(ctx)

	note, err := h.store.Archive(noteID(ctx))
	switch {
	case errors.Is(err, errNoteDeleted):
		r.Gone()
	case errors.Is(err, errNoteNotFound):
		r.NotFound()
	default:
		r.Accepted(respond.Options{Message: "Archival scheduled", Data: note})
	}
}

func (h *NotesHandler) Delete(ctx *fasthttp.RequestCtx) {
	r := respond.From(ctx)

	err := h.store.Delete(noteID(ctx))
	switch {
	case errors.Is(err, errNoteDeleted):
		r.Gone()
	case errors.Is(err, errNoteNotFound):
		r.NotFound()
	default:
		h.logger.Info("note deleted", zap.String("note_id", noteID(ctx)))
		r.NoContent()
	}
}

func (h *NotesHandler) Export(ctx *fasthttp.RequestCtx) {
	respond.From(ctx).NotImplemented(respond.Options{
		Message: "Note export is not available yet",
	})
}

// parseNote decodes the JSON request body, answering 415/400 itself when
// the payload is unusable.
func (h *NotesHandler) parseNote(ctx *fasthttp.RequestCtx) (noteRequest, bool) {
	r := respond.From(ctx)

	contentType := ctx.Request.Header.ContentType()
	if !bytes.HasPrefix(contentType, []byte("application/json")) {
		r.UnsupportedMediaType(respond.Options{
			Message: fmt.Sprintf("Content-Type %q is not supported", contentType),
		})
		return noteRequest{}, false
	}

	var req noteRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		r.BadRequest(respond.Options{
			Message: "Request body is not valid JSON",
			Errors:  map[string]any{"body": err.Error()},
		})
		return noteRequest{}, false
	}
	return req, true
}

func validateNote(req noteRequest) map[string]string {
	fieldErrors := make(map[string]string)
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if len(req.Title) > 200 {
		fieldErrors["title"] = "Title must be at most 200 characters"
	}
	return fieldErrors
}

func noteID(ctx *fasthttp.RequestCtx) string {
	if id, ok := ctx.UserValue("id").(string); ok {
		return id
	}
	return ""
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
