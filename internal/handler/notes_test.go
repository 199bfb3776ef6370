package handler

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func newJSONCtx(method string, body string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	if body != "" {
		ctx.Request.Header.SetContentType("application/json")
		ctx.Request.SetBodyString(body)
	}
	return ctx
}

func envelope(t *testing.T, ctx *fasthttp.RequestCtx) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	return body
}

func createNote(t *testing.T, h *NotesHandler, title string) map[string]any {
	t.Helper()
	ctx := newJSONCtx(fasthttp.MethodPost, fmt.Sprintf(`{"title":%q,"content":"body"}`, title))
	h.Create(ctx)
	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())
	data, ok := envelope(t, ctx)["data"].(map[string]any)
	require.True(t, ok)
	return data
}

func TestNotesCreate(t *testing.T) {
	h := NewNotesHandler(NewNoteStore(), nil)

	ctx := newJSONCtx(fasthttp.MethodPost, `{"title":"groceries","content":"milk"}`)
	h.Create(ctx)

	require.Equal(t, fasthttp.StatusCreated, ctx.Response.StatusCode())
	body := envelope(t, ctx)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Resource created", body["message"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "groceries", data["title"])
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "/api/v1/notes/"+data["id"].(string), string(ctx.Response.Header.Peek("Location")))
}

func TestNotesCreateRejectsBadInput(t *testing.T) {
	h := NewNotesHandler(NewNoteStore(), nil)

	t.Run("wrong content type", func(t *testing.T) {
		ctx := &fasthttp.RequestCtx{}
		ctx.Request.Header.SetMethod(fasthttp.MethodPost)
		ctx.Request.Header.SetContentType("text/plain")
		ctx.Request.SetBodyString("not json")
		h.Create(ctx)

		assert.Equal(t, fasthttp.StatusUnsupportedMediaType, ctx.Response.StatusCode())
		assert.Equal(t, "error", envelope(t, ctx)["status"])
	})

	t.Run("malformed json", func(t *testing.T) {
		ctx := newJSONCtx(fasthttp.MethodPost, `{"title":`)
		h.Create(ctx)

		assert.Equal(t, fasthttp.StatusBadRequest, ctx.Response.StatusCode())
		body := envelope(t, ctx)
		assert.Equal(t, "Request body is not valid JSON", body["message"])
		assert.Contains(t, body["errors"].(map[string]any), "body")
	})

	t.Run("missing title", func(t *testing.T) {
		ctx := newJSONCtx(fasthttp.MethodPost, `{"content":"milk"}`)
		h.Create(ctx)

		assert.Equal(t, fasthttp.StatusUnprocessableEntity, ctx.Response.StatusCode())
		errs := envelope(t, ctx)["errors"].(map[string]any)
		assert.Equal(t, "Title is required", errs["title"])
	})
}

func TestNotesList(t *testing.T) {
	h := NewNotesHandler(NewNoteStore(), nil)
	createNote(t, h, "first")
	createNote(t, h, "second")

	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(fasthttp.MethodGet)
	ctx.Request.SetRequestURI("/api/v1/notes?limit=1")
	h.List(ctx)

	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	body := envelope(t, ctx)
	assert.Len(t, body["data"], 1)

	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(2), meta["total"])
	assert.Equal(t, float64(1), meta["limit"])
	assert.Equal(t, float64(0), meta["offset"])
}

func TestNotesGet(t *testing.T) {
	h := NewNotesHandler(NewNoteStore(), nil)
	created := createNote(t, h, "findme")

	t.Run("found", func(t *testing.T) {
		ctx := &fasthttp.RequestCtx{}
		ctx.SetUserValue("id", created["id"])
		h.Get(ctx)

		assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
		data := envelope(t, ctx)["data"].(map[string]any)
		assert.Equal(t, "findme", data["title"])
	})

	t.Run("unknown id", func(t *testing.T) {
		ctx := &fasthttp.RequestCtx{}
		ctx.SetUserValue("id", "nope")
		h.Get(ctx)

		assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
		body := envelope(t, ctx)
		assert.Equal(t, "Not Found", body["message"])
		assert.NotContains(t, body, "data")
	})
}

func TestNotesUpdate(t *testing.T) {
	h := NewNotesHandler(NewNoteStore(), nil)
	created := createNote(t, h, "draft")

	t.Run("version conflict", func(t *testing.T) {
		ctx := newJSONCtx(fasthttp.MethodPut, `{"title":"final","version":99}`)
		ctx.SetUserValue("id", created["id"])
		h.Update(ctx)

		assert.Equal(t, fasthttp.StatusConflict, ctx.Response.StatusCode())
		assert.Equal(t, "Note was modified by another request", envelope(t, ctx)["message"])
	})

	t.Run("matching version", func(t *testing.T) {
		ctx := newJSONCtx(fasthttp.MethodPut, `{"title":"final","version":1}`)
		ctx.SetUserValue("id", created["id"])
		h.Update(ctx)

		require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
		body := envelope(t, ctx)
		assert.Equal(t, "Note updated", body["message"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "final", data["title"])
		assert.Equal(t, float64(2), data["version"])
	})
}

func TestNotesArchive(t *testing.T) {
	h := NewNotesHandler(NewNoteStore(), nil)
	created := createNote(t, h, "old")

	ctx := &fasthttp.RequestCtx{}
	ctx.SetUserValue("id", created["id"])
	h.Archive(ctx)

	assert.Equal(t, fasthttp.StatusAccepted, ctx.Response.StatusCode())
	body := envelope(t, ctx)
	assert.Equal(t, "Archival scheduled", body["message"])
	assert.Equal(t, true, body["data"].(map[string]any)["archived"])
}

func TestNotesDelete(t *testing.T) {
	h := NewNotesHandler(NewNoteStore(), nil)
	created := createNote(t, h, "doomed")

	ctx := &fasthttp.RequestCtx{}
	ctx.SetUserValue("id", created["id"])
	h.Delete(ctx)
	assert.Equal(t, fasthttp.StatusNoContent, ctx.Response.StatusCode())
	assert.Empty(t, ctx.Response.Body())

	// The tombstone answers 410 from here on.
	ctx = &fasthttp.RequestCtx{}
	ctx.SetUserValue("id", created["id"])
	h.Get(ctx)
	assert.Equal(t, fasthttp.StatusGone, ctx.Response.StatusCode())

	ctx = &fasthttp.RequestCtx{}
	ctx.SetUserValue("id", created["id"])
	h.Delete(ctx)
	assert.Equal(t, fasthttp.StatusGone, ctx.Response.StatusCode())
}

func TestNotesExport(t *testing.T) {
	h := NewNotesHandler(NewNoteStore(), nil)

	ctx := &fasthttp.RequestCtx{}
	h.Export(ctx)

	assert.Equal(t, fasthttp.StatusNotImplemented, ctx.Response.StatusCode())
	assert.Equal(t, "Note export is not available yet", envelope(t, ctx)["message"])
}

func TestHealth(t *testing.T) {
	h := NewHealthHandler("respond-example")

	ctx := &fasthttp.RequestCtx{}
	h.Check(ctx)
	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "Healthy", envelope(t, ctx)["message"])

	h.SetReady(false)
	ctx = &fasthttp.RequestCtx{}
	h.Check(ctx)
	assert.Equal(t, fasthttp.StatusServiceUnavailable, ctx.Response.StatusCode())
	assert.Equal(t, "Shutting down", envelope(t, ctx)["message"])
}
