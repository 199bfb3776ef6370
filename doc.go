// Package respond standardizes JSON response shapes for fasthttp services.
//
// Every response is one Envelope: a status category, a human message, an
// RFC 3339 timestamp, and optional data/errors/meta payloads that appear in
// the body only when the caller supplies them. Named helpers (Success,
// Created, NotFound, ...) preset the status code and default message and
// delegate to a single send routine; Middleware binds a fresh Responder to
// each request so handlers reach the helpers through From.
//
//	func getNote(ctx *fasthttp.RequestCtx) {
//		note, err := store.Get(id(ctx))
//		if err != nil {
//			respond.From(ctx).NotFound()
//			return
//		}
//		respond.From(ctx).Success(respond.Options{Data: note})
//	}
package respond
