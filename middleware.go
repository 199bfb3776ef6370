package respond

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// responderKey is the ctx user-value slot holding the per-request Responder.
const responderKey = "respond.responder"

// Middleware binds a fresh Responder to every request so handlers can fetch
// it with From. The Responder closes over the request's own context, so the
// binding is never shared across requests. The middleware invokes next
// exactly once and never writes the response itself.
func Middleware(logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			ctx.SetUserValue(responderKey, New(ctx, logger))
			next(ctx)
		}
	}
}

// From returns the Responder bound to this request by Middleware. When the
// middleware is not installed it builds one on the spot, so handlers can
// always respond through the returned value.
func From(ctx *fasthttp.RequestCtx) *Responder {
	if r, ok := ctx.UserValue(responderKey).(*Responder); ok {
		return r
	}
	return New(ctx, nil)
}
