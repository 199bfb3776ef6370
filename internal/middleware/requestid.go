package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

const (
	requestIDHeader  = "X-Request-ID"
	requestIDUserKey = "request_id"
)

// RequestID reuses the inbound X-Request-ID header or mints a fresh UUID,
// echoes it on the response, and stashes it in the ctx for the access log.
func RequestID() Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			reqID := string(ctx.Request.Header.Peek(requestIDHeader))
			if strings.TrimSpace(reqID) == "" {
				reqID = uuid.NewString()
			}
			ctx.SetUserValue(requestIDUserKey, reqID)
			ctx.Response.Header.Set(requestIDHeader, reqID)
			next(ctx)
		}
	}
}

// GetRequestID returns the request ID stashed by RequestID, if any.
func GetRequestID(ctx *fasthttp.RequestCtx) string {
	if id, ok := ctx.UserValue(requestIDUserKey).(string); ok {
		return id
	}
	return ""
}
