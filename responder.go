package respond

import (
	"encoding/json"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Responder binds the named response helpers to a single request's
// response sink. A Responder is valid for exactly one request/response
// cycle and must not be shared across requests.
type Responder struct {
	ctx    *fasthttp.RequestCtx
	logger *zap.Logger
}

// New builds a Responder writing to the given request context. The logger
// is only used to report marshalling failures and may be nil.
func New(ctx *fasthttp.RequestCtx, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{ctx: ctx, logger: logger}
}

// Send writes one envelope with the given category. The status code
// defaults to 200 for success and 500 for error when the caller supplies
// none; no consistency check is made between category and status code.
// Categories other than StatusSuccess/StatusError are a programming error
// and are written as-is — use the named helpers instead.
func (r *Responder) Send(category string, opts Options) {
	if category == StatusError {
		opts = opts.withPreset(fasthttp.StatusInternalServerError, defaultErrorMessage)
	} else {
		opts = opts.withPreset(fasthttp.StatusOK, defaultSuccessMessage)
	}

	for key, value := range opts.Headers {
		r.ctx.Response.Header.Set(key, value)
	}

	envelope := Envelope{
		Status:    category,
		Message:   opts.Message,
		Data:      opts.Data,
		Errors:    opts.Errors,
		Meta:      opts.Meta,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	r.ctx.Response.Header.SetContentType("application/json")
	r.ctx.SetStatusCode(opts.StatusCode)
	body, err := json.Marshal(envelope)
	if err != nil {
		r.logger.Warn("failed to marshal response envelope", zap.Error(err))
	}
	r.ctx.SetBody(body)
}

// Success writes a 200 success envelope.
func (r *Responder) Success(opts ...Options) {
	r.Send(StatusSuccess, first(opts).withPreset(fasthttp.StatusOK, defaultSuccessMessage))
}

// Created writes a 201 success envelope.
func (r *Responder) Created(opts ...Options) {
	r.Send(StatusSuccess, first(opts).withPreset(fasthttp.StatusCreated, "Resource created"))
}

// Accepted writes a 202 success envelope.
func (r *Responder) Accepted(opts ...Options) {
	r.Send(StatusSuccess, first(opts).withPreset(fasthttp.StatusAccepted, "Accepted"))
}

// NoContent writes a bare 204 with an empty body. It bypasses the envelope
// entirely and accepts no options.
func (r *Responder) NoContent() {
	r.ctx.Response.ResetBody()
	r.ctx.SetStatusCode(fasthttp.StatusNoContent)
}

// BadRequest writes a 400 error envelope.
func (r *Responder) BadRequest(opts ...Options) {
	r.Send(StatusError, first(opts).withPreset(fasthttp.StatusBadRequest, "Bad Request"))
}

// Unauthorized writes a 401 error envelope.
func (r *Responder) Unauthorized(opts ...Options) {
	r.Send(StatusError, first(opts).withPreset(fasthttp.StatusUnauthorized, "Unauthorized"))
}

// Forbidden writes a 403 error envelope.
func (r *Responder) Forbidden(opts ...Options) {
	r.Send(StatusError, first(opts).withPreset(fasthttp.StatusForbidden, "Forbidden"))
}

// NotFound writes a 404 error envelope.
func (r *Responder) NotFound(opts ...Options) {
	r.Send(StatusError, first(opts).withPreset(fasthttp.StatusNotFound, "Not Found"))
}

// NotAcceptable writes a 406 error envelope.
func (r *Responder) NotAcceptable(opts ...Options) {
	r.Send(StatusError, first(opts).withPreset(fasthttp.StatusNotAcceptable, "Not Acceptable"))
}

// Conflict writes a 409 error envelope.
func (r *Responder) Conflict(opts ...Options) {
	r.Send(StatusError, first(opts).withPreset(fasthttp.StatusConflict, "Conflict"))
}

// Gone writes a 410 error envelope.
func (r *Responder) Gone(opts ...Options) {
	r.Send(StatusError, first(opts).withPreset(fasthttp.StatusGone, "Gone"))
}

// UnsupportedMediaType writes a 415 error envelope.
func (r *Responder) UnsupportedMediaType(opts ...Options) {
	r.Send(StatusError, first(opts).withPreset(fasthttp.StatusUnsupportedMediaType, "Unsupported Media Type"))
}

// UnprocessableEntity writes a 422 error envelope.
func (r *Responder) UnprocessableEntity(opts ...Options) {
	r.Send(StatusError, first(opts).withPreset(fasthttp.StatusUnprocessableEntity, "Unprocessable Entity"))
}

// TooManyRequests writes a 429 error envelope.
func (r *Responder) TooManyRequests(opts ...Options) {
	r.Send(StatusError, first(opts).withPreset(fasthttp.StatusTooManyRequests, "Too Many Requests"))
}

// Error writes a generic 500 error envelope with the message "Error".
// ServerError is the same status with a more specific default message;
// call sites may depend on the distinction, so both are kept.
func (r *Responder) Error(opts ...Options) {
	r.Send(StatusError, first(opts).withPreset(fasthttp.StatusInternalServerError, defaultErrorMessage))
}

// ServerError writes a 500 error envelope with "Internal Server Error".
func (r *Responder) ServerError(opts ...Options) {
	r.Send(StatusError, first(opts).withPreset(fasthttp.StatusInternalServerError, "Internal Server Error"))
}

// NotImplemented writes a 501 error envelope.
func (r *Responder) NotImplemented(opts ...Options) {
	r.Send(StatusError, first(opts).withPreset(fasthttp.StatusNotImplemented, "Not Implemented"))
}

// ServiceUnavailable writes a 503 error envelope.
func (r *Responder) ServiceUnavailable(opts ...Options) {
	r.Send(StatusError, first(opts).withPreset(fasthttp.StatusServiceUnavailable, "Service Unavailable"))
}
