package middleware

import (
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/respond"
)

// Recover turns handler panics into a 500 envelope instead of letting
// fasthttp drop the connection.
func Recover(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("handler panic",
						zap.Any("panic", rec),
						zap.String("path", string(ctx.Path())),
						zap.Stack("stack"),
					)
					respond.From(ctx).ServerError()
				}
			}()
			next(ctx)
		}
	}
}
