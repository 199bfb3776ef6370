package middleware

import "github.com/valyala/fasthttp"

// Middleware wraps a fasthttp handler with additional behavior.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// Chain applies middlewares to h so that the first listed middleware is the
// outermost one at request time.
func Chain(h fasthttp.RequestHandler, middlewares ...Middleware) fasthttp.RequestHandler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
