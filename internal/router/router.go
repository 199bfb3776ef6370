package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/respond"
	"github.com/fastygo/respond/internal/handler"
	"github.com/fastygo/respond/internal/middleware"
)

type Handlers struct {
	Notes  *handler.NotesHandler
	Health *handler.HealthHandler
}

// New builds the route table. Mutating routes go through authMiddleware
// when one is supplied.
func New(handlers Handlers, authMiddleware middleware.Middleware) *router.Router {
	protect := func(h fasthttp.RequestHandler) fasthttp.RequestHandler {
		if authMiddleware == nil {
			return h
		}
		return authMiddleware(h)
	}

	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.GET("/api/v1/notes", handlers.Notes.List)
	r.POST("/api/v1/notes", protect(handlers.Notes.Create))
	r.GET("/api/v1/notes/{id}", handlers.Notes.Get)
	r.PUT("/api/v1/notes/{id}", protect(handlers.Notes.Update))
	r.DELETE("/api/v1/notes/{id}", protect(handlers.Notes.Delete))
	r.POST("/api/v1/notes/{id}/archive", protect(handlers.Notes.Archive))
	r.POST("/api/v1/export", protect(handlers.Notes.Export))

	r.NotFound = func(ctx *fasthttp.RequestCtx) {
		respond.From(ctx).NotFound(respond.Options{
			Message: "Route not found",
			Errors:  map[string]string{"path": string(ctx.Path())},
		})
	}
	r.MethodNotAllowed = func(ctx *fasthttp.RequestCtx) {
		respond.From(ctx).Send(respond.StatusError, respond.Options{
			StatusCode: fasthttp.StatusMethodNotAllowed,
			Message:    "Method Not Allowed",
		})
	}

	return r
}
