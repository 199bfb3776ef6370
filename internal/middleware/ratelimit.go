package middleware

import (
	"sync"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/respond"
)

// RateLimit enforces a fixed-window per-client-IP request budget and
// answers over-limit requests with a 429 envelope. Windows are tracked in
// memory, so limits apply per process.
func RateLimit(requests int, window time.Duration) Middleware {
	limiter := &windowLimiter{
		limit:   requests,
		window:  window,
		clients: make(map[string]*windowState),
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			if !limiter.allow(ctx.RemoteIP().String(), time.Now()) {
				respond.From(ctx).TooManyRequests(respond.Options{
					Meta: map[string]any{"retry_after_seconds": int(window.Seconds())},
				})
				return
			}
			next(ctx)
		}
	}
}

type windowState struct {
	start time.Time
	count int
}

type windowLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	clients map[string]*windowState
}

func (l *windowLimiter) allow(client string, now time.Time) bool {
	if l.limit <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.clients[client]
	if !ok || now.Sub(state.start) >= l.window {
		l.clients[client] = &windowState{start: now, count: 1}
		return true
	}
	if state.count >= l.limit {
		return false
	}
	state.count++
	return true
}
