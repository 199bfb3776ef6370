package handler

import (
	"sync/atomic"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/respond"
)

// HealthHandler reports liveness. During shutdown it flips to 503 so load
// balancers drain the instance.
type HealthHandler struct {
	appName string
	started time.Time
	ready   atomic.Bool
}

func NewHealthHandler(appName string) *HealthHandler {
	h := &HealthHandler{
		appName: appName,
		started: time.Now().UTC(),
	}
	h.ready.Store(true)
	return h
}

// SetReady toggles the readiness state.
func (h *HealthHandler) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	r := respond.From(ctx)

	payload := map[string]any{
		"app":            h.appName,
		"uptime_seconds": int(time.Since(h.started).Seconds()),
	}
	if !h.ready.Load() {
		r.ServiceUnavailable(respond.Options{
			Message: "Shutting down",
			Data:    payload,
		})
		return
	}
	r.Success(respond.Options{Message: "Healthy", Data: payload})
}
