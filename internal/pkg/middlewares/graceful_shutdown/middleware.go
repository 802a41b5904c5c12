package graceful_shutdown

import (
	"context"
	"net/http"
	"sync/atomic"
)

const retryAfterSeconds = "5"

// Middleware после сигнала остановки отвечает 503 новым запросам и просит
// клиента закрыть соединение. Запросы, принятые до сигнала, дорабатывают.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isShuttingDown.Load() || ongoingCtx.Err() != nil {
				w.Header().Set("Connection", "close")
				w.Header().Set("Retry-After", retryAfterSeconds)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error":"shutting_down","message":"service is shutting down"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
