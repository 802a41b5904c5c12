package healthcheck_head

import (
	"net/http"
	"sync/atomic"
)

// Handler readiness проба. HEAD отвечает только статусом, GET дополнительно
// отдает состояние телом для ручной проверки.
type Handler struct {
	isShuttingDown *atomic.Bool
}

func New(isShuttingDown *atomic.Bool) *Handler {
	return &Handler{
		isShuttingDown: isShuttingDown,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	status, body := http.StatusNoContent, ""
	if h.isShuttingDown.Load() {
		status, body = http.StatusServiceUnavailable, `{"status":"shutting_down"}`
	} else if r.Method == http.MethodGet {
		status, body = http.StatusOK, `{"status":"ok"}`
	}

	if body == "" || r.Method == http.MethodHead {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
