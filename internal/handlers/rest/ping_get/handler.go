package ping_get

import (
	"net/http"

	"route-engine/internal/handlers/rest/dto"
	"route-engine/internal/handlers/rest/response"
)

const serviceName = "route-engine"

// Handler отвечает pong и текущим временем сервера. Водители сверяют по нему
// дедлайны claim, которые считаются по часам сервиса.
type Handler struct {
	log   handlerLogger
	clock Clock
}

func New(log handlerLogger, clock Clock) *Handler {
	return &Handler{
		log:   log,
		clock: clock,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, h.log, http.StatusOK, dto.PingResponse{
		Message:    "pong",
		Service:    serviceName,
		ServerTime: h.clock.Now().UTC(),
	})
}
