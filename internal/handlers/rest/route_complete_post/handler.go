package route_complete_post

import (
	"net/http"

	"github.com/gorilla/mux"
	"route-engine/internal/handlers/rest/dto"
	"route-engine/internal/handlers/rest/response"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route, record, err := h.service.Complete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	res := dto.RouteComplete{
		Route: dto.FromRoute(*route),
	}
	// маршрут на проверке завершается без начисления
	if record != nil {
		earnings := dto.FromEarningsRecord(*record)
		res.Earnings = &earnings
	}

	response.JSON(w, h.log, http.StatusOK, res)
}
