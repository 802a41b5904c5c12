package route_earnings_finalize_post

import (
	"net/http"

	"github.com/gorilla/mux"
	"route-engine/internal/handlers/rest/dto"
	"route-engine/internal/handlers/rest/response"
	"route-engine/pkg/logger"
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
	routeID := mux.Vars(r)["id"]

	record, err := h.service.FinalizeEarnings(r.Context(), routeID)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("earnings finalized",
		logger.NewField("route_id", routeID),
		logger.NewField("total", record.Total.String()),
	)
	response.JSON(w, h.log, http.StatusCreated, dto.FromEarningsRecord(*record))
}
