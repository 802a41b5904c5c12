package route_start_post

import (
	"encoding/json"
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

	var req dto.DriverRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	route, err := h.service.Start(r.Context(), routeID, req.DriverID)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("route started",
		logger.NewField("route_id", routeID),
		logger.NewField("driver_id", req.DriverID),
	)
	response.JSON(w, h.log, http.StatusOK, dto.FromRoute(*route))
}
