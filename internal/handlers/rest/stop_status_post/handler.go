package stop_status_post

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"route-engine/internal/entities"
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
	stopID := mux.Vars(r)["id"]

	var req dto.StopStatusUpdate
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	stop, err := h.service.ReportStopStatus(r.Context(), stopID, req.DriverID, entities.StopStatus(req.Status), req.Reason)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("stop status reported",
		logger.NewField("stop_id", stopID),
		logger.NewField("status", stop.Status.String()),
	)
	response.JSON(w, h.log, http.StatusOK, dto.FromStop(*stop))
}
