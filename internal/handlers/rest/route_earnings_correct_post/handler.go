package route_earnings_correct_post

import (
	"encoding/json"
	"net/http"
	"strings"

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

	var req dto.EarningsCorrection
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		response.BadRequest(w, h.log, "reason is required")
		return
	}

	records, err := h.service.Correct(r.Context(), routeID, req.Reason)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Warn("earnings corrected",
		logger.NewField("route_id", routeID),
		logger.NewField("records", len(records)),
	)
	response.JSON(w, h.log, http.StatusCreated, dto.FromEarningsRecords(records))
}
