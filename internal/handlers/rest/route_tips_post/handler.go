package route_tips_post

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"route-engine/internal/entities"
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
	routeID := mux.Vars(r)["id"]

	var req dto.TipCreate
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	tip, adjustment, err := h.service.RecordTip(r.Context(), routeID, req.OrderID, entities.Cents(req.AmountCents))
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	res := dto.TipCreateResponse{
		Tip: dto.FromTip(*tip),
	}
	if adjustment != nil {
		record := dto.FromEarningsRecord(*adjustment)
		res.Adjustment = &record
	}

	response.JSON(w, h.log, http.StatusCreated, res)
}
