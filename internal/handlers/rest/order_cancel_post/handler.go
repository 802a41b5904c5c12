package order_cancel_post

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
	orderID := mux.Vars(r)["id"]

	order, err := h.service.CancelOrder(r.Context(), orderID)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	h.log.Info("order cancelled", logger.NewField("order_id", orderID))
	response.JSON(w, h.log, http.StatusOK, dto.FromOrder(*order))
}
