package order_post

import (
	"encoding/json"
	"net/http"

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
	var orderDTO dto.OrderCreate
	err := json.NewDecoder(r.Body).Decode(&orderDTO)
	if err != nil {
		response.BadRequest(w, h.log, "invalid JSON body")
		return
	}

	intake, err := h.service.Submit(r.Context(), orderDTO.ToDomain())
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusCreated, dto.FromIntake(*intake))
}
