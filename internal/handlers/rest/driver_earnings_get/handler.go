package driver_earnings_get

import (
	"net/http"
	"time"

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
	query := r.URL.Query()

	from, err := parseTime(query.Get("from"))
	if err != nil {
		response.BadRequest(w, h.log, "from must be RFC3339")
		return
	}
	to, err := parseTime(query.Get("to"))
	if err != nil {
		response.BadRequest(w, h.log, "to must be RFC3339")
		return
	}

	earnings, err := h.service.GetEarnings(r.Context(), mux.Vars(r)["id"], from, to)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromDriverEarnings(*earnings))
}

// parseTime пустое значение - открытая граница.
func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
