package routes_open_get

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"route-engine/internal/entities"
	"route-engine/internal/handlers/rest/dto"
	"route-engine/internal/handlers/rest/response"
)

var (
	errInvalidWindowStart = errors.New("window_start must be RFC3339")
	errInvalidNear        = errors.New("lat and lon must be given together as numbers")
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

	window, err := parseWindow(query)
	if err != nil {
		response.BadRequest(w, h.log, err.Error())
		return
	}
	near, err := parseNear(query)
	if err != nil {
		response.BadRequest(w, h.log, err.Error())
		return
	}

	summaries, err := h.service.ListOpenRoutes(r.Context(), query.Get("driver_id"), window, near)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	response.JSON(w, h.log, http.StatusOK, dto.FromRouteSummaries(summaries))
}

// parseWindow окно задается только началом, конец сервису не нужен.
func parseWindow(query url.Values) (*entities.TimeWindow, error) {
	raw := query.Get("window_start")
	if raw == "" {
		return nil, nil
	}
	start, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errInvalidWindowStart
	}
	return &entities.TimeWindow{Start: start.UTC()}, nil
}

func parseNear(query url.Values) (*entities.Location, error) {
	rawLat, rawLon := query.Get("lat"), query.Get("lon")
	if rawLat == "" && rawLon == "" {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return nil, errInvalidNear
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return nil, errInvalidNear
	}
	return &entities.Location{Lat: lat, Lon: lon}, nil
}
