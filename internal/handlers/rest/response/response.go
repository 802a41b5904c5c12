package response

import (
	"encoding/json"
	"net/http"

	"route-engine/internal/apperr"
	"route-engine/pkg/logger"
)

type responseLogger interface {
	Error(msg string, fields ...logger.Field)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var statusByKind = map[string]int{
	apperr.KindInvalidOrder:        http.StatusUnprocessableEntity,
	apperr.KindInvalidRequest:      http.StatusBadRequest,
	apperr.KindNotFound:            http.StatusNotFound,
	apperr.KindConflict:            http.StatusConflict,
	apperr.KindRouteAlreadyClaimed: http.StatusConflict,
	apperr.KindClaimExpired:        http.StatusConflict,
	apperr.KindNotClaimHolder:      http.StatusForbidden,
	apperr.KindAlreadySettled:      http.StatusConflict,
	apperr.KindSequencingViolation: http.StatusConflict,
	apperr.KindInvalidTransition:   http.StatusConflict,
	apperr.KindDistanceUnavailable: http.StatusServiceUnavailable,
}

// Status код ответа для ошибки сервиса.
func Status(err error) int {
	status, ok := statusByKind[apperr.Kind(err)]
	if !ok {
		return http.StatusInternalServerError
	}
	return status
}

func JSON(w http.ResponseWriter, log responseLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		log.Error("encode JSON response", logger.NewField("error", err))
	}
}

// Error пишет {"error": <kind>, "message": ...}. Текст внутренних ошибок наружу не отдается.
func Error(w http.ResponseWriter, log responseLogger, err error) {
	kind := apperr.Kind(err)
	message := err.Error()
	if kind == apperr.KindInternal {
		log.Error("request failed", logger.NewField("error", err))
		message = http.StatusText(http.StatusInternalServerError)
	}
	JSON(w, log, Status(err), errorBody{Error: kind, Message: message})
}

// BadRequest ошибка разбора запроса до вызова сервиса.
func BadRequest(w http.ResponseWriter, log responseLogger, message string) {
	JSON(w, log, http.StatusBadRequest, errorBody{Error: apperr.KindInvalidRequest, Message: message})
}
