package recovery

import (
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"route-engine/pkg/logger"
)

type handlerLogger interface {
	Error(msg string, fields ...logger.Field)
}

// recoveryLogger направляет сообщения gorilla/handlers в структурный лог.
type recoveryLogger struct {
	log handlerLogger
}

func (l recoveryLogger) Println(v ...any) {
	l.log.Error("panic recovered",
		logger.NewField("panic", fmt.Sprint(v...)),
	)
}

// Middleware отвечает 500 на панику в обработчике вместо обрыва соединения.
func Middleware(log handlerLogger) func(http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{log: log}),
		handlers.PrintRecoveryStack(false),
	)
}
