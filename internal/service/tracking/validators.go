package tracking

import (
	"strings"

	"route-engine/internal/entities"
)

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}

func isReportable(status entities.StopStatus) bool {
	return status.Valid() && status != entities.StopPending
}
