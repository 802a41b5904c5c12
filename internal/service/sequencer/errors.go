package sequencer

import (
	"fmt"

	"route-engine/internal/apperr"
)

var (
	ErrSequencingViolation = fmt.Errorf("%w: pickup must precede dropoff", apperr.SequencingViolation)
	ErrRouteArchived       = fmt.Errorf("%w: route is archived", apperr.InvalidTransition)
	ErrInvalidID           = fmt.Errorf("%w: empty route id", apperr.InvalidRequest)
)
