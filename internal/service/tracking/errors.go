package tracking

import (
	"fmt"

	"route-engine/internal/apperr"
)

var (
	ErrInvalidID          = fmt.Errorf("%w: empty id", apperr.InvalidRequest)
	ErrInvalidStatus      = fmt.Errorf("%w: unknown stop status", apperr.InvalidRequest)
	ErrStopNotRouted      = fmt.Errorf("%w: stop is not on a route", apperr.InvalidTransition)
	ErrRouteNotActive     = fmt.Errorf("%w: route is not in progress", apperr.InvalidTransition)
	ErrNotRouteDriver     = fmt.Errorf("%w: stop belongs to another driver", apperr.NotClaimHolder)
	ErrStopTransition     = fmt.Errorf("%w: stop is already finished", apperr.InvalidTransition)
	ErrPickupNotCompleted = fmt.Errorf("%w: pickup is not completed", apperr.InvalidTransition)
)
