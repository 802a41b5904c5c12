package ledger

import (
	"fmt"

	"route-engine/internal/apperr"
)

var (
	ErrRouteAlreadyClaimed = fmt.Errorf("%w: route is held by another driver", apperr.RouteAlreadyClaimed)
	ErrClaimExpired        = fmt.Errorf("%w: claim expired, route reopened", apperr.ClaimExpired)
	ErrNotClaimHolder      = fmt.Errorf("%w: route is claimed by another driver", apperr.NotClaimHolder)
	ErrRouteNotOpen        = fmt.Errorf("%w: route is not open", apperr.InvalidTransition)
	ErrRouteNotReady       = fmt.Errorf("%w: route is not sealed and sequenced", apperr.InvalidTransition)
	ErrClaimWindowClosed   = fmt.Errorf("%w: claim deadline passed", apperr.InvalidTransition)
	ErrRouteNotClaimed     = fmt.Errorf("%w: route is not claimed", apperr.InvalidTransition)
	ErrRouteNotStarted     = fmt.Errorf("%w: route is not in progress", apperr.InvalidTransition)
	ErrStopsNotTerminal    = fmt.Errorf("%w: route has unfinished stops", apperr.InvalidTransition)
	ErrNotCancellable      = fmt.Errorf("%w: route cannot be cancelled", apperr.InvalidTransition)
	ErrInvalidID           = fmt.Errorf("%w: empty id", apperr.InvalidRequest)
	ErrInvalidConfig       = fmt.Errorf("%w: invalid ledger config", apperr.InvalidRequest)
)
