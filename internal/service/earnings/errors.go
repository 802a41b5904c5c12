package earnings

import (
	"errors"
	"fmt"

	"route-engine/internal/apperr"
)

var (
	ErrAlreadySettled    = fmt.Errorf("%w: route earnings already finalized", apperr.AlreadySettled)
	ErrRouteNotCompleted = fmt.Errorf("%w: route is not completed", apperr.InvalidTransition)
	ErrRouteClosed       = fmt.Errorf("%w: route is closed", apperr.InvalidTransition)
	ErrNotSettled        = fmt.Errorf("%w: route earnings not finalized", apperr.InvalidTransition)
	ErrNoDriver          = fmt.Errorf("%w: route has no driver", apperr.InvalidRequest)
	ErrInvalidTip        = fmt.Errorf("%w: tip amount must be positive", apperr.InvalidRequest)
	ErrOrderNotOnRoute   = fmt.Errorf("%w: order is not on route", apperr.InvalidRequest)
	ErrInvalidRange      = fmt.Errorf("%w: invalid period", apperr.InvalidRequest)
	ErrInvalidID         = fmt.Errorf("%w: empty id", apperr.InvalidRequest)
	ErrSplitNotFound     = fmt.Errorf("%w: cost split not computed", apperr.NotFound)

	errNoChange = errors.New("no change")
)
