package intake

import (
	"fmt"

	"route-engine/internal/apperr"
)

var (
	ErrEmptyOrderID      = fmt.Errorf("%w: empty order id", apperr.InvalidOrder)
	ErrInvalidKind       = fmt.Errorf("%w: unknown order kind", apperr.InvalidOrder)
	ErrInvalidOrigin     = fmt.Errorf("%w: missing or invalid origin", apperr.InvalidOrder)
	ErrInvalidDest       = fmt.Errorf("%w: missing or invalid destination", apperr.InvalidOrder)
	ErrSameLocation      = fmt.Errorf("%w: origin and destination are the same", apperr.InvalidOrder)
	ErrInvalidItemCount  = fmt.Errorf("%w: item count must be positive", apperr.InvalidOrder)
	ErrOrderAlreadyExist = fmt.Errorf("%w: order already submitted", apperr.Conflict)
)
