package builder

import (
	"fmt"

	"route-engine/internal/apperr"
)

var (
	ErrInvalidWindow = fmt.Errorf("%w: empty window", apperr.InvalidRequest)
	ErrInvalidCell   = fmt.Errorf("%w: empty cell", apperr.InvalidRequest)
	ErrInvalidConfig = fmt.Errorf("%w: invalid builder config", apperr.InvalidRequest)
)
