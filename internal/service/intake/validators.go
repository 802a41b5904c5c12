package intake

import (
	"fmt"
	"strings"

	"route-engine/internal/entities"
)

func validateOrder(o entities.Order) error {
	if strings.TrimSpace(o.ID) == "" {
		return ErrEmptyOrderID
	}
	if !o.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, o.Kind)
	}
	if !o.Origin.Valid() {
		return ErrInvalidOrigin
	}
	if !o.Destination.Valid() {
		return ErrInvalidDest
	}
	if o.Origin.SameAs(o.Destination) {
		return ErrSameLocation
	}
	if o.ItemCount <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidItemCount, o.ItemCount)
	}
	return nil
}
