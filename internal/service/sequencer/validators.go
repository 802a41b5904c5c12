package sequencer

import (
	"fmt"
	"strings"

	"route-engine/internal/entities"
)

// ValidatePrecedence проверяет стопы маршрута в порядке обхода: забор
// заказа стоит раньше доставки, а начатая доставка требует выполненного забора.
// Проваленные доставки не проверяются.
func ValidatePrecedence(stops []entities.Stop) error {
	pickups := make(map[string]int, len(stops)/2)
	for i, st := range stops {
		if st.Kind == entities.StopPickup {
			pickups[st.OrderID] = i
		}
	}

	for i, st := range stops {
		if st.Kind != entities.StopDropoff || st.Status == entities.StopFailed {
			continue
		}
		p, ok := pickups[st.OrderID]
		if !ok {
			return fmt.Errorf("%w: order %s has no pickup on route", ErrSequencingViolation, st.OrderID)
		}
		if p > i {
			return fmt.Errorf("%w: order %s dropoff %s at %d before pickup at %d",
				ErrSequencingViolation, st.OrderID, st.ID, i, p)
		}
		if st.Status.Reached(entities.StopArrived) && !stops[p].Status.Reached(entities.StopCompleted) {
			return fmt.Errorf("%w: order %s dropoff %s started before pickup completed",
				ErrSequencingViolation, st.OrderID, st.ID)
		}
	}
	return nil
}

func isValidID(id string) bool {
	return strings.TrimSpace(id) != ""
}
