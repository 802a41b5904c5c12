package memory

import (
	"time"

	"route-engine/internal/entities"
)

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneOrder(o entities.Order) entities.Order {
	o.RequestedWindow = clonePtr(o.RequestedWindow)
	o.CancelledAt = clonePtr(o.CancelledAt)
	return o
}

func cloneStop(s entities.Stop) entities.Stop {
	s.Position = clonePtr(s.Position)
	s.ArrivedAt = clonePtr(s.ArrivedAt)
	s.CompletedAt = clonePtr(s.CompletedAt)
	s.FailedAt = clonePtr(s.FailedAt)
	return s
}

func cloneRoute(r entities.Route) entities.Route {
	r.StopIDs = append([]string(nil), r.StopIDs...)
	r.DriverID = clonePtr(r.DriverID)
	r.ClaimExpiresAt = clonePtr(r.ClaimExpiresAt)
	r.ClaimedAt = clonePtr(r.ClaimedAt)
	r.StartedAt = clonePtr(r.StartedAt)
	r.CompletedAt = clonePtr(r.CompletedAt)
	return r
}

func cloneRecord(r entities.EarningsRecord) entities.EarningsRecord {
	r.Lines = append([]entities.EarningsLine(nil), r.Lines...)
	r.ReferenceID = clonePtr(r.ReferenceID)
	return r
}

func cloneTip(t entities.Tip) entities.Tip {
	t.RecordID = clonePtr(t.RecordID)
	return t
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}
