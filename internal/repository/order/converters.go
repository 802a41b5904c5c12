package order

import (
	"route-engine/internal/entities"
)

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}

	order := &entities.Order{
		ID:                   o.ID,
		Kind:                 entities.OrderKind(o.Kind),
		BuyerID:              o.BuyerID,
		SellerID:             o.SellerID,
		Origin:               entities.Location{Lat: o.OriginLat, Lon: o.OriginLon, Address: o.OriginAddress},
		Destination:          entities.Location{Lat: o.DestLat, Lon: o.DestLon, Address: o.DestAddress},
		ItemCount:            o.ItemCount,
		RequiresLargeVehicle: o.RequiresLargeVehicle,
		Fragile:              o.Fragile,
		Window:               entities.TimeWindow{Start: o.WindowStart.UTC(), End: o.WindowEnd.UTC()},
		Cell:                 o.Cell,
		Status:               entities.OrderStatus(o.Status),
		CreatedAt:            o.CreatedAt.UTC(),
		CancelledAt:          o.CancelledAt,
	}
	if o.RequestedWindowStart != nil && o.RequestedWindowEnd != nil {
		order.RequestedWindow = &entities.TimeWindow{
			Start: o.RequestedWindowStart.UTC(),
			End:   o.RequestedWindowEnd.UTC(),
		}
	}
	return order
}

func FromDomain(o *entities.Order) *OrderDB {
	if o == nil {
		return nil
	}

	orderDB := &OrderDB{
		ID:                   o.ID,
		Kind:                 o.Kind.String(),
		BuyerID:              o.BuyerID,
		SellerID:             o.SellerID,
		OriginLat:            o.Origin.Lat,
		OriginLon:            o.Origin.Lon,
		OriginAddress:        o.Origin.Address,
		DestLat:              o.Destination.Lat,
		DestLon:              o.Destination.Lon,
		DestAddress:          o.Destination.Address,
		ItemCount:            o.ItemCount,
		RequiresLargeVehicle: o.RequiresLargeVehicle,
		Fragile:              o.Fragile,
		WindowStart:          o.Window.Start,
		WindowEnd:            o.Window.End,
		Cell:                 o.Cell,
		Status:               o.Status.String(),
		CreatedAt:            o.CreatedAt,
		CancelledAt:          o.CancelledAt,
	}
	if o.RequestedWindow != nil {
		orderDB.RequestedWindowStart = &o.RequestedWindow.Start
		orderDB.RequestedWindowEnd = &o.RequestedWindow.End
	}
	return orderDB
}
