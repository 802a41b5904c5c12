package app

import (
	"context"
	"time"

	"route-engine/internal/entities"
	"route-engine/internal/handlers/rest/driver_earnings_get"
	"route-engine/internal/handlers/rest/order_cancel_post"
	"route-engine/internal/handlers/rest/order_cost_split_get"
	"route-engine/internal/handlers/rest/order_post"
	"route-engine/internal/handlers/rest/route_cancel_post"
	"route-engine/internal/handlers/rest/route_claim_post"
	"route-engine/internal/handlers/rest/route_complete_post"
	"route-engine/internal/handlers/rest/route_earnings_correct_post"
	"route-engine/internal/handlers/rest/route_earnings_finalize_post"
	"route-engine/internal/handlers/rest/route_progress_get"
	"route-engine/internal/handlers/rest/route_release_post"
	"route-engine/internal/handlers/rest/route_start_post"
	"route-engine/internal/handlers/rest/route_tips_post"
	"route-engine/internal/handlers/rest/routes_open_get"
	"route-engine/internal/handlers/rest/stop_status_post"
	"route-engine/internal/pkg/factory/order_handle"
	"route-engine/pkg/background"
)

type (
	RouteBuildingInterval time.Duration
	ClaimReaperInterval   time.Duration
)

type Notifier interface {
	Publish(ctx context.Context, events ...entities.Event)
}

type Clock interface {
	Now() time.Time
}

type Application struct {
	ServiceIntake     ServiceIntake
	ServiceLedger     ServiceLedger
	ServiceTracking   ServiceTracking
	ServiceEarnings   ServiceEarnings
	BackgroundWorkers *background.Worker
}

type ServiceIntake interface {
	order_post.Service
}

type ServiceLedger interface {
	routes_open_get.Service
	route_claim_post.Service
	route_release_post.Service
	route_start_post.Service
	route_complete_post.Service
	route_cancel_post.Service
}

type ServiceTracking interface {
	order_cancel_post.Service
	route_progress_get.Service
	stop_status_post.Service
}

type ServiceEarnings interface {
	order_cost_split_get.Service
	route_earnings_finalize_post.Service
	route_earnings_correct_post.Service
	route_tips_post.Service
	driver_earnings_get.Service
}

// KafkaWorkerApp для воркера событий заказов (cmd/worker-order-events).
type KafkaWorkerApp struct {
	HandlerFactory *order_handle.EventHandlerFactory
}
