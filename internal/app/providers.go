package app

import (
	"context"
	"fmt"
	"time"

	"route-engine/internal/gateway/distance"
	"route-engine/internal/handlers/tasks/claim_reaper"
	"route-engine/internal/handlers/tasks/route_building"
	"route-engine/internal/pkg/config"
	"route-engine/internal/pkg/factory/order_handle"
	"route-engine/internal/pkg/factory/time_window"
	"route-engine/internal/service/builder"
	"route-engine/internal/service/earnings"
	"route-engine/internal/service/intake"
	"route-engine/internal/service/ledger"
	"route-engine/internal/service/sequencer"
	"route-engine/internal/service/tracking"
	"route-engine/pkg/background"
	"route-engine/pkg/logger"
)

func provideRouteBuildingInterval(cfg *config.Config) RouteBuildingInterval {
	return RouteBuildingInterval(cfg.Tasks.RouteBuildingInterval)
}

func provideClaimReaperInterval(cfg *config.Config) ClaimReaperInterval {
	return ClaimReaperInterval(cfg.Tasks.ClaimReaperInterval)
}

func provideWindows(cfg *config.Config) (*time_window.Factory, error) {
	loc, err := time.LoadLocation(cfg.Windows.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("windows time zone: %w", err)
	}
	return time_window.New(cfg.Windows.Slots, loc, cfg.Windows.IntakeCutoff)
}

func provideEarningsService(
	log logger.Logger,
	cfg *config.Config,
	storage *Storage,
	notifier Notifier,
	clock Clock,
) *earnings.Service {
	return earnings.New(
		log,
		storage.Routes,
		storage.Stops,
		storage.Earnings,
		storage.TxManager,
		storage.Locker,
		notifier,
		clock,
		cfg.Tariff,
	)
}

func provideSequencerService(
	log logger.Logger,
	storage *Storage,
	distance *distance.Gateway,
	splitter *earnings.Service,
	notifier Notifier,
	clock Clock,
) *sequencer.Service {
	return sequencer.New(
		log,
		storage.Routes,
		storage.Stops,
		distance,
		splitter,
		storage.TxManager,
		notifier,
		clock,
	)
}

func provideBuilderService(
	log logger.Logger,
	cfg *config.Config,
	storage *Storage,
	sequencer *sequencer.Service,
	windows *time_window.Factory,
	notifier Notifier,
	clock Clock,
) (*builder.Service, error) {
	return builder.New(
		log,
		builder.Config{
			MaxStops:      cfg.Builder.MaxStops,
			MaxOpenRoutes: cfg.Builder.MaxOpenRoutes,
			RadiusMiles:   cfg.Builder.RadiusMiles,
		},
		storage.Routes,
		storage.Stops,
		sequencer,
		windows,
		storage.TxManager,
		storage.Locker,
		notifier,
		clock,
	)
}

func provideLedgerService(
	log logger.Logger,
	cfg *config.Config,
	storage *Storage,
	pool *builder.Service,
	earnings *earnings.Service,
	notifier Notifier,
	clock Clock,
) (*ledger.Service, error) {
	return ledger.New(
		log,
		ledger.Config{
			ClaimGracePeriod:    cfg.Ledger.ClaimGracePeriod,
			ClaimDeadlineOffset: cfg.Ledger.ClaimDeadlineOffset,
		},
		storage.Routes,
		storage.Stops,
		pool,
		earnings,
		storage.TxManager,
		notifier,
		clock,
	)
}

func provideTrackingService(
	log logger.Logger,
	storage *Storage,
	earnings *earnings.Service,
	sequencer *sequencer.Service,
	canceller *ledger.Service,
	notifier Notifier,
	clock Clock,
) *tracking.Service {
	return tracking.New(
		log,
		storage.Orders,
		storage.Stops,
		storage.Routes,
		earnings,
		sequencer,
		canceller,
		storage.TxManager,
		notifier,
		clock,
	)
}

func provideIntakeService(
	log logger.Logger,
	cfg *config.Config,
	storage *Storage,
	windows *time_window.Factory,
	notifier Notifier,
	clock Clock,
) *intake.Service {
	return intake.New(
		log,
		cfg.Windows.CellPrecision,
		storage.Orders,
		storage.Stops,
		windows,
		storage.TxManager,
		notifier,
		clock,
	)
}

func provideEventHandlerFactory(intake *intake.Service, tracking *tracking.Service) *order_handle.EventHandlerFactory {
	return order_handle.NewEventHandlerFactory(intake, tracking)
}

func provideRouteBuildingTask(
	log logger.Logger,
	builder *builder.Service,
	ledger *ledger.Service,
	interval RouteBuildingInterval,
) *route_building.RouteBuilding {
	return route_building.NewRouteBuilding(log, builder, ledger, time.Duration(interval))
}

func provideClaimReaperTask(
	log logger.Logger,
	ledger *ledger.Service,
	interval ClaimReaperInterval,
) *claim_reaper.ClaimReaper {
	return claim_reaper.NewClaimReaper(log, ledger, time.Duration(interval))
}

func provideTaskList(
	routeBuildingTask *route_building.RouteBuilding,
	claimReaperTask *claim_reaper.ClaimReaper,
) []background.Task {
	return []background.Task{
		routeBuildingTask,
		claimReaperTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
