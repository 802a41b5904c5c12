//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"route-engine/internal/gateway/distance"
	"route-engine/internal/pkg/config"
	"route-engine/internal/service/earnings"
	"route-engine/internal/service/intake"
	"route-engine/internal/service/ledger"
	"route-engine/internal/service/tracking"
	"route-engine/pkg/logger"
)

var serviceSet = wire.NewSet(
	provideWindows,
	provideEarningsService,
	provideSequencerService,
	provideBuilderService,
	provideLedgerService,
	provideTrackingService,
	provideIntakeService,
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	cfg *config.Config,
	storage *Storage,
	distance *distance.Gateway,
	notifier Notifier,
	clock Clock,
) (*Application, error) {
	wire.Build(
		serviceSet,

		provideRouteBuildingInterval,
		provideClaimReaperInterval,
		provideRouteBuildingTask,
		provideClaimReaperTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceIntake), new(*intake.Service)),
		wire.Bind(new(ServiceLedger), new(*ledger.Service)),
		wire.Bind(new(ServiceTracking), new(*tracking.Service)),
		wire.Bind(new(ServiceEarnings), new(*earnings.Service)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для воркера событий заказов (cmd/worker-order-events)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	cfg *config.Config,
	storage *Storage,
	distance *distance.Gateway,
	notifier Notifier,
	clock Clock,
) (*KafkaWorkerApp, error) {
	wire.Build(
		serviceSet,

		provideEventHandlerFactory,

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}
