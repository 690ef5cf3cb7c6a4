//go:build wireinject
// +build wireinject

package di

import (
	"fleetdesk/config"
	"fleetdesk/infras/jwt"
	"fleetdesk/infras/kafka"
	"fleetdesk/infras/metrics"
	"fleetdesk/infras/otel"
	"fleetdesk/infras/postgres"
	"fleetdesk/infras/redis"
	"fleetdesk/infras/s3"
	authService "fleetdesk/internal/domains/auth/service"
	bookingRepository "fleetdesk/internal/domains/booking/repository"
	bookingService "fleetdesk/internal/domains/booking/service"
	chargeRepository "fleetdesk/internal/domains/charge/repository"
	complianceRepository "fleetdesk/internal/domains/compliance/repository"
	complianceService "fleetdesk/internal/domains/compliance/service"
	customerRepository "fleetdesk/internal/domains/customer/repository"
	customerService "fleetdesk/internal/domains/customer/service"
	dashboardService "fleetdesk/internal/domains/dashboard/service"
	extensionRepository "fleetdesk/internal/domains/extension/repository"
	ledgerService "fleetdesk/internal/domains/ledger/service"
	maintenanceRepository "fleetdesk/internal/domains/maintenance/repository"
	maintenanceService "fleetdesk/internal/domains/maintenance/service"
	retrievalRepository "fleetdesk/internal/domains/retrieval/repository"
	staffRepository "fleetdesk/internal/domains/staff/repository"
	staffService "fleetdesk/internal/domains/staff/service"
	sweepService "fleetdesk/internal/domains/sweep/service"
	vehicleRepository "fleetdesk/internal/domains/vehicle/repository"
	vehicleService "fleetdesk/internal/domains/vehicle/service"
	authHandler "fleetdesk/internal/handlers/auth"
	bookingHandler "fleetdesk/internal/handlers/booking"
	complianceHandler "fleetdesk/internal/handlers/compliance"
	customerHandler "fleetdesk/internal/handlers/customer"
	dashboardHandler "fleetdesk/internal/handlers/dashboard"
	healthHandler "fleetdesk/internal/handlers/health"
	maintenanceHandler "fleetdesk/internal/handlers/maintenance"
	staffHandler "fleetdesk/internal/handlers/staff"
	vehicleHandler "fleetdesk/internal/handlers/vehicle"
	"fleetdesk/internal/scheduler"
	"fleetdesk/permissions"
	"fleetdesk/shared/cache"
	gRepo "fleetdesk/shared/repository"
	"fleetdesk/transport/http"
	"fleetdesk/transport/http/middleware"
	"fleetdesk/transport/http/router"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	metrics.New,
)

var messaging = wire.NewSet(
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	gRepo.NewTransactor,
)

var repositories = wire.NewSet(
	staffRepository.New,
	customerRepository.New,
	vehicleRepository.New,
	bookingRepository.New,
	extensionRepository.New,
	chargeRepository.New,
	retrievalRepository.New,
	complianceRepository.New,
	maintenanceRepository.New,
)

var domains = wire.NewSet(
	repositories,
	ledgerService.New,
	authService.New,
	staffService.New,
	customerService.New,
	vehicleService.New,
	bookingService.New,
	complianceService.New,
	maintenanceService.New,
	dashboardService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	wire.Bind(new(healthHandler.Pinger), new(*postgres.Connection)),
	healthHandler.New,
	authHandler.New,
	staffHandler.New,
	customerHandler.New,
	vehicleHandler.New,
	bookingHandler.New,
	complianceHandler.New,
	maintenanceHandler.New,
	dashboardHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeScheduler() *scheduler.Scheduler {
	wire.Build(
		configurations,
		infrastructures,
		messaging,
		sharedHelpers,
		domains,
		sweepService.New,
		scheduler.New,
	)

	return &scheduler.Scheduler{}
}
