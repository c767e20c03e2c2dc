//go:build wireinject
// +build wireinject

package di

import (
	"mariachi/config"
	"mariachi/infras/jwt"
	"mariachi/infras/kafka"
	"mariachi/infras/metrics"
	"mariachi/infras/otel"
	"mariachi/infras/postgres"
	"mariachi/infras/redis"
	"mariachi/permissions"
	"mariachi/shared/cache"
	"mariachi/shared/lock"
	"mariachi/transport/http"
	"mariachi/transport/http/middleware"
	"mariachi/transport/http/router"

	"github.com/google/wire"

	authService "mariachi/internal/domains/auth/service"
	availabilityService "mariachi/internal/domains/availability/service"
	blockRepository "mariachi/internal/domains/block/repository"
	blockService "mariachi/internal/domains/block/service"
	pricingService "mariachi/internal/domains/pricing/service"
	quotationRepository "mariachi/internal/domains/quotation/repository"
	quotationService "mariachi/internal/domains/quotation/service"
	rehearsalRepository "mariachi/internal/domains/rehearsal/repository"
	rehearsalService "mariachi/internal/domains/rehearsal/service"
	reservationRepository "mariachi/internal/domains/reservation/repository"
	reservationService "mariachi/internal/domains/reservation/service"
	userRepository "mariachi/internal/domains/user/repository"
	userService "mariachi/internal/domains/user/service"

	authHandler "mariachi/internal/handlers/auth"
	availabilityHandler "mariachi/internal/handlers/availability"
	blockHandler "mariachi/internal/handlers/block"
	pricingHandler "mariachi/internal/handlers/pricing"
	quotationHandler "mariachi/internal/handlers/quotation"
	rehearsalHandler "mariachi/internal/handlers/rehearsal"
	reservationHandler "mariachi/internal/handlers/reservation"
	userHandler "mariachi/internal/handlers/user"
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
	kafka.New,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	lock.NewRedisLocker,
)

var repositories = wire.NewSet(
	blockRepository.New,
	reservationRepository.New,
	reservationRepository.NewPayment,
	quotationRepository.New,
	rehearsalRepository.New,
	userRepository.New,
)

var bookingDomain = wire.NewSet(
	availabilityService.New,
	blockService.New,
	reservationService.New,
	quotationService.New,
	rehearsalService.New,
	pricingService.New,
)

var accountDomain = wire.NewSet(
	userService.New,
	authService.New,
)

var domains = wire.NewSet(
	repositories,
	bookingDomain,
	accountDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	availabilityHandler.New,
	blockHandler.New,
	reservationHandler.New,
	quotationHandler.New,
	rehearsalHandler.New,
	pricingHandler.New,
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

// InitializeSweeper builds only what a batch sweep needs.
func InitializeSweeper() reservationService.Reservation {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		redis.New,
		kafka.New,
		metrics.New,
		sharedHelpers,
		blockRepository.New,
		reservationRepository.New,
		reservationRepository.NewPayment,
		quotationRepository.New,
		rehearsalRepository.New,
		availabilityService.New,
		reservationService.New,
	)

	return nil
}
