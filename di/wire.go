//go:build wireinject
// +build wireinject

package di

import (
	"stay/config"
	"stay/infras/jwt"
	"stay/infras/kafka"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/infras/redis"
	"stay/permissions"
	"stay/shared/cache"
	"stay/transport/http"
	"stay/transport/http/middleware"
	"stay/transport/http/router"

	"github.com/google/wire"

	authService "stay/internal/domains/auth/service"
	bookingRepository "stay/internal/domains/booking/repository"
	bookingService "stay/internal/domains/booking/service"
	hotelRepository "stay/internal/domains/hotel/repository"
	hotelService "stay/internal/domains/hotel/service"
	paymentRepository "stay/internal/domains/payment/repository"
	paymentService "stay/internal/domains/payment/service"
	roomRepository "stay/internal/domains/room/repository"
	roomService "stay/internal/domains/room/service"
	userRepository "stay/internal/domains/user/repository"

	authHandler "stay/internal/handlers/auth"
	bookingHandler "stay/internal/handlers/booking"
	hotelHandler "stay/internal/handlers/hotel"
	paymentHandler "stay/internal/handlers/payment"
	roomHandler "stay/internal/handlers/room"
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
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var hotelDomain = wire.NewSet(
	hotelRepository.New,
	hotelService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var domains = wire.NewSet(
	authDomain,
	hotelDomain,
	roomDomain,
	bookingDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	hotelHandler.New,
	roomHandler.New,
	bookingHandler.New,
	paymentHandler.New,
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
