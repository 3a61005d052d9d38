//go:build wireinject
// +build wireinject

package di

import (
	"agenda/config"
	"agenda/infras/kafka"
	"agenda/infras/metrics"
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/infras/redis"
	"agenda/internal/domains/dialogue/session"
	"agenda/shared/cache"
	"agenda/shared/hasher"
	"agenda/transport/http"
	"agenda/transport/http/middleware"
	"agenda/transport/http/router"

	dialogueService "agenda/internal/domains/dialogue/service"
	doctorRepository "agenda/internal/domains/doctor/repository"
	doctorService "agenda/internal/domains/doctor/service"
	scheduleRepository "agenda/internal/domains/schedule/repository"
	scheduleService "agenda/internal/domains/schedule/service"

	"github.com/google/wire"

	doctorHandler "agenda/internal/handlers/doctor"
	eventHandler "agenda/internal/handlers/event"
	scheduleHandler "agenda/internal/handlers/schedule"
	webhookHandler "agenda/internal/handlers/webhook"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	metrics.NewRegistry,
	metrics.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	hasher.New,
)

var doctorDomain = wire.NewSet(
	doctorRepository.New,
	doctorService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
)

var dialogueDomain = wire.NewSet(
	session.New,
	dialogueService.New,
	wire.Bind(new(dialogueService.DoctorDirectory), new(doctorService.Doctor)),
	wire.Bind(new(dialogueService.SlotBooking), new(scheduleService.Schedule)),
)

var domains = wire.NewSet(
	doctorDomain,
	scheduleDomain,
	dialogueDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	doctorHandler.New,
	scheduleHandler.New,
	webhookHandler.New,
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

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		eventHandler.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
