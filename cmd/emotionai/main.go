package main

import (
	"context"
	"log/slog"
	"os"

	"emotionai/config"
	"emotionai/internal/delivery"
	"emotionai/internal/delivery/http"
	"emotionai/internal/delivery/http/middleware"
	"emotionai/internal/delivery/http/router/handler"
	"emotionai/internal/infra/agentapi"
	"emotionai/internal/infra/auth"
	"emotionai/internal/infra/crypto"
	logs "emotionai/internal/infra/log"
	"emotionai/internal/infra/modelapi"
	"emotionai/internal/infra/persistence/postgres"
	"emotionai/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
			postgres.NewPatientRepository,
			postgres.NewTherapySessionRepository,
			postgres.NewPatientNoteRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			crypto.NewFieldCipher,
			modelapi.NewClient,
			agentapi.NewClient,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewIdentityService,
			impl.NewPatientService,
			impl.NewTherapySessionService,
			impl.NewAnalyticsService,
			impl.NewAgentService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewRequestIDMiddleware,
			middleware.NewLoggerMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewPatientHandler,
			handler.NewTherapySessionHandler,
			handler.NewAnalyticsHandler,
			handler.NewAgentHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
