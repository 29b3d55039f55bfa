package components

import (
	"library-reserve/internal/pkg/clock"
	"library-reserve/internal/pkg/config"
	"library-reserve/internal/usecase"
	"library-reserve/internal/usecase/commands"
	"library-reserve/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.PolicyConfig { return cfg.Policy },
	func(cfg config.Config) config.SweepConfig { return cfg.Sweep },
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewLoanQueries,
		queries.NewReservationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewLoanUseCase,
		commands.NewReservationUseCase,
		commands.NewSweepUseCase,
	),
)
