package transaction

import "go.uber.org/fx"

// Module exposes the ledger service via Fx.
var Module = fx.Options(
	fx.Provide(
		fx.Annotate(NewService, fx.As(new(TransactionManager))),
	),
)
