package order

import (
	"go.uber.org/fx"

	"github.com/careerpilot/backend/internal/app/service/plan"
)

// Module exposes the payment order service via Fx.
var Module = fx.Options(
	fx.Provide(func(s *plan.Service) PlanFinder { return s }),
	fx.Provide(NewService),
)
