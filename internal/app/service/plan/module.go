package plan

import (
	"context"

	"go.uber.org/fx"

	cfgpkg "github.com/careerpilot/backend/pkg/config"
)

func runSeed(cfg *cfgpkg.Config, s *Service) error {
	if !cfg.Seed.Plans {
		return nil
	}
	return s.Seed(context.Background())
}

// Module exposes the plan service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
	fx.Invoke(runSeed),
)
