package availability

import (
	"go.uber.org/fx"

	"github.com/staysidelabs/stayside/internal/availability/repository"
	"github.com/staysidelabs/stayside/internal/availability/service"
)

var Module = fx.Module("availability.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
