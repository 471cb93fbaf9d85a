package commission

import (
	"go.uber.org/fx"

	"github.com/staysidelabs/stayside/internal/commission/repository"
	"github.com/staysidelabs/stayside/internal/commission/service"
)

var Module = fx.Module("commission.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
