package partner

import (
	"go.uber.org/fx"

	"github.com/staysidelabs/stayside/internal/partner/repository"
	"github.com/staysidelabs/stayside/internal/partner/service"
)

var Module = fx.Module("partner.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
