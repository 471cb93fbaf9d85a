package catalog

import (
	"go.uber.org/fx"

	"github.com/staysidelabs/stayside/internal/catalog/repository"
	"github.com/staysidelabs/stayside/internal/catalog/service"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
