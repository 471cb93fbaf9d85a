package booking

import (
	"go.uber.org/fx"

	"github.com/staysidelabs/stayside/internal/booking/repository"
	"github.com/staysidelabs/stayside/internal/booking/service"
)

var Module = fx.Module("booking.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
