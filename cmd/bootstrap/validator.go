package bootstrap

import (
	"telescope-scheduler/internal/handler/validation"

	"go.uber.org/fx"
)

var ValidatorModule = fx.Module("validator",
	fx.Invoke(validation.Register),
)
