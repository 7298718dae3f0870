package components

import (
	"telescope-scheduler/internal/infra/readstore"
	"telescope-scheduler/internal/infra/repository"
	"telescope-scheduler/internal/infra/uow"
	"telescope-scheduler/internal/usecase/queries"
	"telescope-scheduler/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Appointment
		fx.Annotate(
			readstore.NewAppointmentReadStore,
			fx.As(new(queries.AppointmentReadStore)),
		),
		// Directory
		fx.Annotate(
			readstore.NewDirectoryReadStore,
			fx.As(new(queries.DirectoryReadStore)),
		),
		// Log
		fx.Annotate(
			readstore.NewLogReadStore,
			fx.As(new(queries.LogReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		uow.NewPostgresUoW,
		// Audit log rows written outside a command transaction
		fx.Annotate(
			repository.NewAuditLogRepository,
			fx.As(new(shared.AuditLogRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) shared.DBTX {
	return pool
}
