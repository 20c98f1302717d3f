package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/eventos-erp/internal/application/events"
	"github.com/jhoicas/eventos-erp/internal/application/inventory"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
	"github.com/jhoicas/eventos-erp/internal/infrastructure/memory"
	"github.com/jhoicas/eventos-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/eventos-erp/pkg/config"
	"github.com/jhoicas/eventos-erp/pkg/logger"
)

// txRunner lo cumplen los TxRunner de postgres y de memoria.
type txRunner interface {
	inventory.TxRunner
	events.TxRunner
}

// storage repositorios del driver elegido en STORE_DRIVER.
type storage struct {
	companies    repository.CompanyRepository
	users        repository.UserRepository
	invitations  repository.InvitationRepository
	products     repository.ProductRepository
	movements    repository.StockMovementRepository
	transactions repository.TransactionRepository
	events       repository.EventRepository
	employees    repository.EmployeeRepository
	tasks        repository.TaskRepository
	blocks       repository.BlockedDateRepository
	dashboard    repository.DashboardRepository
	tx           txRunner

	ping  func(ctx context.Context) error
	close func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			companies:    memory.NewCompanyRepository(s),
			users:        memory.NewUserRepository(s),
			invitations:  memory.NewInvitationRepository(s),
			products:     memory.NewProductRepository(s),
			movements:    memory.NewStockMovementRepository(s),
			transactions: memory.NewTransactionRepository(s),
			events:       memory.NewEventRepository(s),
			employees:    memory.NewEmployeeRepository(s),
			tasks:        memory.NewTaskRepository(s),
			blocks:       memory.NewBlockedDateRepository(s),
			dashboard:    memory.NewDashboardRepository(s),
			tx:           memory.NewTxRunner(s),
			ping:         func(context.Context) error { return nil },
			close:        func() {},
		}, nil

	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Zerolog())
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &storage{
			companies:    postgres.NewCompanyRepository(pool),
			users:        postgres.NewUserRepository(pool),
			invitations:  postgres.NewInvitationRepository(pool),
			products:     postgres.NewProductRepository(pool),
			movements:    postgres.NewStockMovementRepository(pool),
			transactions: postgres.NewTransactionRepository(pool),
			events:       postgres.NewEventRepository(pool),
			employees:    postgres.NewEmployeeRepository(pool),
			tasks:        postgres.NewTaskRepository(pool),
			blocks:       postgres.NewBlockedDateRepository(pool),
			dashboard:    postgres.NewDashboardRepository(pool),
			tx:           postgres.NewTxRunner(pool),
			ping:         pool.Ping,
			close:        pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido %q", cfg.App.StoreDriver)
}
