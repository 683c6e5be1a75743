package main

import (
	"context"
	"fmt"

	database "github.com/sebuszqo/ExpenseTracker/db"
	"github.com/sebuszqo/ExpenseTracker/internal/config"
	"github.com/sebuszqo/ExpenseTracker/internal/expenses/domain"
	"github.com/sebuszqo/ExpenseTracker/internal/expenses/infrastructure"
	"github.com/sebuszqo/ExpenseTracker/internal/logger"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

// store bundles the repositories of one backing store with its health probe.
type store struct {
	users      user.Repository
	categories domain.CategoryRepository
	expenses   domain.ExpenseRepository
	health     func(ctx context.Context) map[string]string
	close      func() error
}

func openStore(ctx context.Context, cfg config.Config, log *logger.Logger) (*store, error) {
	var (
		dbService *database.DBService
		err       error
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		memory := infrastructure.NewMemoryStore()
		return &store{
			users:      memory.Users(),
			categories: memory.Categories(),
			expenses:   memory.Expenses(),
			health: func(context.Context) map[string]string {
				return map[string]string{"status": "up", "driver": config.DriverMemory}
			},
			close: func() error { return nil },
		}, nil
	case config.DriverSQLite:
		dbService, err = database.NewSQLiteService(ctx, cfg.SQLitePath, log)
	case config.DriverPostgres:
		dbService, err = database.NewPostgresService(ctx, cfg.DBConnectionString, log)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	return &store{
		users:      user.NewUserRepository(dbService.DB),
		categories: infrastructure.NewCategoryRepository(dbService.DB),
		expenses:   infrastructure.NewExpenseRepository(dbService.DB),
		health:     dbService.Health,
		close:      dbService.Close,
	}, nil
}
