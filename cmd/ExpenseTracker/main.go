package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/sebuszqo/ExpenseTracker/internal/config"
	"github.com/sebuszqo/ExpenseTracker/internal/expenses/application"
	"github.com/sebuszqo/ExpenseTracker/internal/expenses/interfaces"
	"github.com/sebuszqo/ExpenseTracker/internal/logger"
	"github.com/sebuszqo/ExpenseTracker/internal/user"
)

func main() {
	os.Exit(start())
}

// start wires config, logger and signals around run and returns the process
// exit code, so deferred cleanup runs before os.Exit.
func start() int {
	cfg, envLoaded, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Missing configuration, update to start server: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not initialize logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	if !envLoaded {
		log.Info("No .env file found, continuing with system environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Server stopped with error", "error", err)
		return 1
	}
	log.Info("Server stopped")
	return 0
}

func buildServer(st *store, cfg config.Config, log *logger.Logger) *Server {
	userService := user.NewUserService(st.users)
	categoryRegistry := application.NewCategoryRegistry(st.categories)
	expenseLedger := application.NewExpenseLedger(st.expenses, userService, categoryRegistry)

	userHandler := user.NewHandler(userService, cfg.BcryptCost, log, respondJSON, respondError)
	categoryHandler := interfaces.NewCategoryHandler(categoryRegistry, log, respondJSON, respondError)
	expenseHandler := interfaces.NewExpenseHandler(expenseLedger, log, respondJSON, respondError)

	server := NewServer(log, userHandler, categoryHandler, expenseHandler, st.health)
	server.RegisterRoutes()
	return server
}

// run serves HTTP until ctx is cancelled, then drains in-flight requests
// within cfg.ShutdownTimeout.
func run(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("could not initialize store: %w", err)
	}
	defer st.close()

	if cfg.HealthCheckSchedule != "off" {
		scheduler, err := StartHealthScheduler(cfg.HealthCheckSchedule, st.health, log)
		if err != nil {
			return fmt.Errorf("health scheduler didn't start: %w", err)
		}
		defer scheduler.Stop()
	}

	server := buildServer(st, cfg, log)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Handler(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", "addr", cfg.HTTPAddr, "store", cfg.StoreDriver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
