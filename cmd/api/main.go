package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wakacyjne/trip-expense-api/internal/adapters/httpapi"
	memcurrencyrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/currencyrepo"
	memexpenserepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/expenserepo"
	memparticipantrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/participantrepo"
	mempaymentrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/paymentrepo"
	memtriplinkrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/triplinkrepo"
	memtriprepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/triprepo"
	memuserrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/userrepo"
	"github.com/wakacyjne/trip-expense-api/internal/adapters/postgres"
	pgcurrencyrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/postgres/currencyrepo"
	pgexpenserepo "github.com/wakacyjne/trip-expense-api/internal/adapters/postgres/expenserepo"
	pgparticipantrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/postgres/participantrepo"
	pgpaymentrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/postgres/paymentrepo"
	pgtriplinkrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/postgres/triplinkrepo"
	pgtriprepo "github.com/wakacyjne/trip-expense-api/internal/adapters/postgres/triprepo"
	pguserrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/postgres/userrepo"
	"github.com/wakacyjne/trip-expense-api/internal/app/authn"
	"github.com/wakacyjne/trip-expense-api/internal/app/currencies"
	"github.com/wakacyjne/trip-expense-api/internal/app/expenses"
	"github.com/wakacyjne/trip-expense-api/internal/app/participants"
	"github.com/wakacyjne/trip-expense-api/internal/app/payments"
	"github.com/wakacyjne/trip-expense-api/internal/app/triplinks"
	"github.com/wakacyjne/trip-expense-api/internal/app/trips"
	"github.com/wakacyjne/trip-expense-api/internal/app/users"
	"github.com/wakacyjne/trip-expense-api/internal/domain"
	platformclock "github.com/wakacyjne/trip-expense-api/internal/platform/clock"
	"github.com/wakacyjne/trip-expense-api/internal/platform/config"
	"github.com/wakacyjne/trip-expense-api/internal/platform/logging"
	clockport "github.com/wakacyjne/trip-expense-api/internal/ports/out/clock"
	currencyrepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/currencyrepo"
	expenserepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/expenserepo"
	participantrepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/participantrepo"
	paymentrepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/paymentrepo"
	triplinkrepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/triplinkrepo"
	triprepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/triprepo"
	userrepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/userrepo"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	clk := platformclock.NewSystemClock()

	var (
		userRepo        userrepoport.Repository
		tripRepo        triprepoport.Repository
		participantRepo participantrepoport.Repository
		expenseRepo     expenserepoport.Repository
		linkRepo        triplinkrepoport.Repository
		currencyRepo    currencyrepoport.Repository
		paymentRepo     paymentrepoport.Repository
		cleanup         func()
	)

	switch cfg.StorageBackend {
	case "postgres":
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			slog.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		cleanup = pool.Close

		userRepo = pguserrepo.NewRepo(pool)
		tripRepo = pgtriprepo.NewRepo(pool)
		participantRepo = pgparticipantrepo.NewRepo(pool)
		expenseRepo = pgexpenserepo.NewRepo(pool)
		linkRepo = pgtriplinkrepo.NewRepo(pool)
		currencyRepo = pgcurrencyrepo.NewRepo(pool)
		paymentRepo = pgpaymentrepo.NewRepo(pool)
	default:
		userRepo = memuserrepo.NewRepo()
		tripRepo = memtriprepo.NewRepo()
		participantRepo = memparticipantrepo.NewRepo()
		expenseRepo = memexpenserepo.NewRepo()
		linkRepo = memtriplinkrepo.NewRepo()
		currencyRepo = memcurrencyrepo.NewRepo()
		paymentRepo = mempaymentrepo.NewRepo()
	}

	if cleanup != nil {
		defer cleanup()
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := seedAdmin(context.Background(), userRepo, clk, cfg); err != nil {
			slog.Error("admin seeding failed", "error", err)
			os.Exit(1)
		}
	}

	authnSvc := authn.NewService(userRepo, clk, cfg.TokenExpiry, cfg.BcryptCost)
	usersSvc := users.NewService(userRepo, clk)
	tripsSvc := trips.NewService(tripRepo, expenseRepo, participantRepo, linkRepo, clk)
	participantsSvc := participants.NewService(participantRepo, linkRepo, clk)
	expensesSvc := expenses.NewService(expenseRepo, tripRepo, clk)
	tripLinksSvc := triplinks.NewService(linkRepo, tripRepo, participantRepo, clk)
	currenciesSvc := currencies.NewService(currencyRepo, clk)
	paymentsSvc := payments.NewService(paymentRepo, currencyRepo, clk)

	api := httpapi.NewServer(
		authnSvc,
		usersSvc,
		tripsSvc,
		participantsSvc,
		expensesSvc,
		tripLinksSvc,
		currenciesSvc,
		paymentsSvc,
	)

	handler := httpapi.NewRouter(api, httpapi.NewMetrics())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("api listening", "port", cfg.Port, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// seedAdmin ensures an enabled ADMIN account exists for the configured
// credentials. An already-registered account is left untouched.
func seedAdmin(ctx context.Context, repo userrepoport.Repository, clk clockport.Clock, cfg config.Config) error {
	email := domain.NormalizeEmail(cfg.AdminEmail)
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, userrepoport.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cfg.BcryptCost)
	if err != nil {
		return err
	}

	now := clk.Now()
	admin := domain.User{
		ID:           domain.UserID(uuid.NewString()),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsEnabled:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(ctx, admin); err != nil {
		if errors.Is(err, userrepoport.ErrAlreadyExists) {
			return nil
		}
		return err
	}
	slog.Info("seeded admin account", "email", email)
	return nil
}
