package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"uat/internal/audit"
	"uat/internal/platform/config"
	platformmetrics "uat/internal/platform/metrics"
	"uat/internal/platform/postgres"
	"uat/internal/platform/redis"
	"uat/internal/program/cache"
	usermetrics "uat/internal/user/metrics"
	"uat/internal/user/service"
	accountstore "uat/internal/user/store/account"
	applicantstore "uat/internal/user/store/applicant"
	programstore "uat/internal/user/store/program"
	groupstore "uat/internal/user/store/tigroup"
	"uat/pkg/platform/circuit"
	"uat/pkg/platform/executor"
	txcontext "uat/pkg/platform/tx"
)

// app holds the wired dependencies shared by every command.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *usermetrics.Metrics

	applicants service.ApplicantStore
	accounts   service.AccountStore
	programs   *cache.Programs
	groups     service.GroupStore
	audit      service.AuditPublisher

	pool  *executor.Pool
	users *service.Service

	closers []func() error
}

// newApp wires the stores against Postgres when a database URL is set and
// against in-memory stores otherwise. Redis backs the program cache and
// Kafka receives audit events when they are configured.
func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (_ *app, err error) {
	a := &app{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()
	a.metrics = usermetrics.New(a.registry)

	var (
		programs   cache.Store
		transactor service.Transactor
	)
	if cfg.Database.URL != "" {
		db, err := openDatabase(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		a.applicants = applicantstore.NewPostgres(db)
		a.accounts = accountstore.NewPostgres(db)
		a.groups = groupstore.NewPostgres(db)
		programs = programstore.NewPostgres(db)
		transactor = txcontext.NewSQLTransactor(db)
	} else {
		logger.WarnContext(ctx, "no database configured, using in-memory stores")
		a.applicants = applicantstore.NewInMemory()
		a.accounts = accountstore.NewInMemory()
		a.groups = groupstore.NewInMemory()
		programs = programstore.NewInMemory()
		transactor = txcontext.NewLocalTransactor()
	}

	backend, breaker, err := a.programCache(ctx)
	if err != nil {
		return nil, err
	}
	cacheOpts := []cache.Option{cache.WithLogger(logger), cache.WithRecorder(a.metrics)}
	if breaker != nil {
		cacheOpts = append(cacheOpts, cache.WithBreaker(breaker))
	}
	a.programs = cache.NewPrograms(programs, backend, cacheOpts...)

	if a.audit, err = a.auditPublisher(); err != nil {
		return nil, err
	}

	a.pool = executor.NewPool(cfg.Database.Workers, cfg.Database.Queue,
		executor.WithName("db"),
		executor.WithLogger(logger),
		executor.WithObserver(platformmetrics.NewExecutor(a.registry)),
	)
	a.closers = append(a.closers, a.pool.Close)

	a.users, err = service.New(a.applicants, a.accounts, a.programs, a.groups, a.pool,
		service.WithLogger(logger),
		service.WithMetrics(a.metrics),
		service.WithAuditPublisher(a.audit),
		service.WithTransactor(transactor),
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := postgres.Open(ctx, cfg.URL, postgres.Options{
		Driver:       cfg.Driver,
		MaxOpenConns: cfg.Workers,
		MaxIdleConns: cfg.Workers,
	})
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// programCache prefers Redis, guarded by a breaker, and falls back to a
// process-local cache when no Redis URL is set.
func (a *app) programCache(ctx context.Context) (cache.Backend, *circuit.Breaker, error) {
	client, err := redis.New(ctx, a.cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return cache.NewLocal(a.cfg.ProgramCacheTTL), nil, nil
	}
	a.closers = append(a.closers, client.Close)
	return cache.NewRedis(client, a.cfg.ProgramCacheTTL), circuit.New("program-cache"), nil
}

func (a *app) auditPublisher() (service.AuditPublisher, error) {
	if len(a.cfg.Kafka.Brokers) == 0 {
		return audit.NewInMemory(), nil
	}
	publisher, err := audit.NewKafkaPublisher(a.cfg.Kafka.Brokers, a.cfg.Kafka.AuditTopic)
	if err != nil {
		return nil, fmt.Errorf("audit publisher: %w", err)
	}
	a.closers = append(a.closers, func() error {
		publisher.Close()
		return nil
	})
	return publisher, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
