package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"field-delivery-sync/internal/config"
	"field-delivery-sync/internal/credentials"
	"field-delivery-sync/internal/export"
	"field-delivery-sync/internal/gateway/backend"
	"field-delivery-sync/internal/logx"
	"field-delivery-sync/internal/metrics"
	"field-delivery-sync/internal/repository"
	"field-delivery-sync/internal/service/mapper"
	"field-delivery-sync/internal/service/reference"
	"field-delivery-sync/internal/service/store"
	"field-delivery-sync/internal/transport/kafka"
)

type dbConnectFunc func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect  dbConnectFunc
	migrate    func(context.Context, string) error
	loadConfig func() (*config.Config, error)
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect:  connectDbWithRetry,
		migrate:    repository.Migrate,
		loadConfig: config.Load,
		registerer: prometheus.DefaultRegisterer,
		gatherer:   prometheus.DefaultGatherer,
		logFatalf:  log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithMigrate sets the schema migration function
func (b *ContainerBuilder) WithMigrate(fn func(context.Context, string) error) *ContainerBuilder {
	if fn != nil {
		b.migrate = fn
	}
	return b
}

// WithConfig replaces config.Load
func (b *ContainerBuilder) WithConfig(fn func() (*config.Config, error)) *ContainerBuilder {
	if fn != nil {
		b.loadConfig = fn
	}
	return b
}

// WithRegistry registers and serves metrics from reg instead of the
// default prometheus registry
func (b *ContainerBuilder) WithRegistry(reg *prometheus.Registry) *ContainerBuilder {
	if reg != nil {
		b.registerer = reg
		b.gatherer = reg
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// Build builds the container without exiting on error.
func (b *ContainerBuilder) Build(ctx context.Context) (*dig.Container, error) {
	return b.build(ctx)
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerMetrics(container, b.registerer, b.gatherer); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerCredentials(container, b.dbConnect, b.migrate); err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}
	if err := registerServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, load func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		load,
		NewLogger,
	)
}

func registerMetrics(container *dig.Container, reg prometheus.Registerer, gatherer prometheus.Gatherer) error {
	return provideAll(container,
		func() prometheus.Registerer { return reg },
		func() prometheus.Gatherer { return gatherer },
		provideMetrics,
	)
}

type credentialsOut struct {
	dig.Out

	Storage credentials.Storage
	// Pool is nil unless credentials live in Postgres.
	Pool *pgxpool.Pool
}

func registerCredentials(container *dig.Container, dbConnect dbConnectFunc, migrate func(context.Context, string) error) error {
	provider := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (credentialsOut, error) {
		switch cfg.Credentials.Backend {
		case config.CredentialsMemory:
			return credentialsOut{Storage: credentials.NewMemoryStore()}, nil
		case config.CredentialsPostgres:
			dsn := cfg.DB.DSN()
			pool, err := dbConnect(ctx, logger, dsn, 10, time.Second)
			if err != nil {
				return credentialsOut{}, err
			}
			if err := migrate(ctx, dsn); err != nil {
				pool.Close()
				return credentialsOut{}, fmt.Errorf("migrate: %w", err)
			}
			return credentialsOut{Storage: repository.NewCredentialRepo(pool), Pool: pool}, nil
		default:
			return credentialsOut{Storage: credentials.NewFileStore(cfg.Credentials.Path)}, nil
		}
	}
	return provideAll(container, provider)
}

type backendIn struct {
	dig.In

	Config       *config.Config
	Creds        credentials.Storage
	Logger       logx.Logger
	Unauthorized prometheus.Counter `name:"backend_unauthorized_total"`
	Retries      prometheus.Counter `name:"gateway_retries_total"`
}

func provideBackend(in backendIn) (backend.API, error) {
	bc := in.Config.Backend
	client, err := backend.NewClient(backend.Config{
		BaseURL:      bc.BaseURL,
		Timeout:      bc.Timeout,
		LoginTimeout: bc.LoginTimeout,
	}, nil, in.Creds, in.Logger, in.Unauthorized)
	if err != nil {
		return nil, err
	}
	return backend.NewRetryingAPI(client, in.Logger, in.Retries, backend.RetryConfig{
		MaxAttempts: bc.Retry.MaxAttempts,
		BaseDelay:   bc.Retry.BaseDelay,
		MaxDelay:    bc.Retry.MaxDelay,
	}), nil
}

func provideStore(
	api backend.API,
	refs *reference.Service,
	m *mapper.Mapper,
	events *kafka.Publisher,
	ops *metrics.StoreOperations,
	logger logx.Logger,
	cfg *config.Config,
) *store.Store {
	return store.New(api, refs, m, events, ops, logger, cfg.Store.OperationTimeout)
}

func registerServices(container *dig.Container) error {
	return provideAll(container,
		provideBackend,
		func(api backend.API, logger logx.Logger) *reference.Service {
			return reference.NewService(api, logger)
		},
		mapper.New,
		func(cfg *config.Config, logger logx.Logger) (*kafka.Publisher, error) {
			return kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		},
		provideStore,
		func() *export.Generator { return export.NewGenerator(time.Local) },
	)
}
