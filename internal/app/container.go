package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	activityCommands "github.com/manumorante/whats-next/internal/activities/application/commands"
	activityQueries "github.com/manumorante/whats-next/internal/activities/application/queries"
	activitiesDomain "github.com/manumorante/whats-next/internal/activities/domain"
	"github.com/manumorante/whats-next/internal/shared/infrastructure/database"
	_ "github.com/manumorante/whats-next/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/manumorante/whats-next/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/manumorante/whats-next/internal/shared/infrastructure/eventbus"
	"github.com/manumorante/whats-next/internal/shared/infrastructure/migrations"
	suggestionQueries "github.com/manumorante/whats-next/internal/suggestions/application/queries"
	"github.com/manumorante/whats-next/internal/suggestions/infrastructure/cache"
	"github.com/manumorante/whats-next/internal/suggestions/infrastructure/resilience"
	"github.com/manumorante/whats-next/pkg/config"
	"github.com/manumorante/whats-next/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics
	Health  *observability.HealthRegistry

	// Infrastructure
	DB                database.Connection
	RedisClient       *redis.Client
	InProcessEventBus *eventbus.InProcessEventBus
	RabbitMQPublisher *eventbus.RabbitMQPublisher
	RabbitMQConsumer  *eventbus.RabbitMQConsumer
	EventPublisher    eventbus.Publisher

	// Repositories
	ActivityRepo activitiesDomain.ActivityRepository
	ContextRepo  activitiesDomain.ContextRepository
	CategoryRepo activitiesDomain.CategoryRepository

	// Activity command handlers
	CreateActivityHandler   *activityCommands.CreateActivityHandler
	UpdateActivityHandler   *activityCommands.UpdateActivityHandler
	DeleteActivityHandler   *activityCommands.DeleteActivityHandler
	CompleteActivityHandler *activityCommands.CompleteActivityHandler
	ToggleActivityHandler   *activityCommands.ToggleActivityHandler
	ContextHandler          *activityCommands.ContextHandler
	CategoryHandler         *activityCommands.CategoryHandler

	// Activity query handlers
	ListActivitiesHandler  *activityQueries.ListActivitiesHandler
	GetActivityHandler     *activityQueries.GetActivityHandler
	ListCompletionsHandler *activityQueries.ListCompletionsHandler
	ListContextsHandler    *activityQueries.ListContextsHandler
	ListCategoriesHandler  *activityQueries.ListCategoriesHandler

	// Suggestions
	GetSuggestionsHandler        *suggestionQueries.GetSuggestionsHandler
	GetActiveContextsHandler     *suggestionQueries.GetActiveContextsHandler
	ActivitiesByTimeOfDayHandler *suggestionQueries.ActivitiesByTimeOfDayHandler
	ActivityBreaker              *resilience.ActivitySource
	ContextBreaker               *resilience.ContextSource
}

// NewContainer wires the application. The store is required. Redis and
// RabbitMQ are optional: in development a failure to reach them falls back
// to the in-process cache and bus, in production it is an error.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
		Health:  observability.NewHealthRegistry(0),
	}

	if err := c.openDatabase(ctx); err != nil {
		return nil, err
	}

	if err := c.connectRedis(ctx); err != nil {
		c.Close()
		return nil, err
	}

	if err := c.setupEventBus(); err != nil {
		c.Close()
		return nil, err
	}

	if err := c.wireHandlers(); err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

func (c *Container) openDatabase(ctx context.Context) error {
	conn, err := database.NewConnection(ctx, database.Config{
		Driver:     database.ParseDriver(c.Config.DatabaseDriver),
		URL:        c.Config.DatabaseURL,
		SQLitePath: c.Config.SQLitePath,
		MaxConns:   c.Config.DatabaseMaxConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := migrations.Run(ctx, conn); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.DB = conn
	c.Health.Register("database", observability.DatabaseHealthChecker(conn.Ping))
	c.Logger.Info("connected to database", "driver", conn.Driver().String())

	factory := NewRepositoryFactory(conn)
	c.ActivityRepo = factory.ActivityRepository()
	c.ContextRepo = factory.ContextRepository()
	c.CategoryRepo = factory.CategoryRepository()
	return nil
}

func (c *Container) connectRedis(ctx context.Context) error {
	if c.Config.RedisURL == "" {
		return nil
	}
	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		c.Logger.Warn("invalid Redis URL, suggestions will use the in-memory cache", "error", err)
		return nil
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, suggestions will use the in-memory cache", "error", err)
		return nil
	}

	c.RedisClient = client
	c.Health.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}))
	c.Logger.Info("connected to Redis")
	return nil
}

func (c *Container) setupEventBus() error {
	c.InProcessEventBus = eventbus.NewInProcessEventBus(c.Logger)

	if c.Config.RabbitMQURL == "" {
		c.EventPublisher = eventbus.NewMultiPublisher(c.InProcessEventBus)
		return nil
	}

	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.Logger.Warn("RabbitMQ not available, events stay in process", "error", err)
		c.EventPublisher = eventbus.NewMultiPublisher(c.InProcessEventBus)
		return nil
	}
	c.RabbitMQPublisher = publisher
	c.EventPublisher = eventbus.NewMultiPublisher(c.InProcessEventBus, publisher)
	c.Health.Register("rabbitmq", observability.RabbitMQHealthChecker(func(context.Context) error {
		if publisher.IsClosed() {
			return errors.New("connection closed")
		}
		return nil
	}))

	consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
		URL:    c.Config.RabbitMQURL,
		Logger: c.Logger,
	}, eventbus.NewConsumerRegistry(c.Logger))
	if err != nil {
		if !c.Config.IsDevelopment() {
			return fmt.Errorf("failed to start RabbitMQ consumer: %w", err)
		}
		c.Logger.Warn("RabbitMQ consumer not available, other instances' writes will not invalidate the cache", "error", err)
	} else {
		c.RabbitMQConsumer = consumer
	}
	return nil
}

// registerConsumer subscribes an event consumer to this instance's events and,
// when a broker consumer runs, to the events of other instances too. Events
// written here arrive on both, so consumers must be idempotent.
func (c *Container) registerConsumer(consumer eventbus.EventConsumer) {
	c.InProcessEventBus.RegisterConsumer(consumer)
	if c.RabbitMQConsumer != nil {
		c.RabbitMQConsumer.RegisterConsumer(consumer)
	}
}

func (c *Container) wireHandlers() error {
	uow := NewRepositoryFactory(c.DB).UnitOfWork()
	events := activityCommands.NewEvents(c.EventPublisher, c.Logger)

	c.CreateActivityHandler = activityCommands.NewCreateActivityHandler(c.ActivityRepo, c.ContextRepo, c.CategoryRepo, uow, events)
	c.UpdateActivityHandler = activityCommands.NewUpdateActivityHandler(c.ActivityRepo, c.ContextRepo, c.CategoryRepo, uow, events)
	c.DeleteActivityHandler = activityCommands.NewDeleteActivityHandler(c.ActivityRepo, uow, events)
	c.CompleteActivityHandler = activityCommands.NewCompleteActivityHandler(c.ActivityRepo, uow, events)
	c.ToggleActivityHandler = activityCommands.NewToggleActivityHandler(c.ActivityRepo, uow, events)
	c.ContextHandler = activityCommands.NewContextHandler(c.ContextRepo, uow, events)
	c.CategoryHandler = activityCommands.NewCategoryHandler(c.CategoryRepo, uow, events)

	c.ListActivitiesHandler = activityQueries.NewListActivitiesHandler(c.ActivityRepo)
	c.GetActivityHandler = activityQueries.NewGetActivityHandler(c.ActivityRepo)
	c.ListCompletionsHandler = activityQueries.NewListCompletionsHandler(c.ActivityRepo)
	c.ListContextsHandler = activityQueries.NewListContextsHandler(c.ContextRepo)
	c.ListCategoriesHandler = activityQueries.NewListCategoriesHandler(c.CategoryRepo)

	settings, err := c.suggestionSettings()
	if err != nil {
		return err
	}

	breakerCfg := resilience.DefaultBreakerConfig()
	if c.Config.BreakerFailures > 0 {
		breakerCfg.FailureThreshold = c.Config.BreakerFailures
	}
	if c.Config.BreakerTimeout > 0 {
		breakerCfg.Timeout = c.Config.BreakerTimeout
	}
	c.ActivityBreaker = resilience.NewActivitySource(c.ActivityRepo, breakerCfg, c.Logger, c.recordBreakerState)
	c.ContextBreaker = resilience.NewContextSource(c.ContextRepo, breakerCfg, c.Logger, c.recordBreakerState)
	c.Health.Register("activities_breaker", observability.BreakerHealthChecker(func() string {
		return c.ActivityBreaker.State().String()
	}))
	c.Health.Register("contexts_breaker", observability.BreakerHealthChecker(func() string {
		return c.ContextBreaker.State().String()
	}))

	suggestionCache := c.suggestionCache()
	c.registerConsumer(cache.NewInvalidator(suggestionCache, c.Logger))

	c.GetSuggestionsHandler = suggestionQueries.NewGetSuggestionsHandler(
		c.ActivityBreaker, c.ContextBreaker, suggestionCache, settings, c.Logger,
	)
	c.GetActiveContextsHandler = suggestionQueries.NewGetActiveContextsHandler(c.ContextBreaker, settings)
	c.ActivitiesByTimeOfDayHandler = suggestionQueries.NewActivitiesByTimeOfDayHandler(c.ActivityBreaker)
	return nil
}

type invalidatingCache interface {
	suggestionQueries.Cache
	Invalidate(ctx context.Context) error
}

func (c *Container) suggestionCache() invalidatingCache {
	if c.RedisClient != nil {
		return cache.NewRedisCache(c.RedisClient, c.Config.SuggestionCacheTTL, c.Logger)
	}
	return cache.NewMemoryCache(c.Config.SuggestionCacheTTL)
}

func (c *Container) suggestionSettings() (suggestionQueries.Settings, error) {
	loc, err := c.Config.Location()
	if err != nil {
		return suggestionQueries.Settings{}, err
	}
	mode, err := suggestionQueries.ParseContextMode(c.Config.SuggestionsContextMode)
	if err != nil {
		return suggestionQueries.Settings{}, err
	}
	return suggestionQueries.Settings{
		Location:     loc,
		Mode:         mode,
		DefaultLimit: c.Config.SuggestionsLimit,
	}, nil
}

func (c *Container) recordBreakerState(name string, _, to gobreaker.State) {
	c.Metrics.Gauge(observability.MetricBreakerState, float64(to), observability.T("breaker", name))
}

// StartConsumers blocks consuming broker events until ctx is done. It returns
// immediately when no broker is configured.
func (c *Container) StartConsumers(ctx context.Context) error {
	if c.RabbitMQConsumer == nil {
		return nil
	}
	err := c.RabbitMQConsumer.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.RabbitMQConsumer != nil {
		if err := c.RabbitMQConsumer.Close(); err != nil {
			c.Logger.Warn("error closing RabbitMQ consumer", "error", err)
		}
	}

	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		} else {
			c.Logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err)
		} else {
			c.Logger.Info("database connection closed", "driver", c.DB.Driver().String())
		}
	}
}
