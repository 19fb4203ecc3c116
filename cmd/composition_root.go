package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	kitchenhttp "kitchen/internal/adapters/in/http"
	"kitchen/internal/adapters/in/kafka"
	"kitchen/internal/adapters/out/eventlog"
	"kitchen/internal/adapters/out/eventsourced/kitchenorderrepo"
	"kitchen/internal/adapters/out/eventsourced/pizzarepo"
	"kitchen/internal/adapters/out/payments/noop"
	pgeventrepo "kitchen/internal/adapters/out/postgres/eventrepo"
	"kitchen/internal/adapters/out/redis/onlineorderrepo"
	sqliteeventrepo "kitchen/internal/adapters/out/sqlite/eventrepo"
	"kitchen/internal/core/application/choreography"
	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/ports"
	"kitchen/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs Config
	logger  *slog.Logger
	closers []func() error

	eventLog      *eventlog.InProcessEventLog
	kitchenOrders *kitchenorderrepo.Repository
	pizzas        *pizzarepo.Repository
	onlineOrders  *onlineorderrepo.Repository
	payments      ports.PaymentProcessor
	choreography  *choreography.Choreography
}

// NewCompositionRoot opens the configured journal and Redis, builds the event
// log and registers the kitchen choreography on it.
func NewCompositionRoot(ctx context.Context, configs Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		configs:  configs,
		logger:   logger,
		payments: noop.Processor{},
	}

	journal, err := c.openJournal(ctx)
	if err != nil {
		return nil, errors.Join(err, c.Close())
	}

	redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	c.closers = append(c.closers, redisClient.Close)

	c.eventLog = eventlog.NewInProcessEventLog(journal, eventlog.NewDomainCodec(), logger)
	c.kitchenOrders = kitchenorderrepo.NewRepository(c.eventLog)
	c.pizzas = pizzarepo.NewRepository(c.eventLog)
	c.onlineOrders = onlineorderrepo.NewRepository(redisClient, onlineorderrepo.WithTTL(configs.OnlineOrderTTL))
	c.choreography = choreography.NewChoreography(c.eventLog, c.kitchenOrders, c.pizzas, c.onlineOrders, logger)
	c.choreography.Register()

	return c, nil
}

func (c *CompositionRoot) openJournal(ctx context.Context) (ports.EventJournal, error) {
	switch c.configs.EventStore {
	case EventStoreSQLite:
		journal, err := sqliteeventrepo.Open(c.configs.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite journal: %w", err)
		}
		c.closers = append(c.closers, journal.Close)
		return journal, nil
	case EventStorePostgres:
		gormDB, err := gorm.Open(postgres.Open(c.configs.PostgresDSN()), &gorm.Config{TranslateError: true})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, sqlDB.Close)

		journal := pgeventrepo.NewGormJournal(gormDB)
		if err = journal.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate events table: %w", err)
		}
		return journal, nil
	default:
		return eventlog.NewMemoryJournal(), nil
	}
}

// Close releases the journal and Redis connections in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errList...)
}

func (c *CompositionRoot) CreateCreateKitchenOrderCommandHandler() commands.CreateKitchenOrderCommandHandler {
	return commands.NewCreateKitchenOrderCommandHandler(c.kitchenOrders, c.eventLog)
}

func (c *CompositionRoot) CreateStartOrderPrepCommandHandler() commands.StartOrderPrepCommandHandler {
	return commands.NewStartOrderPrepCommandHandler(c.kitchenOrders)
}

func (c *CompositionRoot) CreateFinishPizzaPrepCommandHandler() commands.FinishPizzaPrepCommandHandler {
	return commands.NewFinishPizzaPrepCommandHandler(c.pizzas)
}

func (c *CompositionRoot) CreateRemovePizzaFromOvenCommandHandler() commands.RemovePizzaFromOvenCommandHandler {
	return commands.NewRemovePizzaFromOvenCommandHandler(c.pizzas)
}

func (c *CompositionRoot) CreateGetKitchenOrderQueryHandler() queries.GetKitchenOrderQueryHandler {
	return queries.NewGetKitchenOrderQueryHandler(c.kitchenOrders)
}

func (c *CompositionRoot) CreateGetKitchenOrderByOnlineOrderQueryHandler() queries.GetKitchenOrderByOnlineOrderQueryHandler {
	return queries.NewGetKitchenOrderByOnlineOrderQueryHandler(c.kitchenOrders)
}

func (c *CompositionRoot) CreateGetPizzaQueryHandler() queries.GetPizzaQueryHandler {
	return queries.NewGetPizzaQueryHandler(c.pizzas)
}

func (c *CompositionRoot) CreateGetPizzasByKitchenOrderQueryHandler() queries.GetPizzasByKitchenOrderQueryHandler {
	return queries.NewGetPizzasByKitchenOrderQueryHandler(c.pizzas)
}

func (c *CompositionRoot) CreateServer() *kitchenhttp.Server {
	return kitchenhttp.NewServer(
		c.CreateCreateKitchenOrderCommandHandler(),
		c.CreateStartOrderPrepCommandHandler(),
		c.CreateFinishPizzaPrepCommandHandler(),
		c.CreateRemovePizzaFromOvenCommandHandler(),
		c.CreateGetKitchenOrderQueryHandler(),
		c.CreateGetKitchenOrderByOnlineOrderQueryHandler(),
		c.CreateGetPizzaQueryHandler(),
		c.CreateGetPizzasByKitchenOrderQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.kitchenOrders, c.pizzas, c.choreography, jobs.Schedules{
		Reconcile:   c.configs.ReconcileSchedule,
		ReplayAudit: c.configs.ReplayAuditSchedule,
	}, c.logger)
}

// CreateOrderingConsumer returns nil when no Kafka broker is configured.
func (c *CompositionRoot) CreateOrderingConsumer() *kafka.OrderingConsumer {
	if len(c.configs.KafkaHosts) == 0 {
		return nil
	}

	reader := kafka.NewReader(c.configs.KafkaHosts, c.configs.KafkaConsumerGroup, c.configs.KafkaOrderingTopic)
	return kafka.NewOrderingConsumer(reader, c.onlineOrders, c.eventLog, c.payments, c.logger)
}
