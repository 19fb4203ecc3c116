package jobs

import (
	"context"
	"errors"
	"log/slog"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"

	"github.com/robfig/cron/v3"
)

type (
	KitchenOrderLister interface {
		FindAll(ctx context.Context) ([]*kitchenorder.KitchenOrder, error)
	}

	Reconciler interface {
		Reconcile(ctx context.Context, orderRef kernel.KitchenOrderRef) error
	}
)

// ReconcileJob advances every unfinished kitchen order to the state its
// pizzas imply.
type ReconcileJob struct {
	kitchenOrders KitchenOrderLister
	reconciler    Reconciler
	schedule      string
	cron          *cron.Cron
	logger        *slog.Logger
}

func NewReconcileJob(kitchenOrders KitchenOrderLister, reconciler Reconciler, schedule string, logger *slog.Logger) *ReconcileJob {
	return &ReconcileJob{
		kitchenOrders: kitchenOrders,
		reconciler:    reconciler,
		schedule:      schedule,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "reconcile_job"),
	}
}

// Run makes one pass over every order that replays and returns the joined
// replay and reconcile errors. A broken stream does not hold up the others.
func (j *ReconcileJob) Run(ctx context.Context) error {
	orders, err := j.kitchenOrders.FindAll(ctx)

	errList := []error{err}
	for _, order := range orders {
		if order.HasFinishedAssembly() {
			continue
		}
		if err = j.reconciler.Reconcile(ctx, order.Ref()); err != nil {
			errList = append(errList, err)
		}
	}

	return errors.Join(errList...)
}

func (j *ReconcileJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Reconcile job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconcile job started", "schedule", j.schedule)
	return nil
}

func (j *ReconcileJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reconcile job stopped")
}
