package jobs

import (
	"context"
	"errors"
	"log/slog"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/pizza"
	"kitchen/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

type PizzaLister interface {
	FindByKitchenOrderRef(ctx context.Context, ref kernel.KitchenOrderRef) ([]*pizza.Pizza, error)
}

// AuditReport summarises one audit pass.
type AuditReport struct {
	KitchenOrders int
	Pizzas        int
}

// ReplayAuditJob replays the whole kitchen from the log. It writes nothing.
type ReplayAuditJob struct {
	kitchenOrders KitchenOrderLister
	pizzas        PizzaLister
	schedule      string
	cron          *cron.Cron
	logger        *slog.Logger
}

func NewReplayAuditJob(kitchenOrders KitchenOrderLister, pizzas PizzaLister, schedule string, logger *slog.Logger) *ReplayAuditJob {
	return &ReplayAuditJob{
		kitchenOrders: kitchenOrders,
		pizzas:        pizzas,
		schedule:      schedule,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "replay_audit_job"),
	}
}

// Run replays every order and its pizzas. Orders or pizzas that do not fold
// are reported in the joined error; the rest are still counted.
func (j *ReplayAuditJob) Run(ctx context.Context) (AuditReport, error) {
	var report AuditReport

	orders, err := j.kitchenOrders.FindAll(ctx)

	errList := []error{err}
	for _, order := range orders {
		pizzas, findErr := j.pizzas.FindByKitchenOrderRef(ctx, order.Ref())
		if findErr != nil {
			errList = append(errList, findErr)
			continue
		}
		report.KitchenOrders++
		report.Pizzas += len(pizzas)
	}

	return report, errors.Join(errList...)
}

func (j *ReplayAuditJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		report, err := j.Run(ctx)
		switch {
		case errors.Is(err, errs.ErrReplayIsInconsistent):
			j.logger.ErrorContext(ctx, "Event history does not replay", "error", err)
		case err != nil:
			j.logger.ErrorContext(ctx, "Replay audit failed", "error", err)
		default:
			j.logger.InfoContext(ctx, "Replay audit passed",
				"kitchen_orders", report.KitchenOrders,
				"pizzas", report.Pizzas,
			)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Replay audit job started", "schedule", j.schedule)
	return nil
}

func (j *ReplayAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Replay audit job stopped")
}
