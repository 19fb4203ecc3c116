package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds cron expressions with a leading seconds field.
type Schedules struct {
	Reconcile   string
	ReplayAudit string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reconcileJob   *ReconcileJob
	replayAuditJob *ReplayAuditJob
}

func NewJobManager(
	kitchenOrders KitchenOrderLister,
	pizzas PizzaLister,
	reconciler Reconciler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reconcileJob:   NewReconcileJob(kitchenOrders, reconciler, schedules.Reconcile, logger),
		replayAuditJob: NewReplayAuditJob(kitchenOrders, pizzas, schedules.ReplayAudit, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reconcileJob.Start(); err != nil {
		return fmt.Errorf("failed to start reconcile job: %w", err)
	}

	if err := jm.replayAuditJob.Start(); err != nil {
		jm.reconcileJob.Stop()
		return fmt.Errorf("failed to start replay audit job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running passes to finish.
func (jm *JobManager) StopAll() {
	jm.replayAuditJob.Stop()
	jm.reconcileJob.Stop()
}
