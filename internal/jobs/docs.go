// Package jobs provides scheduled background tasks for the kitchen.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled) and
// only ever read the event log or publish through the usual aggregates.
//
// # Available Jobs
//
// 1. ReconcileJob - catches up kitchen orders whose pizzas moved on while a
// subscriber failed, by calling the choreography's Reconcile for every order
// that has not finished assembly
// 2. ReplayAuditJob - replays every kitchen order and its pizzas and logs any
// stream that no longer folds
//
// # Usage
//
//	jobManager := jobs.NewJobManager(kitchenOrders, pizzas, choreography, jobs.Schedules{
//		Reconcile:   "*/10 * * * * *",
//		ReplayAudit: "0 */5 * * * *",
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Jobs never stop on failure; every error is logged and the next tick retries
// - Failed job starts will stop any already running jobs
package jobs
