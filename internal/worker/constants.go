package worker

import "time"

// Pool log messages
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgPoolStopped     = "Job rejected, worker pool stopped"
)

// Reconcile worker log messages
const (
	LogMsgReconcileStarting  = "Cart reconcile pass starting"
	LogMsgReconcileCompleted = "Cart reconcile pass completed"
	LogMsgReconcileFailed    = "Cart reconcile pass failed"
	LogMsgReconcileStopped   = "Cart reconcile worker stopped"
)

// DefaultReconcileInterval is how often carts with pending syncs are retried.
const DefaultReconcileInterval = 2 * time.Minute
