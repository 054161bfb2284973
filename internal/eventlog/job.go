package eventlog

import (
	"context"
	"time"

	"github.com/osse101/FrameCraft_Go/internal/logger"
)

// CleanupJob purges audit records past retention. It satisfies worker.Job.
type CleanupJob struct {
	service   Service
	retention time.Duration
}

// NewCleanupJob creates the job. A non-positive retention uses
// DefaultRetention.
func NewCleanupJob(service Service, retention time.Duration) *CleanupJob {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &CleanupJob{service: service, retention: retention}
}

func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCleanupJobStarting, "retention", j.retention)

	start := time.Now()
	count, err := j.service.Purge(ctx, j.retention)
	if err != nil {
		log.Error(LogMsgCleanupJobFailed, "error", err, "duration", time.Since(start))
		return err
	}

	log.Info(LogMsgCleanupJobCompleted, "deleted_count", count, "duration", time.Since(start))
	return nil
}
