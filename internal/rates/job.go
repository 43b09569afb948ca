package rates

import (
	"context"
	"time"
)

// RefreshJob keeps the cached and persisted snapshot current.
type RefreshJob struct {
	svc     *Service
	timeout time.Duration
}

func NewRefreshJob(svc *Service, timeout time.Duration) *RefreshJob {
	return &RefreshJob{svc: svc, timeout: timeout}
}

func (j *RefreshJob) Name() string { return "rates_refresh" }

func (j *RefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	_, err := j.svc.Refresh(ctx)

	return err
}
