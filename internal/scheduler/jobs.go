package scheduler

import (
	"context"
	"log/slog"

	"newshub/internal/logger"
)

// PublishDueJobName identifies the scheduled-article promotion job.
const PublishDueJobName = "publish_due"

// Publisher promotes scheduled articles whose publish date has passed.
type Publisher interface {
	PublishDue(ctx context.Context) (int, error)
}

// PublishDueJob returns a Job that promotes due scheduled articles.
func PublishDueJob(p Publisher) Job {
	return JobFunc{
		JobName: PublishDueJobName,
		Fn: func(ctx context.Context) error {
			n, err := p.PublishDue(ctx)
			if n > 0 {
				logger.Info("Promoted scheduled articles", slog.Int("count", n))
			}
			return err
		},
	}
}
