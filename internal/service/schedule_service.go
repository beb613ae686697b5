package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newshub/internal/domain"
	"newshub/internal/logger"
	"newshub/internal/metrics"
	"newshub/internal/repository"
)

// ScheduleService promotes scheduled articles whose publish date has passed.
type ScheduleService struct {
	repo           repository.ArticleRepository
	cache          FeedCache
	events         EventPublisher
	publishTimeout time.Duration
	now            func() time.Time
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(repo repository.ArticleRepository, cache FeedCache, events EventPublisher) *ScheduleService {
	return &ScheduleService{
		repo:           repo,
		cache:          cache,
		events:         events,
		publishTimeout: DefaultPublishTimeout,
		now:            time.Now,
	}
}

// PublishDue flips every due scheduled article to published and returns how many changed.
// Status and date are re-checked by the repository at write time.
func (s *ScheduleService) PublishDue(ctx context.Context) (int, error) {
	now := s.now()
	promoted, err := s.repo.PublishDue(ctx, now)
	if err != nil {
		metrics.ObserveArticleOperation("publish_due", metrics.ResultError)
		return 0, fmt.Errorf("publish due articles: %w", err)
	}
	if len(promoted) == 0 {
		return 0, nil
	}

	metrics.ObserveArticleOperation("publish_due", metrics.ResultSuccess)
	metrics.ArticlesPromotedTotal.Add(float64(len(promoted)))
	invalidateFeed(ctx, s.cache)

	for _, a := range promoted {
		logger.FromContext(ctx).Info("Scheduled article published",
			slog.String("article_id", a.ID),
			slog.Time("publish_date", a.PublishDate))
		publishEvent(ctx, s.events, s.publishTimeout, domain.NewArticleEvent(domain.EventArticlePublished, a, now))
	}
	return len(promoted), nil
}
