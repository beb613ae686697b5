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

// DefaultPublishTimeout bounds how long a mutation waits on event delivery.
const DefaultPublishTimeout = 5 * time.Second

// ArticleService orchestrates article operations on top of the repository.
// Feed cache invalidation and event publishing happen after the repository
// has committed; their failures are logged and never returned.
type ArticleService struct {
	repo           repository.ArticleRepository
	cache          FeedCache
	events         EventPublisher
	publishTimeout time.Duration
	now            func() time.Time
}

// NewArticleService creates a new ArticleService.
func NewArticleService(repo repository.ArticleRepository, cache FeedCache, events EventPublisher) *ArticleService {
	return &ArticleService{
		repo:           repo,
		cache:          cache,
		events:         events,
		publishTimeout: DefaultPublishTimeout,
		now:            time.Now,
	}
}

func (s *ArticleService) List(ctx context.Context) ([]domain.Article, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		metrics.ObserveArticleOperation("list", metrics.ResultError)
		return nil, fmt.Errorf("list articles: %w", err)
	}
	metrics.ObserveArticleOperation("list", metrics.ResultSuccess)
	return articles, nil
}

func (s *ArticleService) ListPublished(ctx context.Context) ([]domain.Article, error) {
	articles, err := s.repo.ListPublished(ctx)
	if err != nil {
		metrics.ObserveArticleOperation("list_published", metrics.ResultError)
		return nil, fmt.Errorf("list published articles: %w", err)
	}
	metrics.ObserveArticleOperation("list_published", metrics.ResultSuccess)
	return articles, nil
}

// Get returns the article as it was before this view was counted.
func (s *ArticleService) Get(ctx context.Context, id string) (*domain.Article, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		metrics.ObserveArticleOperation("get", metrics.ResultError)
		return nil, fmt.Errorf("get article: %w", err)
	}
	if a == nil {
		metrics.ObserveArticleOperation("get", metrics.ResultNotFound)
		return nil, nil
	}

	counted, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		metrics.ObserveArticleOperation("get", metrics.ResultError)
		return nil, fmt.Errorf("increment views: %w", err)
	}
	if counted {
		metrics.ArticleViewsTotal.Inc()
	}

	metrics.ObserveArticleOperation("get", metrics.ResultSuccess)
	return a, nil
}

func (s *ArticleService) Create(ctx context.Context, in domain.ArticleInput) (*domain.Article, error) {
	a, err := s.repo.Create(ctx, in)
	if err != nil {
		metrics.ObserveArticleOperation("create", metrics.ResultError)
		return nil, fmt.Errorf("create article: %w", err)
	}
	metrics.ObserveArticleOperation("create", metrics.ResultSuccess)

	logger.FromContext(ctx).Info("Article created",
		slog.String("article_id", a.ID),
		slog.String("status", string(a.Status)))

	s.invalidateFeed(ctx)
	s.publish(ctx, domain.NewArticleEvent(domain.EventArticleCreated, *a, s.now()))
	return a, nil
}

func (s *ArticleService) Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	a, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		metrics.ObserveArticleOperation("update", metrics.ResultError)
		return nil, fmt.Errorf("update article: %w", err)
	}
	if a == nil {
		metrics.ObserveArticleOperation("update", metrics.ResultNotFound)
		return nil, nil
	}
	metrics.ObserveArticleOperation("update", metrics.ResultSuccess)

	// an empty patch only touches UpdatedAt, which the feed does not render
	if !patch.IsEmpty() {
		s.invalidateFeed(ctx)
	}
	s.publish(ctx, domain.NewArticleEvent(domain.EventArticleUpdated, *a, s.now()))
	return a, nil
}

func (s *ArticleService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		metrics.ObserveArticleOperation("delete", metrics.ResultError)
		return false, fmt.Errorf("delete article: %w", err)
	}
	if !deleted {
		metrics.ObserveArticleOperation("delete", metrics.ResultNotFound)
		return false, nil
	}
	metrics.ObserveArticleOperation("delete", metrics.ResultSuccess)

	logger.FromContext(ctx).Info("Article deleted", slog.String("article_id", id))

	s.invalidateFeed(ctx)
	s.publish(ctx, domain.ArticleEvent{
		Type:       domain.EventArticleDeleted,
		ArticleID:  id,
		OccurredAt: s.now(),
	})
	return true, nil
}

// Cleanup removes every unpublished article. The feed only holds published
// articles so its cache is left alone.
func (s *ArticleService) Cleanup(ctx context.Context) (int, error) {
	removed, err := s.repo.CleanupUnpublished(ctx)
	if err != nil {
		metrics.ObserveArticleOperation("cleanup", metrics.ResultError)
		return 0, fmt.Errorf("cleanup articles: %w", err)
	}
	metrics.ObserveArticleOperation("cleanup", metrics.ResultSuccess)
	metrics.ArticlesCleanedUpTotal.Add(float64(removed))

	logger.FromContext(ctx).Info("Unpublished articles cleaned up", slog.Int("deleted_count", removed))

	if removed > 0 {
		s.publish(ctx, domain.ArticleEvent{
			Type:       domain.EventArticlesCleanup,
			Count:      removed,
			OccurredAt: s.now(),
		})
	}
	return removed, nil
}

func (s *ArticleService) invalidateFeed(ctx context.Context) {
	invalidateFeed(ctx, s.cache)
}

func (s *ArticleService) publish(ctx context.Context, ev domain.ArticleEvent) {
	publishEvent(ctx, s.events, s.publishTimeout, ev)
}

func invalidateFeed(ctx context.Context, cache FeedCache) {
	if err := cache.Invalidate(ctx); err != nil {
		logger.FromContext(ctx).Warn("Failed to invalidate feed cache", slog.String("error", err.Error()))
	}
}

// publishEvent delivers ev under its own timeout, detached from the caller's cancellation.
func publishEvent(ctx context.Context, events EventPublisher, timeout time.Duration, ev domain.ArticleEvent) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := events.Publish(pctx, ev); err != nil {
		metrics.ObserveEvent(string(ev.Type), metrics.ResultError)
		logger.FromContext(ctx).Warn("Failed to publish article event",
			slog.String("type", string(ev.Type)),
			slog.String("article_id", ev.ArticleID),
			slog.String("error", err.Error()))
		return
	}
	metrics.ObserveEvent(string(ev.Type), metrics.ResultSuccess)
}
