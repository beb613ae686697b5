package service

import (
	"context"

	"newshub/internal/cache"
	"newshub/internal/domain"
)

// ArticleServiceInterface defines the article operations used by the transport layer.
// Used for dependency injection and mocking in tests.
type ArticleServiceInterface interface {
	// List returns every article, newest first.
	List(ctx context.Context) ([]domain.Article, error)
	// ListPublished returns published articles, newest publish date first.
	ListPublished(ctx context.Context) ([]domain.Article, error)
	// Get returns the article and records one view. Nil when absent.
	Get(ctx context.Context, id string) (*domain.Article, error)
	// Create stores a validated article.
	Create(ctx context.Context, in domain.ArticleInput) (*domain.Article, error)
	// Update applies a validated patch. Nil when absent.
	Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error)
	// Delete removes an article and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
	// Cleanup removes every unpublished article and returns the count.
	Cleanup(ctx context.Context) (int, error)
}

// FeedServiceInterface defines the RSS feed operations.
type FeedServiceInterface interface {
	// RenderFeed returns the RSS document for the newest published articles.
	RenderFeed(ctx context.Context) ([]byte, error)
	// Preview returns the RSS document along with the published article count.
	Preview(ctx context.Context) (FeedPreview, error)
}

// StatsServiceInterface defines the dashboard statistics operation.
type StatsServiceInterface interface {
	Stats(ctx context.Context) (domain.Stats, error)
}

// EventPublisher delivers article lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.ArticleEvent) error
}

// FeedCache holds the rendered feed document. Set stores only when no
// Invalidate happened since the Get that returned version.
type FeedCache interface {
	Get(ctx context.Context) (cache.Entry, bool, error)
	Set(ctx context.Context, version int64, doc []byte) (bool, error)
	Invalidate(ctx context.Context) error
}
