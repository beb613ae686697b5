package repository

import (
	"context"
	"time"

	"newshub/internal/domain"
)

// ArticleRepository is the sole owner of article state.
//
// Absence is never an error: GetByID and Update return a nil article and
// Delete and IncrementViews return false when the id is unknown. Errors are
// reserved for storage failures.
type ArticleRepository interface {
	// List returns every article ordered by CreatedAt, newest first.
	List(ctx context.Context) ([]domain.Article, error)
	// GetByID returns the article or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	// Create stores a new article with a fresh id, zero views and current timestamps.
	Create(ctx context.Context, in domain.ArticleInput) (*domain.Article, error)
	// Update merges the patch over the stored article and refreshes UpdatedAt.
	Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error)
	// Delete removes the article and reports whether it existed.
	Delete(ctx context.Context, id string) (bool, error)
	// ListPublished returns published articles ordered by PublishDate, newest first.
	ListPublished(ctx context.Context) ([]domain.Article, error)
	// IncrementViews adds one view without touching UpdatedAt.
	IncrementViews(ctx context.Context, id string) (bool, error)
	// CleanupUnpublished atomically removes every non-published article.
	CleanupUnpublished(ctx context.Context) (int, error)
	// PublishDue atomically flips every scheduled article with PublishDate <= now
	// to published, stamping UpdatedAt, and returns the promoted articles.
	// The status and date are checked at write time, so an article edited
	// since any earlier read is judged on its current state.
	PublishDue(ctx context.Context, now time.Time) ([]domain.Article, error)
}

// UserRepository defines methods for user data access.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, in domain.UserInput) (*domain.User, error)
}
