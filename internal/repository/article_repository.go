package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"newshub/internal/domain"
)

const articleColumns = `id, title, content, excerpt, author, category, status, tags, image_url, views, publish_date, created_at, updated_at`

// PostgresArticleRepository implements ArticleRepository using PostgreSQL.
type PostgresArticleRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresArticleRepository creates a new PostgresArticleRepository.
func NewPostgresArticleRepository(pool *pgxpool.Pool) *PostgresArticleRepository {
	return &PostgresArticleRepository{
		pool: pool,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// List returns all articles, newest first.
func (r *PostgresArticleRepository) List(ctx context.Context) ([]domain.Article, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		ORDER BY created_at DESC, seq DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	return collectArticles(rows)
}

// GetByID returns the article or nil when it does not exist.
func (r *PostgresArticleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		// not a uuid, so it cannot be stored here
		return nil, nil
	}

	row := r.pool.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
	a, err := scanArticle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	return &a, nil
}

// Create inserts a new article.
func (r *PostgresArticleRepository) Create(ctx context.Context, in domain.ArticleInput) (*domain.Article, error) {
	a := domain.NewArticle(uuid.New().String(), in, r.now())

	row := r.pool.QueryRow(ctx, `
		INSERT INTO articles (id, title, content, excerpt, author, category, status, tags, image_url, views, publish_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, $11, $12)
		RETURNING `+articleColumns,
		a.ID, a.Title, a.Content, a.Excerpt, a.Author, a.Category, string(a.Status), a.Tags, a.ImageURL,
		a.PublishDate, a.CreatedAt, a.UpdatedAt,
	)
	stored, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	return &stored, nil
}

// Update merges the patch inside a transaction holding a row lock.
func (r *PostgresArticleRepository) Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	current, err := scanArticle(tx.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock article: %w", err)
	}

	next := patch.Apply(current, r.now())
	row := tx.QueryRow(ctx, `
		UPDATE articles
		SET title = $2, content = $3, excerpt = $4, author = $5, category = $6, status = $7,
		    tags = $8, image_url = $9, publish_date = $10, updated_at = $11
		WHERE id = $1
		RETURNING `+articleColumns,
		id, next.Title, next.Content, next.Excerpt, next.Author, next.Category, string(next.Status),
		next.Tags, next.ImageURL, next.PublishDate, next.UpdatedAt,
	)
	updated, err := scanArticle(row)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &updated, nil
}

// Delete removes an article.
func (r *PostgresArticleRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete article: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListPublished returns published articles, newest publish date first.
func (r *PostgresArticleRepository) ListPublished(ctx context.Context) ([]domain.Article, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE status = $1
		ORDER BY publish_date DESC, created_at DESC, seq DESC
	`, string(domain.StatusPublished))
	if err != nil {
		return nil, fmt.Errorf("query published articles: %w", err)
	}
	return collectArticles(rows)
}

// IncrementViews adds one view in a single statement.
func (r *PostgresArticleRepository) IncrementViews(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	tag, err := r.pool.Exec(ctx, `UPDATE articles SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("increment views: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CleanupUnpublished deletes every non-published article in one statement.
func (r *PostgresArticleRepository) CleanupUnpublished(ctx context.Context) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE status <> $1`, string(domain.StatusPublished))
	if err != nil {
		return 0, fmt.Errorf("cleanup unpublished articles: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// PublishDue promotes due scheduled articles in one conditional UPDATE.
func (r *PostgresArticleRepository) PublishDue(ctx context.Context, now time.Time) ([]domain.Article, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE articles
		SET status = $1, updated_at = $2
		WHERE status = $3 AND publish_date <= $4
		RETURNING `+articleColumns,
		string(domain.StatusPublished), r.now(), string(domain.StatusScheduled), now,
	)
	if err != nil {
		return nil, fmt.Errorf("publish due articles: %w", err)
	}
	return collectArticles(rows)
}

func scanArticle(row pgx.Row) (domain.Article, error) {
	var a domain.Article
	var status string
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.Excerpt, &a.Author, &a.Category, &status,
		&a.Tags, &a.ImageURL, &a.Views, &a.PublishDate, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return domain.Article{}, err
	}
	a.Status = domain.Status(status)
	if a.Tags == nil {
		a.Tags = []string{}
	}
	return a, nil
}

func collectArticles(rows pgx.Rows) ([]domain.Article, error) {
	defer rows.Close()

	articles := make([]domain.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate articles: %w", err)
	}
	return articles, nil
}
