package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"newshub/internal/domain"
)

type memoryRecord struct {
	article domain.Article
	seq     uint64
}

// MemoryArticleRepository implements ArticleRepository in process memory.
// A single RWMutex serializes every mutation; reads return deep copies.
type MemoryArticleRepository struct {
	mu       sync.RWMutex
	articles map[string]*memoryRecord
	retired  map[string]struct{}
	seq      uint64
	now      func() time.Time
	newID    func() string
}

// MemoryOption configures a MemoryArticleRepository.
type MemoryOption func(*MemoryArticleRepository)

// WithClock replaces the time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(r *MemoryArticleRepository) {
		r.now = now
	}
}

// WithIDGenerator replaces the id generator.
func WithIDGenerator(newID func() string) MemoryOption {
	return func(r *MemoryArticleRepository) {
		r.newID = newID
	}
}

// NewMemoryArticleRepository creates an empty in-memory repository.
func NewMemoryArticleRepository(opts ...MemoryOption) *MemoryArticleRepository {
	r := &MemoryArticleRepository{
		articles: make(map[string]*memoryRecord),
		retired:  make(map[string]struct{}),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns all articles, newest CreatedAt first.
func (r *MemoryArticleRepository) List(ctx context.Context) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	records := make([]*memoryRecord, 0, len(r.articles))
	for _, rec := range r.articles {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.article.CreatedAt.Equal(b.article.CreatedAt) {
			return a.article.CreatedAt.After(b.article.CreatedAt)
		}
		return a.seq > b.seq
	})
	out := snapshot(records)
	r.mu.RUnlock()

	return out, nil
}

// GetByID returns a copy of the article or nil.
func (r *MemoryArticleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.articles[id]
	if !ok {
		return nil, nil
	}
	a := rec.article.Clone()
	return &a, nil
}

// Create inserts a new article.
func (r *MemoryArticleRepository) Create(ctx context.Context, in domain.ArticleInput) (*domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newID()
	for r.taken(id) {
		id = r.newID()
	}

	r.seq++
	a := domain.NewArticle(id, in, r.now())
	r.articles[id] = &memoryRecord{article: a, seq: r.seq}

	out := a.Clone()
	return &out, nil
}

// Update merges patch over the stored article.
func (r *MemoryArticleRepository) Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.articles[id]
	if !ok {
		return nil, nil
	}
	rec.article = patch.Apply(rec.article, r.now())

	out := rec.article.Clone()
	return &out, nil
}

// Delete removes an article.
func (r *MemoryArticleRepository) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.articles[id]; !ok {
		return false, nil
	}
	r.remove(id)
	return true, nil
}

// ListPublished returns published articles, newest PublishDate first.
func (r *MemoryArticleRepository) ListPublished(ctx context.Context) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	records := make([]*memoryRecord, 0, len(r.articles))
	for _, rec := range r.articles {
		if rec.article.IsPublished() {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.article.PublishDate.Equal(b.article.PublishDate) {
			return a.article.PublishDate.After(b.article.PublishDate)
		}
		if !a.article.CreatedAt.Equal(b.article.CreatedAt) {
			return a.article.CreatedAt.After(b.article.CreatedAt)
		}
		return a.seq > b.seq
	})
	out := snapshot(records)
	r.mu.RUnlock()

	return out, nil
}

// IncrementViews adds one view. UpdatedAt is left untouched.
func (r *MemoryArticleRepository) IncrementViews(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.articles[id]
	if !ok {
		return false, nil
	}
	rec.article.Views++
	return true, nil
}

// CleanupUnpublished removes every article whose status is not published.
// The removal set is computed and deleted under one write lock.
func (r *MemoryArticleRepository) CleanupUnpublished(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, rec := range r.articles {
		if !rec.article.IsPublished() {
			r.remove(id)
			removed++
		}
	}
	return removed, nil
}

// PublishDue promotes due scheduled articles under one write lock.
func (r *MemoryArticleRepository) PublishDue(ctx context.Context, now time.Time) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var due []*memoryRecord
	for _, rec := range r.articles {
		if rec.article.Status == domain.StatusScheduled && !rec.article.PublishDate.After(now) {
			due = append(due, rec)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].seq < due[j].seq })

	stamp := r.now()
	for _, rec := range due {
		rec.article.Status = domain.StatusPublished
		rec.article.UpdatedAt = stamp
	}
	return snapshot(due), nil
}

// taken reports whether id belongs to a live or deleted article. Callers hold mu.
func (r *MemoryArticleRepository) taken(id string) bool {
	if _, ok := r.articles[id]; ok {
		return true
	}
	_, ok := r.retired[id]
	return ok
}

// remove deletes id and retires it for good. Callers hold the write lock.
func (r *MemoryArticleRepository) remove(id string) {
	delete(r.articles, id)
	r.retired[id] = struct{}{}
}

func snapshot(records []*memoryRecord) []domain.Article {
	out := make([]domain.Article, len(records))
	for i, rec := range records {
		out[i] = rec.article.Clone()
	}
	return out
}
