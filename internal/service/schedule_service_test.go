package service_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newshub/internal/domain"
	"newshub/internal/mocks"
	"newshub/internal/repository"
	"newshub/internal/service"
)

func createAt(t *testing.T, repo repository.ArticleRepository, title string, status domain.Status, publish time.Time) *domain.Article {
	t.Helper()
	in := articleInput(title, status)
	in.PublishDate = &publish
	a, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	return a
}

func TestScheduleService_PublishDue(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryArticleRepository()
	feedCache := mocks.NewMockFeedCache(t)
	events := mocks.NewMockEventPublisher(t)
	svc := service.NewScheduleService(repo, feedCache, events)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)

	due := createAt(t, repo, "Đến hạn", domain.StatusScheduled, past)
	notYet := createAt(t, repo, "Chưa đến hạn", domain.StatusScheduled, future)
	draft := createAt(t, repo, "Nháp cũ", domain.StatusDraft, past)

	feedCache.EXPECT().Invalidate(mock.Anything).Return(nil).Once()
	events.EXPECT().
		Publish(mock.Anything, mock.MatchedBy(func(ev domain.ArticleEvent) bool {
			return ev.Type == domain.EventArticlePublished && ev.ArticleID == due.ID
		})).
		Return(nil).
		Once()

	promoted, err := svc.PublishDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, promoted)

	got, err := repo.GetByID(ctx, due.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, got.Status)
	assert.True(t, got.PublishDate.Equal(past))

	got, err = repo.GetByID(ctx, notYet.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusScheduled, got.Status)

	got, err = repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, got.Status)

	// second pass finds nothing and leaves the cache alone
	promoted, err = svc.PublishDue(ctx)
	require.NoError(t, err)
	assert.Zero(t, promoted)
}

// editBeforePublish lands an editor change between the scheduler deciding to
// run and the repository promoting due articles.
type editBeforePublish struct {
	*repository.MemoryArticleRepository
	edit func(ctx context.Context)
}

func (r *editBeforePublish) PublishDue(ctx context.Context, now time.Time) ([]domain.Article, error) {
	r.edit(ctx)
	return r.MemoryArticleRepository.PublishDue(ctx, now)
}

func TestScheduleService_RespectsEditLandingBeforePromotion(t *testing.T) {
	ctx := context.Background()
	mem := repository.NewMemoryArticleRepository()
	due := createAt(t, mem, "Đến hạn", domain.StatusScheduled, time.Now().Add(-time.Minute))

	repo := &editBeforePublish{
		MemoryArticleRepository: mem,
		edit: func(ctx context.Context) {
			draft := domain.StatusDraft
			_, err := mem.Update(ctx, due.ID, domain.ArticlePatch{Status: &draft})
			require.NoError(t, err)
		},
	}
	// no expectations: nothing is promoted, so nothing is invalidated or published
	svc := service.NewScheduleService(repo, mocks.NewMockFeedCache(t), mocks.NewMockEventPublisher(t))

	promoted, err := svc.PublishDue(ctx)
	require.NoError(t, err)
	assert.Zero(t, promoted)

	got, err := mem.GetByID(ctx, due.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, got.Status)
}

func TestScheduleService_ConcurrentRunsPromoteOnce(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryArticleRepository()
	const total = 6
	for i := 0; i < total; i++ {
		createAt(t, repo, "Đến hạn", domain.StatusScheduled, time.Now().Add(-time.Duration(i+1)*time.Minute))
	}

	feedCache := mocks.NewMockFeedCache(t)
	feedCache.EXPECT().Invalidate(mock.Anything).Return(nil)
	events := mocks.NewMockEventPublisher(t)
	events.EXPECT().Publish(mock.Anything, mock.Anything).Return(nil).Times(total)

	var (
		wg  sync.WaitGroup
		sum atomic.Int64
	)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := service.NewScheduleService(repo, feedCache, events).PublishDue(ctx)
			assert.NoError(t, err)
			sum.Add(int64(n))
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(total), sum.Load())
}

func TestScheduleService_RepositoryError(t *testing.T) {
	repo := mocks.NewMockArticleRepository(t)
	svc := service.NewScheduleService(repo, mocks.NewMockFeedCache(t), mocks.NewMockEventPublisher(t))

	repo.EXPECT().PublishDue(mock.Anything, mock.AnythingOfType("time.Time")).Return(nil, errors.New("deadlock"))

	_, err := svc.PublishDue(context.Background())
	assert.ErrorContains(t, err, "deadlock")
}

func TestScheduleService_NothingDue(t *testing.T) {
	repo := mocks.NewMockArticleRepository(t)
	svc := service.NewScheduleService(repo, mocks.NewMockFeedCache(t), mocks.NewMockEventPublisher(t))

	repo.EXPECT().PublishDue(mock.Anything, mock.Anything).Return(nil, nil).Once()

	promoted, err := svc.PublishDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, promoted)
}
