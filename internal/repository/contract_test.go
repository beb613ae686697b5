package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newshub/internal/domain"
	"newshub/internal/repository"
)

func sampleInput(title string) domain.ArticleInput {
	return domain.ArticleInput{
		Title:    title,
		Content:  "content of " + title,
		Excerpt:  "excerpt of " + title,
		Author:   "Author",
		Category: "News",
	}
}

func publishedInput(title string, publishDate time.Time) domain.ArticleInput {
	in := sampleInput(title)
	in.Status = domain.StatusPublished
	in.PublishDate = &publishDate
	return in
}

func strPtr(s string) *string { return &s }

// runArticleRepositoryContract exercises the behaviour every ArticleRepository engine must share.
func runArticleRepositoryContract(t *testing.T, newRepo func(t *testing.T) repository.ArticleRepository) {
	ctx := context.Background()

	t.Run("create applies defaults", func(t *testing.T) {
		repo := newRepo(t)

		a, err := repo.Create(ctx, domain.ArticleInput{Title: "A", Content: "B", Excerpt: "C", Author: "D", Category: "E"})
		require.NoError(t, err)
		require.NotNil(t, a)

		assert.NotEmpty(t, a.ID)
		assert.Equal(t, domain.StatusDraft, a.Status)
		assert.Equal(t, int64(0), a.Views)
		assert.NotNil(t, a.Tags)
		assert.Nil(t, a.ImageURL)
		assert.True(t, a.CreatedAt.Equal(a.UpdatedAt))
		assert.True(t, a.PublishDate.Equal(a.CreatedAt))

		stored, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "A", stored.Title)
		assert.Equal(t, domain.StatusDraft, stored.Status)
	})

	t.Run("create keeps supplied fields", func(t *testing.T) {
		repo := newRepo(t)
		date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		in := publishedInput("with fields", date)
		in.Tags = []string{"go", "go", "rss"}
		in.ImageURL = strPtr("https://img.example.com/1.jpg")

		a, err := repo.Create(ctx, in)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, domain.StatusPublished, got.Status)
		assert.Equal(t, []string{"go", "go", "rss"}, got.Tags)
		require.NotNil(t, got.ImageURL)
		assert.Equal(t, "https://img.example.com/1.jpg", *got.ImageURL)
		assert.True(t, got.PublishDate.Equal(date))
	})

	t.Run("ids are never reused", func(t *testing.T) {
		repo := newRepo(t)
		seen := make(map[string]bool)

		for i := 0; i < 10; i++ {
			a, err := repo.Create(ctx, sampleInput("first wave"))
			require.NoError(t, err)
			require.False(t, seen[a.ID], "duplicate id %s", a.ID)
			seen[a.ID] = true

			deleted, err := repo.Delete(ctx, a.ID)
			require.NoError(t, err)
			require.True(t, deleted)
		}
		for i := 0; i < 10; i++ {
			a, err := repo.Create(ctx, sampleInput("second wave"))
			require.NoError(t, err)
			require.False(t, seen[a.ID], "duplicate id %s", a.ID)
			seen[a.ID] = true
		}
	})

	t.Run("get unknown id returns nil without error", func(t *testing.T) {
		repo := newRepo(t)

		a, err := repo.GetByID(ctx, "00000000-0000-4000-8000-000000000000")
		require.NoError(t, err)
		assert.Nil(t, a)

		a, err = repo.GetByID(ctx, "not-a-uuid")
		require.NoError(t, err)
		assert.Nil(t, a)
	})

	t.Run("list is ordered by createdAt descending", func(t *testing.T) {
		repo := newRepo(t)

		var ids []string
		for _, title := range []string{"one", "two", "three"} {
			a, err := repo.Create(ctx, sampleInput(title))
			require.NoError(t, err)
			ids = append(ids, a.ID)
			time.Sleep(5 * time.Millisecond)
		}

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{list[0].ID, list[1].ID, list[2].ID})
		for i := 1; i < len(list); i++ {
			assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt))
		}
	})

	t.Run("list published filters and orders by publishDate", func(t *testing.T) {
		repo := newRepo(t)

		jan, err := repo.Create(ctx, publishedInput("January", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		require.NoError(t, err)
		feb, err := repo.Create(ctx, publishedInput("February", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
		require.NoError(t, err)
		_, err = repo.Create(ctx, sampleInput("draft"))
		require.NoError(t, err)
		scheduled := sampleInput("scheduled")
		scheduled.Status = domain.StatusScheduled
		_, err = repo.Create(ctx, scheduled)
		require.NoError(t, err)

		published, err := repo.ListPublished(ctx)
		require.NoError(t, err)
		require.Len(t, published, 2)
		assert.Equal(t, feb.ID, published[0].ID)
		assert.Equal(t, jan.ID, published[1].ID)
		for _, a := range published {
			assert.Equal(t, domain.StatusPublished, a.Status)
		}
	})

	t.Run("update merges fields and refreshes updatedAt", func(t *testing.T) {
		repo := newRepo(t)
		in := sampleInput("before")
		in.Tags = []string{"a"}
		in.ImageURL = strPtr("https://img.example.com/x.png")
		created, err := repo.Create(ctx, in)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		title := "after"
		status := domain.StatusPublished
		updated, err := repo.Update(ctx, created.ID, domain.ArticlePatch{Title: &title, Status: &status})
		require.NoError(t, err)
		require.NotNil(t, updated)

		assert.Equal(t, "after", updated.Title)
		assert.Equal(t, domain.StatusPublished, updated.Status)
		assert.Equal(t, created.Content, updated.Content)
		assert.Equal(t, []string{"a"}, updated.Tags)
		require.NotNil(t, updated.ImageURL)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, int64(0), updated.Views)
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

		stored, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", stored.Title)
		assert.False(t, stored.UpdatedAt.Before(stored.CreatedAt))
	})

	t.Run("update can clear the image", func(t *testing.T) {
		repo := newRepo(t)
		in := sampleInput("image")
		in.ImageURL = strPtr("https://img.example.com/y.png")
		created, err := repo.Create(ctx, in)
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID, domain.ArticlePatch{ImageURL: strPtr("")})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Nil(t, updated.ImageURL)

		stored, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.ImageURL)
	})

	t.Run("update unknown id returns nil", func(t *testing.T) {
		repo := newRepo(t)
		title := "x"

		updated, err := repo.Update(ctx, "00000000-0000-4000-8000-000000000000", domain.ArticlePatch{Title: &title})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("delete reports whether something was removed", func(t *testing.T) {
		repo := newRepo(t)
		a, err := repo.Create(ctx, sampleInput("to delete"))
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, a.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		got, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("increment views leaves updatedAt alone", func(t *testing.T) {
		repo := newRepo(t)
		a, err := repo.Create(ctx, sampleInput("viewed"))
		require.NoError(t, err)
		before, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		found, err := repo.IncrementViews(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, found)

		after, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), after.Views)
		assert.True(t, after.UpdatedAt.Equal(before.UpdatedAt))
	})

	t.Run("increment views on unknown id is a no-op", func(t *testing.T) {
		repo := newRepo(t)

		found, err := repo.IncrementViews(ctx, "00000000-0000-4000-8000-000000000000")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		repo := newRepo(t)
		a, err := repo.Create(ctx, sampleInput("hot"))
		require.NoError(t, err)

		const n = 50
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := repo.IncrementViews(ctx, a.ID); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(n), got.Views)
	})

	t.Run("cleanup removes exactly the unpublished articles", func(t *testing.T) {
		repo := newRepo(t)

		draft, err := repo.Create(ctx, domain.ArticleInput{Title: "A", Content: "B", Excerpt: "C", Author: "D", Category: "E"})
		require.NoError(t, err)
		scheduled := sampleInput("later")
		scheduled.Status = domain.StatusScheduled
		_, err = repo.Create(ctx, scheduled)
		require.NoError(t, err)
		keep, err := repo.Create(ctx, publishedInput("keep", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
		require.NoError(t, err)

		publishedBefore, err := repo.ListPublished(ctx)
		require.NoError(t, err)

		removed, err := repo.CleanupUnpublished(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, removed)

		publishedAfter, err := repo.ListPublished(ctx)
		require.NoError(t, err)
		assert.Equal(t, publishedBefore, publishedAfter)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, keep.ID, all[0].ID)

		gone, err := repo.GetByID(ctx, draft.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		removed, err = repo.CleanupUnpublished(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, removed)
	})

	t.Run("returned snapshots do not alias stored state", func(t *testing.T) {
		repo := newRepo(t)
		in := sampleInput("snapshot")
		in.Tags = []string{"original"}
		a, err := repo.Create(ctx, in)
		require.NoError(t, err)

		a.Tags[0] = "mutated"
		a.Title = "mutated"

		got, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "snapshot", got.Title)
		assert.Equal(t, []string{"original"}, got.Tags)
	})

	t.Run("publish due promotes only due scheduled articles", func(t *testing.T) {
		repo := newRepo(t)
		now := time.Now().UTC().Truncate(time.Second)

		scheduled := func(title string, at time.Time) *domain.Article {
			in := sampleInput(title)
			in.Status = domain.StatusScheduled
			in.PublishDate = &at
			a, err := repo.Create(ctx, in)
			require.NoError(t, err)
			return a
		}
		due := scheduled("due", now.Add(-time.Hour))
		boundary := scheduled("boundary", now)
		future := scheduled("future", now.Add(time.Hour))

		draftIn := sampleInput("old draft")
		past := now.Add(-2 * time.Hour)
		draftIn.PublishDate = &past
		draft, err := repo.Create(ctx, draftIn)
		require.NoError(t, err)

		promoted, err := repo.PublishDue(ctx, now)
		require.NoError(t, err)

		ids := make([]string, 0, len(promoted))
		for _, a := range promoted {
			assert.Equal(t, domain.StatusPublished, a.Status)
			assert.False(t, a.UpdatedAt.Before(a.CreatedAt))
			ids = append(ids, a.ID)
		}
		assert.ElementsMatch(t, []string{due.ID, boundary.ID}, ids)

		for id, want := range map[string]domain.Status{
			due.ID:      domain.StatusPublished,
			boundary.ID: domain.StatusPublished,
			future.ID:   domain.StatusScheduled,
			draft.ID:    domain.StatusDraft,
		} {
			got, err := repo.GetByID(ctx, id)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, want, got.Status, id)
		}

		again, err := repo.PublishDue(ctx, now)
		require.NoError(t, err)
		assert.Empty(t, again)
	})

	t.Run("publish due judges the current state of an edited article", func(t *testing.T) {
		repo := newRepo(t)
		now := time.Now().UTC().Truncate(time.Second)
		past := now.Add(-time.Hour)

		in := sampleInput("reverted")
		in.Status = domain.StatusScheduled
		in.PublishDate = &past
		reverted, err := repo.Create(ctx, in)
		require.NoError(t, err)

		in = sampleInput("postponed")
		in.Status = domain.StatusScheduled
		in.PublishDate = &past
		postponed, err := repo.Create(ctx, in)
		require.NoError(t, err)

		draft := domain.StatusDraft
		_, err = repo.Update(ctx, reverted.ID, domain.ArticlePatch{Status: &draft})
		require.NoError(t, err)
		later := now.Add(24 * time.Hour)
		_, err = repo.Update(ctx, postponed.ID, domain.ArticlePatch{PublishDate: &later})
		require.NoError(t, err)

		promoted, err := repo.PublishDue(ctx, now)
		require.NoError(t, err)
		assert.Empty(t, promoted)

		got, err := repo.GetByID(ctx, reverted.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDraft, got.Status)
		got, err = repo.GetByID(ctx, postponed.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusScheduled, got.Status)
	})

	t.Run("concurrent publish due promotes each article once", func(t *testing.T) {
		repo := newRepo(t)
		now := time.Now().UTC().Truncate(time.Second)
		past := now.Add(-time.Minute)
		for i := 0; i < 5; i++ {
			in := sampleInput("batch")
			in.Status = domain.StatusScheduled
			in.PublishDate = &past
			_, err := repo.Create(ctx, in)
			require.NoError(t, err)
		}

		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			total int
		)
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				promoted, err := repo.PublishDue(ctx, now)
				assert.NoError(t, err)
				mu.Lock()
				total += len(promoted)
				mu.Unlock()
			}()
		}
		wg.Wait()
		assert.Equal(t, 5, total)
	})

	t.Run("seed inserts sample articles once", func(t *testing.T) {
		repo := newRepo(t)

		n, err := repository.SeedSampleArticles(ctx, repo)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		n, err = repository.SeedSampleArticles(ctx, repo)
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		published, err := repo.ListPublished(ctx)
		require.NoError(t, err)
		require.Len(t, published, 3)
		assert.Equal(t, "Công nghệ AI mới nhất trong năm 2024", published[0].Title)
	})
}
