package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newshub/internal/infrastructure/database"
	"newshub/internal/repository"
)

func newSQLiteRepository(t *testing.T) *repository.GormArticleRepository {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "articles.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	repo := repository.NewGormArticleRepository(db)
	require.NoError(t, repo.AutoMigrate())
	return repo
}

func TestGormArticleRepository(t *testing.T) {
	runArticleRepositoryContract(t, func(t *testing.T) repository.ArticleRepository {
		return newSQLiteRepository(t)
	})
}

func TestGormArticleRepository_AutoMigrateIsIdempotent(t *testing.T) {
	repo := newSQLiteRepository(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleInput("survives"))
	require.NoError(t, err)

	require.NoError(t, repo.AutoMigrate())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
