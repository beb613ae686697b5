package service

import (
	"context"
	"fmt"

	"newshub/internal/domain"
	"newshub/internal/repository"
)

// DefaultSubscribers is the placeholder subscriber count shown on the dashboard.
const DefaultSubscribers = 156

// StatsService aggregates dashboard statistics from the repository.
type StatsService struct {
	repo        repository.ArticleRepository
	subscribers int
}

// NewStatsService creates a new StatsService.
func NewStatsService(repo repository.ArticleRepository, subscribers int) *StatsService {
	return &StatsService{repo: repo, subscribers: subscribers}
}

// Stats recomputes the totals from a single snapshot of all articles.
func (s *StatsService) Stats(ctx context.Context) (domain.Stats, error) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("list articles: %w", err)
	}
	return Aggregate(articles, s.subscribers), nil
}

// Aggregate computes Stats over articles.
func Aggregate(articles []domain.Article, subscribers int) domain.Stats {
	stats := domain.Stats{
		TotalArticles: len(articles),
		Subscribers:   subscribers,
	}
	for _, a := range articles {
		if a.IsPublished() {
			stats.PublishedArticles++
		}
		stats.TotalViews += a.Views
	}
	return stats
}
