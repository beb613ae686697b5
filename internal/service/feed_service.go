package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newshub/internal/domain"
	"newshub/internal/feed"
	"newshub/internal/logger"
	"newshub/internal/metrics"
	"newshub/internal/repository"
)

// FeedPreview is the JSON preview of the feed.
type FeedPreview struct {
	RSS          string `json:"rss"`
	ArticleCount int    `json:"articleCount"`
}

// FeedConfig configures the rendered channel.
type FeedConfig struct {
	BaseURL  string
	MaxItems int
	TTL      time.Duration
}

// FeedService renders the RSS feed from published articles.
type FeedService struct {
	repo     repository.ArticleRepository
	cache    FeedCache
	baseURL  string
	maxItems int
	ttl      time.Duration
	now      func() time.Time
}

// NewFeedService creates a new FeedService.
func NewFeedService(repo repository.ArticleRepository, cache FeedCache, cfg FeedConfig) *FeedService {
	maxItems := cfg.MaxItems
	if maxItems <= 0 {
		maxItems = feed.MaxItems
	}
	return &FeedService{
		repo:     repo,
		cache:    cache,
		baseURL:  cfg.BaseURL,
		maxItems: maxItems,
		ttl:      cfg.TTL,
		now:      time.Now,
	}
}

// RenderFeed serves the cached document when present, otherwise renders and caches it.
func (s *FeedService) RenderFeed(ctx context.Context) ([]byte, error) {
	version, doc, state := s.lookup(ctx)
	if state == cacheHit {
		return doc, nil
	}

	published, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}
	doc, err = s.render(published)
	if err != nil {
		return nil, err
	}
	if state == cacheMiss {
		s.store(ctx, version, doc)
	}
	return doc, nil
}

// Preview returns the feed document and the number of published articles,
// which may exceed the number of items in the document. Both come from the
// same listing, so the count always matches the rendered items.
func (s *FeedService) Preview(ctx context.Context) (FeedPreview, error) {
	version, _, state := s.lookup(ctx)

	published, err := s.repo.ListPublished(ctx)
	if err != nil {
		return FeedPreview{}, fmt.Errorf("list published articles: %w", err)
	}
	doc, err := s.render(published)
	if err != nil {
		return FeedPreview{}, err
	}
	if state != cacheUnavailable {
		s.store(ctx, version, doc)
	}
	return FeedPreview{RSS: string(doc), ArticleCount: len(published)}, nil
}

// Channel returns the channel metadata for a render at now.
func (s *FeedService) Channel(now time.Time) feed.Channel {
	ch := feed.DefaultChannel(s.baseURL, now.Year())
	if s.ttl > 0 {
		ch.TTL = int(s.ttl / time.Minute)
	}
	return ch
}

type cacheState int

const (
	cacheMiss cacheState = iota
	cacheHit
	cacheUnavailable
)

// lookup reads the cache. The returned version guards the later store.
func (s *FeedService) lookup(ctx context.Context) (int64, []byte, cacheState) {
	e, ok, err := s.cache.Get(ctx)
	switch {
	case err != nil:
		metrics.ObserveFeedCache(metrics.ResultError)
		logger.FromContext(ctx).Warn("Feed cache lookup failed", slog.String("error", err.Error()))
		return 0, nil, cacheUnavailable
	case ok:
		metrics.ObserveFeedCache(metrics.ResultHit)
		return e.Version, e.Doc, cacheHit
	default:
		metrics.ObserveFeedCache(metrics.ResultMiss)
		return e.Version, nil, cacheMiss
	}
}

func (s *FeedService) render(published []domain.Article) ([]byte, error) {
	if len(published) > s.maxItems {
		published = published[:s.maxItems]
	}

	timer := metrics.NewTimer()
	now := s.now()
	doc, err := feed.Render(published, s.Channel(now), now)
	if err != nil {
		return nil, fmt.Errorf("render feed: %w", err)
	}
	metrics.ObserveFeedRender(timer.Seconds(), len(published))
	return doc, nil
}

// store caches doc unless an article changed after version was read.
func (s *FeedService) store(ctx context.Context, version int64, doc []byte) {
	stored, err := s.cache.Set(ctx, version, doc)
	switch {
	case err != nil:
		logger.FromContext(ctx).Warn("Failed to cache rendered feed", slog.String("error", err.Error()))
	case !stored:
		metrics.ObserveFeedCache(metrics.ResultStale)
		logger.FromContext(ctx).Debug("Dropped stale feed render", slog.Int64("version", version))
	}
}
