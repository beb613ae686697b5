package domain

import "time"

// EventType identifies an article lifecycle event.
type EventType string

const (
	EventArticleCreated   EventType = "article.created"
	EventArticleUpdated   EventType = "article.updated"
	EventArticleDeleted   EventType = "article.deleted"
	EventArticlePublished EventType = "article.published"
	EventArticlesCleanup  EventType = "article.cleanup"
)

// ArticleEvent is emitted after a committed article mutation.
type ArticleEvent struct {
	Type       EventType `json:"type"`
	ArticleID  string    `json:"articleId,omitempty"`
	Title      string    `json:"title,omitempty"`
	Status     Status    `json:"status,omitempty"`
	Count      int       `json:"count,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Key returns the partitioning key for the event.
func (e ArticleEvent) Key() string {
	if e.ArticleID != "" {
		return e.ArticleID
	}
	return string(e.Type)
}

// NewArticleEvent builds an event describing a single article.
func NewArticleEvent(t EventType, a Article, now time.Time) ArticleEvent {
	return ArticleEvent{
		Type:       t,
		ArticleID:  a.ID,
		Title:      a.Title,
		Status:     a.Status,
		OccurredAt: now,
	}
}
