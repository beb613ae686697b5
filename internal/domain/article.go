package domain

import (
	"errors"
	"time"
)

// Status represents the lifecycle status of an article.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusScheduled Status = "scheduled"
)

// ErrInvalidStatus is returned when a status string is not one of ValidStatuses.
var ErrInvalidStatus = errors.New("invalid article status")

// ValidStatuses contains all valid article statuses.
var ValidStatuses = []Status{StatusDraft, StatusPublished, StatusScheduled}

// IsValidStatus checks if a status is valid.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if string(s) == status {
			return true
		}
	}
	return false
}

// ParseStatus converts a raw status into a Status. An empty string yields StatusDraft.
func ParseStatus(raw string) (Status, error) {
	if raw == "" {
		return StatusDraft, nil
	}
	if !IsValidStatus(raw) {
		return "", ErrInvalidStatus
	}
	return Status(raw), nil
}

// Article represents a news article.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Excerpt     string    `json:"excerpt"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Status      Status    `json:"status"`
	Tags        []string  `json:"tags"`
	ImageURL    *string   `json:"imageUrl"`
	Views       int64     `json:"views"`
	PublishDate time.Time `json:"publishDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsPublished reports whether the article is part of the public feed.
func (a Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// HasImage reports whether the article carries an illustration.
func (a Article) HasImage() bool {
	return a.ImageURL != nil && *a.ImageURL != ""
}

// Clone returns a deep copy that shares no mutable state with a.
func (a Article) Clone() Article {
	c := a
	c.Tags = make([]string, len(a.Tags))
	copy(c.Tags, a.Tags)
	if a.ImageURL != nil {
		u := *a.ImageURL
		c.ImageURL = &u
	}
	return c
}

// ArticleInput is a validated article ready for insertion.
// Status may be empty (draft) and PublishDate may be nil (creation time).
type ArticleInput struct {
	Title       string
	Content     string
	Excerpt     string
	Author      string
	Category    string
	Status      Status
	Tags        []string
	ImageURL    *string
	PublishDate *time.Time
}

// ArticlePatch is a partial update. Nil fields keep their stored value.
// A non-nil ImageURL pointing at an empty string removes the illustration.
type ArticlePatch struct {
	Title       *string
	Content     *string
	Excerpt     *string
	Author      *string
	Category    *string
	Status      *Status
	Tags        *[]string
	ImageURL    *string
	PublishDate *time.Time
}

// IsEmpty reports whether the patch changes no content field.
func (p ArticlePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Excerpt == nil && p.Author == nil &&
		p.Category == nil && p.Status == nil && p.Tags == nil && p.ImageURL == nil &&
		p.PublishDate == nil
}

// Apply merges the patch over a and stamps UpdatedAt. The receiver is not modified.
func (p ArticlePatch) Apply(a Article, now time.Time) Article {
	out := a.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Content != nil {
		out.Content = *p.Content
	}
	if p.Excerpt != nil {
		out.Excerpt = *p.Excerpt
	}
	if p.Author != nil {
		out.Author = *p.Author
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Tags != nil {
		out.Tags = make([]string, len(*p.Tags))
		copy(out.Tags, *p.Tags)
	}
	if p.ImageURL != nil {
		if *p.ImageURL == "" {
			out.ImageURL = nil
		} else {
			u := *p.ImageURL
			out.ImageURL = &u
		}
	}
	if p.PublishDate != nil {
		out.PublishDate = *p.PublishDate
	}
	// createdAt <= updatedAt even if the clock stepped backwards
	if now.Before(out.CreatedAt) {
		now = out.CreatedAt
	}
	out.UpdatedAt = now
	return out
}

// NewArticle builds a stored article from an input, assigning id, views and timestamps.
func NewArticle(id string, in ArticleInput, now time.Time) Article {
	status := in.Status
	if status == "" {
		status = StatusDraft
	}
	tags := make([]string, len(in.Tags))
	copy(tags, in.Tags)

	a := Article{
		ID:          id,
		Title:       in.Title,
		Content:     in.Content,
		Excerpt:     in.Excerpt,
		Author:      in.Author,
		Category:    in.Category,
		Status:      status,
		Tags:        tags,
		Views:       0,
		PublishDate: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.ImageURL != nil && *in.ImageURL != "" {
		u := *in.ImageURL
		a.ImageURL = &u
	}
	if in.PublishDate != nil {
		a.PublishDate = *in.PublishDate
	}
	return a
}

// Stats is the read-only aggregate shown on the dashboard.
type Stats struct {
	TotalArticles     int   `json:"totalArticles"`
	PublishedArticles int   `json:"publishedArticles"`
	TotalViews        int64 `json:"totalViews"`
	Subscribers       int   `json:"subscribers"`
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
