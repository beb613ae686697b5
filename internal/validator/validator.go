package validator

import (
	"errors"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"newshub/internal/domain"
)

// publishDateLayouts are tried in order when parsing publishDate.
var publishDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

const statusMessage = "must be one of draft, published, scheduled"

// ArticleRequest is the request body for creating an article.
type ArticleRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Excerpt     string   `json:"excerpt"`
	Author      string   `json:"author"`
	Category    string   `json:"category"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
	ImageURL    *string  `json:"imageUrl"`
	PublishDate *string  `json:"publishDate"`
}

// ArticleUpdateRequest is the request body for a partial article update.
// Absent (or null) fields are left unchanged.
type ArticleUpdateRequest struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	Excerpt     *string   `json:"excerpt"`
	Author      *string   `json:"author"`
	Category    *string   `json:"category"`
	Status      *string   `json:"status"`
	Tags        *[]string `json:"tags"`
	ImageURL    *string   `json:"imageUrl"`
	PublishDate *string   `json:"publishDate"`
}

// Validator provides validation methods for article requests.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreate validates a create request and converts it to an ArticleInput.
func (v *Validator) ValidateCreate(req ArticleRequest) (domain.ArticleInput, error) {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.By(notBlank)),
		validation.Field(&req.Content, validation.By(notBlank)),
		validation.Field(&req.Excerpt, validation.By(notBlank)),
		validation.Field(&req.Author, validation.By(notBlank)),
		validation.Field(&req.Category, validation.By(notBlank)),
		validation.Field(&req.Status, validation.By(statusRule)),
		validation.Field(&req.ImageURL, is.URL.Error("must be a valid URL")),
		validation.Field(&req.PublishDate, validation.By(dateRule)),
	)
	if err != nil {
		return domain.ArticleInput{}, err
	}

	status, _ := domain.ParseStatus(req.Status)
	in := domain.ArticleInput{
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Author:   req.Author,
		Category: req.Category,
		Status:   status,
		Tags:     req.Tags,
	}
	if req.ImageURL != nil && *req.ImageURL != "" {
		url := *req.ImageURL
		in.ImageURL = &url
	}
	if req.PublishDate != nil && *req.PublishDate != "" {
		t, _ := parseDate(*req.PublishDate)
		in.PublishDate = &t
	}
	return in, nil
}

// ValidatePatch validates an update request and converts it to an ArticlePatch.
// An empty imageUrl clears the image; an empty publishDate is ignored.
func (v *Validator) ValidatePatch(req ArticleUpdateRequest) (domain.ArticlePatch, error) {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Title, validation.By(notBlank)),
		validation.Field(&req.Content, validation.By(notBlank)),
		validation.Field(&req.Excerpt, validation.By(notBlank)),
		validation.Field(&req.Author, validation.By(notBlank)),
		validation.Field(&req.Category, validation.By(notBlank)),
		validation.Field(&req.Status,
			validation.When(req.Status != nil, validation.Required.Error(statusMessage)),
			validation.By(statusRule),
		),
		validation.Field(&req.ImageURL, is.URL.Error("must be a valid URL")),
		validation.Field(&req.PublishDate, validation.By(dateRule)),
	)
	if err != nil {
		return domain.ArticlePatch{}, err
	}

	patch := domain.ArticlePatch{
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Author:   req.Author,
		Category: req.Category,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
	}
	if req.Status != nil {
		s, _ := domain.ParseStatus(*req.Status)
		patch.Status = &s
	}
	if req.PublishDate != nil && *req.PublishDate != "" {
		t, _ := parseDate(*req.PublishDate)
		patch.PublishDate = &t
	}
	return patch, nil
}

// FieldErrors flattens a validation error into field/message pairs sorted by field.
func FieldErrors(err error) []domain.FieldError {
	if err == nil {
		return nil
	}

	var ve validation.Errors
	if !errors.As(err, &ve) {
		return []domain.FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]domain.FieldError, 0, len(ve))
	for field, fieldErr := range ve {
		if fieldErr == nil {
			continue
		}
		out = append(out, domain.FieldError{Field: field, Message: fieldErr.Error()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// notBlank rejects empty and whitespace-only strings. Nil pointers pass.
func notBlank(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	if strings.TrimSpace(s) == "" {
		return validation.ErrRequired
	}
	return nil
}

// statusRule accepts the known statuses and the empty string, which means draft.
func statusRule(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	if _, err := domain.ParseStatus(s); errors.Is(err, domain.ErrInvalidStatus) {
		return validation.NewError("validation_status_invalid", statusMessage)
	}
	return nil
}

func dateRule(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	if _, err := parseDate(s); err != nil {
		return validation.NewError("validation_date_invalid", "must be an ISO 8601 date")
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range publishDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
