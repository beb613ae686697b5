package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"newshub/internal/domain"
)

// articleModel is the gorm row shape of an article. Times are stored in UTC
// so SQLite's text ordering matches chronological order.
type articleModel struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Seq         int64     `gorm:"index"`
	Title       string    `gorm:"type:text;not null"`
	Content     string    `gorm:"type:text;not null"`
	Excerpt     string    `gorm:"type:text;not null"`
	Author      string    `gorm:"size:255;not null"`
	Category    string    `gorm:"size:255;not null"`
	Status      string    `gorm:"size:20;not null;default:draft;index"`
	Tags        []string  `gorm:"serializer:json"`
	ImageURL    *string   `gorm:"column:image_url"`
	Views       int64     `gorm:"not null;default:0"`
	PublishDate time.Time `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (articleModel) TableName() string {
	return "articles"
}

func toArticleModel(a domain.Article, seq int64) articleModel {
	return articleModel{
		ID:          a.ID,
		Seq:         seq,
		Title:       a.Title,
		Content:     a.Content,
		Excerpt:     a.Excerpt,
		Author:      a.Author,
		Category:    a.Category,
		Status:      string(a.Status),
		Tags:        a.Tags,
		ImageURL:    a.ImageURL,
		Views:       a.Views,
		PublishDate: a.PublishDate.UTC(),
		CreatedAt:   a.CreatedAt.UTC(),
		UpdatedAt:   a.UpdatedAt.UTC(),
	}
}

func (m articleModel) toDomain() domain.Article {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return domain.Article{
		ID:          m.ID,
		Title:       m.Title,
		Content:     m.Content,
		Excerpt:     m.Excerpt,
		Author:      m.Author,
		Category:    m.Category,
		Status:      domain.Status(m.Status),
		Tags:        tags,
		ImageURL:    m.ImageURL,
		Views:       m.Views,
		PublishDate: m.PublishDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// GormArticleRepository implements ArticleRepository on top of gorm (SQLite in practice).
type GormArticleRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormArticleRepository creates a GormArticleRepository.
func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// AutoMigrate creates or updates the articles table.
func (r *GormArticleRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&articleModel{})
}

func (r *GormArticleRepository) List(ctx context.Context) ([]domain.Article, error) {
	var rows []articleModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("seq DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	return toDomainArticles(rows), nil
}

func (r *GormArticleRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	var row articleModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	a := row.toDomain()
	return &a, nil
}

func (r *GormArticleRepository) Create(ctx context.Context, in domain.ArticleInput) (*domain.Article, error) {
	a := domain.NewArticle(uuid.New().String(), in, r.now())

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxSeq int64
		if err := tx.Model(&articleModel{}).Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
			return err
		}
		row := toArticleModel(a, maxSeq+1)
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	return &a, nil
}

func (r *GormArticleRepository) Update(ctx context.Context, id string, patch domain.ArticlePatch) (*domain.Article, error) {
	var updated *domain.Article

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row articleModel
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			return err
		}

		next := patch.Apply(row.toDomain(), r.now())
		res := tx.Model(&articleModel{}).Where("id = ?", id).
			Select("title", "content", "excerpt", "author", "category", "status", "tags", "image_url", "publish_date", "updated_at").
			Updates(toArticleModel(next, row.Seq))
		if res.Error != nil {
			return res.Error
		}
		updated = &next
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return updated, nil
}

func (r *GormArticleRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&articleModel{})
	if res.Error != nil {
		return false, fmt.Errorf("delete article: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormArticleRepository) ListPublished(ctx context.Context) ([]domain.Article, error) {
	var rows []articleModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.StatusPublished)).
		Order("publish_date DESC").Order("created_at DESC").Order("seq DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query published articles: %w", err)
	}
	return toDomainArticles(rows), nil
}

// IncrementViews uses UpdateColumn so no hooks or timestamps are touched.
func (r *GormArticleRepository) IncrementViews(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&articleModel{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return false, fmt.Errorf("increment views: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormArticleRepository) CleanupUnpublished(ctx context.Context) (int, error) {
	res := r.db.WithContext(ctx).Where("status <> ?", string(domain.StatusPublished)).Delete(&articleModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("cleanup unpublished articles: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}

// PublishDue selects and flips the due rows inside one transaction. The UPDATE
// repeats the status and date condition so a row changed after the SELECT is skipped.
func (r *GormArticleRepository) PublishDue(ctx context.Context, now time.Time) ([]domain.Article, error) {
	var promoted []articleModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var due []articleModel
		if err := tx.Where("status = ? AND publish_date <= ?", string(domain.StatusScheduled), now.UTC()).
			Order("seq ASC").Find(&due).Error; err != nil {
			return err
		}

		stamp := r.now()
		for _, row := range due {
			res := tx.Model(&articleModel{}).
				Where("id = ? AND status = ? AND publish_date <= ?", row.ID, string(domain.StatusScheduled), now.UTC()).
				UpdateColumns(map[string]any{"status": string(domain.StatusPublished), "updated_at": stamp})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue
			}
			row.Status = string(domain.StatusPublished)
			row.UpdatedAt = stamp
			promoted = append(promoted, row)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("publish due articles: %w", err)
	}
	return toDomainArticles(promoted), nil
}

func toDomainArticles(rows []articleModel) []domain.Article {
	out := make([]domain.Article, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out
}
