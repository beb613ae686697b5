package repository

import (
	"context"
	"fmt"
	"time"

	"newshub/internal/domain"
)

func sampleArticles() []domain.ArticleInput {
	img := func(s string) *string { return &s }
	date := func(s string) *time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return &t
	}

	return []domain.ArticleInput{
		{
			Title:       "Công nghệ AI mới nhất trong năm 2024",
			Content:     "Trí tuệ nhân tạo đang phát triển với tốc độ chóng mặt. Các công nghệ AI mới như ChatGPT, Gemini và Claude đã thay đổi cách chúng ta làm việc và học tập. Bài viết này sẽ khám phá những xu hướng AI hàng đầu trong năm 2024 và tác động của chúng đến cuộc sống hàng ngày.",
			Excerpt:     "Khám phá những xu hướng AI hàng đầu và tác động của chúng đến cuộc sống trong năm 2024",
			Author:      "Nguyễn Văn A",
			Category:    "Công nghệ",
			Status:      domain.StatusPublished,
			Tags:        []string{"AI", "Machine Learning", "Technology"},
			ImageURL:    img("https://images.unsplash.com/photo-1677442136019-21780ecad995?w=800"),
			PublishDate: date("2024-01-15"),
		},
		{
			Title:       "Xu hướng kinh doanh digital 2024",
			Content:     "Kinh doanh số đang trở thành xu hướng chủ đạo. Các doanh nghiệp cần chuyển đổi số để cạnh tranh hiệu quả. Từ e-commerce đến marketing digital, mọi khía cạnh của kinh doanh đều cần được số hóa để thích ứng với thời đại mới.",
			Excerpt:     "Tìm hiểu về chuyển đổi số và các xu hướng kinh doanh digital quan trọng năm 2024",
			Author:      "Trần Thị B",
			Category:    "Kinh doanh",
			Status:      domain.StatusPublished,
			Tags:        []string{"Digital Business", "E-commerce", "Digital Marketing"},
			ImageURL:    img("https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=800"),
			PublishDate: date("2024-01-10"),
		},
		{
			Title:       "Thể thao Việt Nam tại SEA Games 2024",
			Content:     "Đoàn thể thao Việt Nam đã có những thành tích ấn tượng tại SEA Games 2024. Với tinh thần thi đấu cao và sự chuẩn bị kỹ lưỡng, các vận động viên Việt Nam đã mang về nhiều huy chương quý giá cho nước nhà.",
			Excerpt:     "Điểm lại những thành tích nổi bật của thể thao Việt Nam tại SEA Games 2024",
			Author:      "Lê Văn C",
			Category:    "Thể thao",
			Status:      domain.StatusPublished,
			Tags:        []string{"SEA Games", "Vietnam Sports", "Athletics"},
			ImageURL:    img("https://images.unsplash.com/photo-1551698618-1dfe5d97d256?w=800"),
			PublishDate: date("2024-01-08"),
		},
	}
}

// SeedSampleArticles inserts the demo articles through the repository.
// Seeding is skipped when the repository already holds articles.
func SeedSampleArticles(ctx context.Context, repo ArticleRepository) (int, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list articles: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	seeded := 0
	for _, in := range sampleArticles() {
		if _, err := repo.Create(ctx, in); err != nil {
			return seeded, fmt.Errorf("seed article %q: %w", in.Title, err)
		}
		seeded++
	}
	return seeded, nil
}
