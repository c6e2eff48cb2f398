package repository

import (
	"context"
	"database/sql"
	"fmt"

	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, review *models.Review) error
	FindByTitleAndID(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	FindByTitleAndAuthor(ctx context.Context, titleID int64, authorID string) (*models.Review, error)
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	AverageScore(ctx context.Context, titleID int64) (*float64, error)
	AverageScores(ctx context.Context, titleIDs []int64) (map[int64]float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create relies on the one-review-per-author unique index; a constraint
// hit surfaces as ErrDuplicate.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return translateErr(r.db.WithContext(ctx).Create(review).Error)
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Omit("Author", "Title").Save(review).Error
}

// Delete removes the review together with its comments.
func (r *reviewRepository) Delete(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM comments WHERE review_id = ?", review.ID).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		return tx.Delete(review).Error
	})
}

func (r *reviewRepository) FindByTitleAndID(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("title_id = ?", titleID).
		First(&review, "reviews.id = ?", reviewID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByTitleAndAuthor(ctx context.Context, titleID int64, authorID string) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Review{}).Where("title_id = ?", titleID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("title_id = ?", titleID).
		Order("pub_date desc, id desc").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// AverageScore returns nil when the title has no reviews yet.
func (r *reviewRepository) AverageScore(ctx context.Context, titleID int64) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("title_id = ?", titleID).
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	value := avg.Float64
	return &value, nil
}

// AverageScores batches the rating aggregate for a page of titles.
// Titles without reviews are simply absent from the map.
func (r *reviewRepository) AverageScores(ctx context.Context, titleIDs []int64) (map[int64]float64, error) {
	averages := make(map[int64]float64, len(titleIDs))
	if len(titleIDs) == 0 {
		return averages, nil
	}

	var rows []struct {
		TitleID  int64
		AvgScore float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("title_id, AVG(score) AS avg_score").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		averages[row.TitleID] = row.AvgScore
	}
	return averages, nil
}
