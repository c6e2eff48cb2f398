package repository

import (
	"context"

	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, comment *models.Comment) error
	FindByReviewAndID(ctx context.Context, reviewID, commentID int64) (*models.Comment, error)
	ListByReview(ctx context.Context, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit("Author", "Review").Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Delete(comment).Error
}

func (r *commentRepository) FindByReviewAndID(ctx context.Context, reviewID, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("review_id = ?", reviewID).
		First(&comment, "comments.id = ?", commentID).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByReview(ctx context.Context, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("review_id = ?", reviewID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	offset := (page - 1) * pageSize
	err = r.db.WithContext(ctx).
		Preload("Author").
		Where("review_id = ?", reviewID).
		Order("pub_date asc, id asc").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
