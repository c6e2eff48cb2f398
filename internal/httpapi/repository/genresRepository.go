package repository

import (
	"context"
	"fmt"
	"strings"

	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
	FindBySlug(ctx context.Context, slug string) (*models.Genre, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
	Create(ctx context.Context, genre *models.Genre) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Genre{})
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []models.Genre
	offset := (page - 1) * pageSize
	if err := q.Order("name asc").Limit(pageSize).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *genreRepository) FindBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// FindBySlugs resolves a set of slugs; the caller decides what a missing
// slug means (title writes treat it as a field error).
func (r *genreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	var genres []models.Genre
	if len(slugs) == 0 {
		return genres, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("find genres by slugs: %w", err)
	}
	return genres, nil
}

func (r *genreRepository) Create(ctx context.Context, genre *models.Genre) error {
	return translateErr(r.db.WithContext(ctx).Create(genre).Error)
}

// DeleteBySlug removes the genre and its title associations. The titles
// themselves are untouched.
func (r *genreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genre models.Genre
		if err := tx.Where("slug = ?", slug).First(&genre).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM title_genres WHERE genre_id = ?", genre.ID).Error; err != nil {
			return fmt.Errorf("detach titles: %w", err)
		}
		return tx.Delete(&genre).Error
	})
}
