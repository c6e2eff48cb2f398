package repository

import (
	"context"
	"fmt"
	"strings"

	"reviewhub/internal/httpapi/models"

	"gorm.io/gorm"
)

// TitleFilter narrows a title listing. Zero values mean "no constraint".
type TitleFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	FindByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, title *models.Title) error
	Update(ctx context.Context, title *models.Title) error
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

// filtered builds a fresh query for each call so Count and Find never
// share statement state.
func (r *titleRepository) filtered(ctx context.Context, filter TitleFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Title{})
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		q = q.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.GenreSlug)
	}
	if filter.Name != "" {
		q = q.Where("LOWER(titles.name) LIKE ?", "%"+strings.ToLower(filter.Name)+"%")
	}
	if filter.Year != nil {
		q = q.Where("titles.year = ?", *filter.Year)
	}
	return q
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var titles []models.Title
	offset := (page - 1) * pageSize
	err := r.filtered(ctx, filter).
		Preload("Category").
		Preload("Genres").
		Order("titles.name asc, titles.id asc").
		Limit(pageSize).
		Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (r *titleRepository) FindByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Genres").
		First(&title, "titles.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	return r.db.WithContext(ctx).Create(title).Error
}

// Update persists scalar columns and replaces the genre set. The genre
// rows on the title must already exist; Replace only rewrites join rows.
func (r *titleRepository) Update(ctx context.Context, title *models.Title) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Genres", "Category").Save(title).Error; err != nil {
			return err
		}
		if err := tx.Model(title).Association("Genres").Replace(title.Genres); err != nil {
			return fmt.Errorf("replace genres: %w", err)
		}
		return nil
	})
}

// Delete removes a title together with its reviews and their comments.
func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(
			"DELETE FROM comments WHERE review_id IN (SELECT id FROM reviews WHERE title_id = ?)", id,
		).Error
		if err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Exec("DELETE FROM reviews WHERE title_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}
		if err := tx.Exec("DELETE FROM title_genres WHERE title_id = ?", id).Error; err != nil {
			return fmt.Errorf("detach genres: %w", err)
		}
		result := tx.Delete(&models.Title{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
