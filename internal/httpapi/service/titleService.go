package service

import (
	"context"
	"errors"
	"fmt"

	"reviewhub/internal/cache"
	"reviewhub/internal/httpapi/apierrors"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

// TitleService owns the catalog of reviewable works, including the
// derived average rating attached to every read.
type TitleService struct {
	titles     repository.TitleRepository
	categories repository.CategoryRepository
	genres     repository.GenreRepository
	reviews    repository.ReviewRepository
	ratings    *cache.RatingCache
}

func NewTitleService(
	titles repository.TitleRepository,
	categories repository.CategoryRepository,
	genres repository.GenreRepository,
	reviews repository.ReviewRepository,
	ratings *cache.RatingCache,
) *TitleService {
	return &TitleService{
		titles:     titles,
		categories: categories,
		genres:     genres,
		reviews:    reviews,
		ratings:    ratings,
	}
}

// List returns a filtered page of titles. Ratings for the page are
// fetched with one aggregate query rather than per title.
func (s *TitleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (dto.PaginatedResponse[dto.TitleResponse], error) {
	page, pageSize = normalizePage(page, pageSize)

	titles, total, err := s.titles.List(ctx, filter, page, pageSize)
	if err != nil {
		return dto.PaginatedResponse[dto.TitleResponse]{}, fmt.Errorf("list titles: %w", err)
	}

	ids := make([]int64, 0, len(titles))
	for i := range titles {
		ids = append(ids, titles[i].ID)
	}
	averages, err := s.reviews.AverageScores(ctx, ids)
	if err != nil {
		return dto.PaginatedResponse[dto.TitleResponse]{}, fmt.Errorf("aggregate ratings: %w", err)
	}

	responses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		var rating *float64
		if avg, ok := averages[titles[i].ID]; ok {
			rating = &avg
		}
		responses = append(responses, dto.FromModelToTitleResponse(&titles[i], rating))
	}
	return dto.NewPaginatedResponse(responses, page, pageSize, total), nil
}

func (s *TitleService) Get(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}

	rating, err := s.rating(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.FromModelToTitleResponse(title, rating)
	return &resp, nil
}

func (s *TitleService) Create(ctx context.Context, req dto.TitleWriteRequest) (*dto.TitleResponse, error) {
	if errs := req.Validate(false); errs != nil {
		return nil, errs
	}

	title := models.Title{
		Name:        *req.Name,
		Year:        *req.Year,
		Description: derefOrEmpty(req.Description),
	}

	if errs, err := s.resolveRelations(ctx, req, &title); err != nil {
		return nil, err
	} else if errs != nil {
		return nil, errs
	}

	if err := s.titles.Create(ctx, &title); err != nil {
		return nil, fmt.Errorf("create title: %w", err)
	}

	// a fresh title has no reviews, so no rating
	resp := dto.FromModelToTitleResponse(&title, nil)
	return &resp, nil
}

func (s *TitleService) Update(ctx context.Context, id int64, req dto.TitleWriteRequest) (*dto.TitleResponse, error) {
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}

	if errs := req.Validate(true); errs != nil {
		return nil, errs
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if errs, err := s.resolveRelations(ctx, req, title); err != nil {
		return nil, err
	} else if errs != nil {
		return nil, errs
	}

	if err := s.titles.Update(ctx, title); err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}

	rating, err := s.rating(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToTitleResponse(title, rating)
	return &resp, nil
}

func (s *TitleService) Delete(ctx context.Context, id int64) error {
	if err := s.titles.Delete(ctx, id); err != nil {
		return asNotFound(err)
	}
	s.ratings.Invalidate(ctx, id)
	return nil
}

// rating reads the average score through the cache.
func (s *TitleService) rating(ctx context.Context, titleID int64) (*float64, error) {
	if rating, ok := s.ratings.Get(ctx, titleID); ok {
		return rating, nil
	}

	rating, err := s.reviews.AverageScore(ctx, titleID)
	if err != nil {
		return nil, fmt.Errorf("aggregate rating: %w", err)
	}
	s.ratings.Set(ctx, titleID, rating)
	return rating, nil
}

// resolveRelations turns the submitted category and genre slugs into
// rows on the title. Unknown slugs are validation errors, not 404s: they
// arrive in a request body.
func (s *TitleService) resolveRelations(ctx context.Context, req dto.TitleWriteRequest, title *models.Title) (apierrors.FieldErrors, error) {
	if req.Category != nil {
		category, err := s.categories.FindBySlug(ctx, *req.Category)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierrors.NewFieldError("category",
					fmt.Sprintf("category with slug %q does not exist", *req.Category)), nil
			}
			return nil, fmt.Errorf("resolve category: %w", err)
		}
		title.CategoryID = &category.ID
		title.Category = category
	}

	if req.Genre != nil {
		genres, err := s.genres.FindBySlugs(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
		if missing := missingSlugs(*req.Genre, genres); len(missing) > 0 {
			return apierrors.NewFieldError("genre",
				fmt.Sprintf("genres with slugs %v do not exist", missing)), nil
		}
		title.Genres = genres
	}

	return nil, nil
}

func missingSlugs(requested []string, found []models.Genre) []string {
	known := make(map[string]bool, len(found))
	for i := range found {
		known[found[i].Slug] = true
	}
	var missing []string
	for _, slug := range requested {
		if !known[slug] {
			missing = append(missing, slug)
		}
	}
	return missing
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
