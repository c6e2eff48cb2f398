package service

import (
	"context"
	"errors"
	"fmt"

	"reviewhub/internal/httpapi/apierrors"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/repository"
)

type CategoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context, search string, page, pageSize int) (dto.PaginatedResponse[dto.CategoryResponse], error) {
	page, pageSize = normalizePage(page, pageSize)

	categories, total, err := s.categories.List(ctx, search, page, pageSize)
	if err != nil {
		return dto.PaginatedResponse[dto.CategoryResponse]{}, fmt.Errorf("list categories: %w", err)
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, dto.FromModelToCategoryResponse(&categories[i]))
	}
	return dto.NewPaginatedResponse(responses, page, pageSize, total), nil
}

func (s *CategoryService) Get(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		return nil, asNotFound(err)
	}
	resp := dto.FromModelToCategoryResponse(category)
	return &resp, nil
}

func (s *CategoryService) Create(ctx context.Context, req dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	category := req.ToModel()
	if err := s.categories.Create(ctx, &category); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apierrors.NewFieldError("slug", dto.MsgSlugOccupied)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	resp := dto.FromModelToCategoryResponse(&category)
	return &resp, nil
}

func (s *CategoryService) Delete(ctx context.Context, slug string) error {
	return asNotFound(s.categories.DeleteBySlug(ctx, slug))
}
