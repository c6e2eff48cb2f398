package service

import (
	"context"
	"errors"
	"fmt"

	"reviewhub/internal/httpapi/apierrors"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/repository"
)

type GenreService struct {
	genres repository.GenreRepository
}

func NewGenreService(genres repository.GenreRepository) *GenreService {
	return &GenreService{genres: genres}
}

func (s *GenreService) List(ctx context.Context, search string, page, pageSize int) (dto.PaginatedResponse[dto.GenreResponse], error) {
	page, pageSize = normalizePage(page, pageSize)

	genres, total, err := s.genres.List(ctx, search, page, pageSize)
	if err != nil {
		return dto.PaginatedResponse[dto.GenreResponse]{}, fmt.Errorf("list genres: %w", err)
	}

	responses := make([]dto.GenreResponse, 0, len(genres))
	for i := range genres {
		responses = append(responses, dto.FromModelToGenreResponse(&genres[i]))
	}
	return dto.NewPaginatedResponse(responses, page, pageSize, total), nil
}

func (s *GenreService) Get(ctx context.Context, slug string) (*dto.GenreResponse, error) {
	genre, err := s.genres.FindBySlug(ctx, slug)
	if err != nil {
		return nil, asNotFound(err)
	}
	resp := dto.FromModelToGenreResponse(genre)
	return &resp, nil
}

func (s *GenreService) Create(ctx context.Context, req dto.GenreRequest) (*dto.GenreResponse, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	genre := req.ToModel()
	if err := s.genres.Create(ctx, &genre); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apierrors.NewFieldError("slug", dto.MsgSlugOccupied)
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}

	resp := dto.FromModelToGenreResponse(&genre)
	return &resp, nil
}

func (s *GenreService) Delete(ctx context.Context, slug string) error {
	return asNotFound(s.genres.DeleteBySlug(ctx, slug))
}
