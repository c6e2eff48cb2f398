package service

import (
	"context"
	"fmt"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
)

type CommentService struct {
	comments repository.CommentRepository
	reviews  repository.ReviewRepository
}

func NewCommentService(comments repository.CommentRepository, reviews repository.ReviewRepository) *CommentService {
	return &CommentService{comments: comments, reviews: reviews}
}

func (s *CommentService) ListByReview(ctx context.Context, titleID, reviewID int64, page, pageSize int) (dto.PaginatedResponse[dto.CommentResponse], error) {
	page, pageSize = normalizePage(page, pageSize)

	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return dto.PaginatedResponse[dto.CommentResponse]{}, err
	}

	comments, total, err := s.comments.ListByReview(ctx, reviewID, page, pageSize)
	if err != nil {
		return dto.PaginatedResponse[dto.CommentResponse]{}, fmt.Errorf("list comments: %w", err)
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, dto.FromModelToCommentResponse(&comments[i]))
	}
	return dto.NewPaginatedResponse(responses, page, pageSize, total), nil
}

func (s *CommentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.comments.FindByReviewAndID(ctx, reviewID, commentID)
	if err != nil {
		return nil, asNotFound(err)
	}
	resp := dto.FromModelToCommentResponse(comment)
	return &resp, nil
}

func (s *CommentService) Create(ctx context.Context, titleID, reviewID int64, author *models.User, req dto.CommentWriteRequest) (*dto.CommentResponse, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	if errs := req.Validate(false); errs != nil {
		return nil, errs
	}

	comment := models.Comment{
		ReviewID: reviewID,
		AuthorID: author.ID,
		Text:     *req.Text,
	}
	if err := s.comments.Create(ctx, &comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = *author

	resp := dto.FromModelToCommentResponse(&comment)
	return &resp, nil
}

func (s *CommentService) Update(ctx context.Context, titleID, reviewID, commentID int64, actor *models.User, req dto.CommentWriteRequest) (*dto.CommentResponse, error) {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.comments.FindByReviewAndID(ctx, reviewID, commentID)
	if err != nil {
		return nil, asNotFound(err)
	}

	if err := authorizeContentEdit(comment.AuthorID, actor); err != nil {
		return nil, err
	}

	if errs := req.Validate(true); errs != nil {
		return nil, errs
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	resp := dto.FromModelToCommentResponse(comment)
	return &resp, nil
}

func (s *CommentService) Delete(ctx context.Context, titleID, reviewID, commentID int64, actor *models.User) error {
	if err := s.ensureReview(ctx, titleID, reviewID); err != nil {
		return err
	}

	comment, err := s.comments.FindByReviewAndID(ctx, reviewID, commentID)
	if err != nil {
		return asNotFound(err)
	}

	if err := authorizeContentEdit(comment.AuthorID, actor); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, comment); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// ensureReview verifies the nested path (title, review) actually exists.
func (s *CommentService) ensureReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviews.FindByTitleAndID(ctx, titleID, reviewID); err != nil {
		return asNotFound(err)
	}
	return nil
}
