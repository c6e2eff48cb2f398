package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"reviewhub/internal/httpapi/apierrors"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

// UserService backs both the admin user CRUD and the /users/me profile.
type UserService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

func NewUserService(users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) List(ctx context.Context, search string, page, pageSize int) (dto.PaginatedResponse[dto.UserResponse], error) {
	page, pageSize = normalizePage(page, pageSize)

	users, total, err := s.users.List(ctx, search, page, pageSize)
	if err != nil {
		return dto.PaginatedResponse[dto.UserResponse]{}, fmt.Errorf("list users: %w", err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.FromModelToUserResponse(&users[i]))
	}
	return dto.NewPaginatedResponse(responses, page, pageSize, total), nil
}

// Create is the admin-only path: the user is active immediately, with no
// confirmation step.
func (s *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	if errs, err := s.conflicts(ctx, req.Username, req.Email, nil); err != nil {
		return nil, err
	} else if errs != nil {
		return nil, errs
	}

	user := req.ToModel()
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apierrors.NewFieldError("username", dto.MsgUsernameOccupied)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created", "username", user.Username, "role", user.Role)

	resp := dto.FromModelToUserResponse(&user)
	return &resp, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, asNotFound(err)
	}
	resp := dto.FromModelToUserResponse(user)
	return &resp, nil
}

// Update applies a partial update to the named user. allowRole is set on
// the admin path only; through /users/me the role field is ignored.
func (s *UserService) Update(ctx context.Context, username string, req dto.UpdateUserRequest, allowRole bool) (*dto.UserResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, asNotFound(err)
	}

	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	newUsername, newEmail := user.Username, user.Email
	if req.Username != nil {
		newUsername = *req.Username
	}
	if req.Email != nil {
		newEmail = *req.Email
	}
	if errs, err := s.conflicts(ctx, newUsername, newEmail, user); err != nil {
		return nil, err
	} else if errs != nil {
		return nil, errs
	}

	req.ApplyTo(user, allowRole)
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apierrors.NewFieldError("username", dto.MsgUsernameOccupied)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	resp := dto.FromModelToUserResponse(user)
	return &resp, nil
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	if err := s.users.DeleteByUsername(ctx, username); err != nil {
		return asNotFound(err)
	}
	s.logger.Info("user deleted", "username", username)
	return nil
}

// conflicts checks username and email against other users. self, when
// non-nil, is excluded so an update keeping a field unchanged passes.
func (s *UserService) conflicts(ctx context.Context, username, email string, self *models.User) (apierrors.FieldErrors, error) {
	errs := apierrors.FieldErrors{}

	if found, err := s.users.FindByUsername(ctx, username); err == nil {
		if self == nil || found.ID != self.ID {
			errs.Add("username", dto.MsgUsernameOccupied)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if found, err := s.users.FindByEmail(ctx, email); err == nil {
		if self == nil || found.ID != self.ID {
			errs.Add("email", dto.MsgEmailOccupied)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}
