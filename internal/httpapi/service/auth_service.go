package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"reviewhub/internal/httpapi/apierrors"
	"reviewhub/internal/httpapi/auth"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/mailer"

	"gorm.io/gorm"
)

// AuthService implements the confirmation-code signup flow and token
// issuance.
type AuthService struct {
	users     repository.UserRepository
	signer    *auth.TokenSigner
	mail      mailer.Mailer
	logger    *slog.Logger
	codeBytes int
}

func NewAuthService(users repository.UserRepository, signer *auth.TokenSigner, mail mailer.Mailer, logger *slog.Logger, codeBytes int) *AuthService {
	return &AuthService{
		users:     users,
		signer:    signer,
		mail:      mail,
		logger:    logger,
		codeBytes: codeBytes,
	}
}

// SignUp registers a user, or re-issues a confirmation code when the
// exact username/email pair already exists. A collision on only one of
// the two fields is reported as a validation error on that field.
func (s *AuthService) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.SignUpResponse, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	existing, err := s.users.FindByUsernameAndEmail(ctx, req.Username, req.Email)
	if err == nil {
		return s.issueCode(ctx, existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if errs, err := s.signupConflicts(ctx, req.Username, req.Email); err != nil {
		return nil, err
	} else if errs != nil {
		return nil, errs
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     models.RoleUser,
	}
	code, err := auth.GenerateConfirmationCode(s.codeBytes)
	if err != nil {
		return nil, fmt.Errorf("generate confirmation code: %w", err)
	}
	hash, err := auth.HashConfirmationCode(code)
	if err != nil {
		return nil, fmt.Errorf("hash confirmation code: %w", err)
	}
	user.ConfirmationCode = hash

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// lost a race with a concurrent signup; report it like any
			// other collision
			if errs, cerr := s.signupConflicts(ctx, req.Username, req.Email); cerr == nil && errs != nil {
				return nil, errs
			}
			return nil, apierrors.NewFieldError("username", dto.MsgUsernameOccupied)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user signed up", "username", user.Username)

	if err := s.mail.SendConfirmationCode(ctx, user.Email, code); err != nil {
		// the code is already persisted and stays valid; the client can
		// retry signup to get a fresh one
		return nil, &apierrors.DeliveryError{Err: err}
	}

	return &dto.SignUpResponse{Username: user.Username, Email: user.Email}, nil
}

// IssueToken exchanges a valid confirmation code for an access token.
// An unknown username is a 404, a wrong code a validation error.
func (s *AuthService) IssueToken(ctx context.Context, req dto.TokenRequest) (*dto.TokenResponse, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.ErrNotFound
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if user.ConfirmationCode == "" ||
		auth.VerifyConfirmationCode(user.ConfirmationCode, req.ConfirmationCode) != nil {
		return nil, apierrors.NewFieldError("confirmation_code", dto.MsgWrongCode)
	}

	token, err := s.signer.Sign(user)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("access token issued", "username", user.Username)
	return &dto.TokenResponse{Token: token}, nil
}

// issueCode rotates the confirmation code for an already registered pair.
func (s *AuthService) issueCode(ctx context.Context, user *models.User) (*dto.SignUpResponse, error) {
	code, err := auth.GenerateConfirmationCode(s.codeBytes)
	if err != nil {
		return nil, fmt.Errorf("generate confirmation code: %w", err)
	}
	hash, err := auth.HashConfirmationCode(code)
	if err != nil {
		return nil, fmt.Errorf("hash confirmation code: %w", err)
	}

	user.ConfirmationCode = hash
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("store confirmation code: %w", err)
	}

	s.logger.Info("confirmation code re-issued", "username", user.Username)

	if err := s.mail.SendConfirmationCode(ctx, user.Email, code); err != nil {
		return nil, &apierrors.DeliveryError{Err: err}
	}

	return &dto.SignUpResponse{Username: user.Username, Email: user.Email}, nil
}

// signupConflicts reports which of the two identity fields is taken.
func (s *AuthService) signupConflicts(ctx context.Context, username, email string) (apierrors.FieldErrors, error) {
	errs := apierrors.FieldErrors{}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		errs.Add("username", dto.MsgUsernameOccupied)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		errs.Add("email", dto.MsgEmailOccupied)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if len(errs) == 0 {
		return nil, nil
	}
	return errs, nil
}
