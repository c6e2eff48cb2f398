package dto

import (
	"reviewhub/internal/httpapi/apierrors"
	"reviewhub/internal/httpapi/models"
)

// UserResponse is the read shape for both /users/me and the admin CRUD.
type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

func FromModelToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      string(u.Role),
	}
}

// CreateUserRequest is the admin-only user creation payload.
type CreateUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

func (r CreateUserRequest) Validate() apierrors.FieldErrors {
	errs := apierrors.FieldErrors{}
	checkUsername(errs, r.Username)
	checkEmail(errs, r.Email)
	if r.Role != "" && !models.Role(r.Role).Valid() {
		errs.Add("role", "role must be one of: user, moderator, admin")
	}
	return errsOrNil(errs)
}

func (r CreateUserRequest) ToModel() models.User {
	return models.User{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
		Role:      models.Role(r.Role),
	}
}

// UpdateUserRequest is the partial update payload for both the admin path
// and /users/me. The service decides whether the role field is honored.
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Role      *string `json:"role,omitempty"`
}

func (r UpdateUserRequest) Validate() apierrors.FieldErrors {
	errs := apierrors.FieldErrors{}
	if r.Username != nil {
		checkUsername(errs, *r.Username)
	}
	if r.Email != nil {
		checkEmail(errs, *r.Email)
	}
	if r.Role != nil && !models.Role(*r.Role).Valid() {
		errs.Add("role", "role must be one of: user, moderator, admin")
	}
	return errsOrNil(errs)
}

// ApplyTo copies the submitted fields onto the model. The role field is
// only honored when allowRole is set (admin path); through /users/me it
// is read-only even if submitted.
func (r UpdateUserRequest) ApplyTo(u *models.User, allowRole bool) {
	if r.Username != nil {
		u.Username = *r.Username
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
	if r.Bio != nil {
		u.Bio = *r.Bio
	}
	if allowRole && r.Role != nil {
		u.Role = models.Role(*r.Role)
	}
}
