package dto

import "reviewhub/internal/httpapi/apierrors"

type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Validate runs the field-level checks. Conflicts with existing users are
// the service's job.
func (r SignUpRequest) Validate() apierrors.FieldErrors {
	errs := apierrors.FieldErrors{}
	checkUsername(errs, r.Username)
	checkEmail(errs, r.Email)
	return errsOrNil(errs)
}

type SignUpResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

func (r TokenRequest) Validate() apierrors.FieldErrors {
	errs := apierrors.FieldErrors{}
	if r.Username == "" {
		errs.Add("username", "this field is required")
	}
	if r.ConfirmationCode == "" {
		errs.Add("confirmation_code", "this field is required")
	}
	return errsOrNil(errs)
}

type TokenResponse struct {
	Token string `json:"token"`
}
