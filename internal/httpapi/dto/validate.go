package dto

import (
	"regexp"
	"strings"

	"reviewhub/internal/httpapi/apierrors"
)

// Field limits, mirrored by the column sizes in the models package.
const (
	UsernameMaxLength = 150
	EmailMaxLength    = 254
	NameMaxLength     = 256
	SlugMaxLength     = 50

	ReviewScoreMin = 1
	ReviewScoreMax = 10
)

// Validation messages shared between the request validators and the
// service-level conflict checks.
const (
	MsgUsernameOccupied = "a user with that username already exists"
	MsgEmailOccupied    = "a user with that email already exists"
	MsgUsernameMe       = "username 'me' is not allowed"
	MsgUsernameInvalid  = "username may contain only letters, digits and @/./+/-/_ characters"
	MsgUserNotFound     = "user not found"
	MsgWrongCode        = "invalid confirmation code"

	MsgNameBlank    = "name must not be blank"
	MsgSlugBlank    = "slug must not be blank"
	MsgSlugInvalid  = "slug may contain only letters, digits, hyphens and underscores"
	MsgSlugOccupied = "this slug is already in use"

	MsgEmptyPatch    = "no data provided for update"
	MsgGenreRequired = "a title must belong to at least one genre"
	MsgYearRequired  = "year is required"
	MsgYearInFuture  = "year cannot be greater than the current year"

	MsgScoreOutOfRange   = "score must be between 1 and 10"
	MsgReviewAlreadyLeft = "you have already reviewed this title"
)

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

func checkUsername(errs apierrors.FieldErrors, username string) {
	switch {
	case strings.TrimSpace(username) == "":
		errs.Add("username", "this field is required")
	case len(username) > UsernameMaxLength:
		errs.Add("username", "username is too long")
	case !usernameRe.MatchString(username):
		errs.Add("username", MsgUsernameInvalid)
	case strings.EqualFold(username, "me"):
		errs.Add("username", MsgUsernameMe)
	}
}

func checkEmail(errs apierrors.FieldErrors, email string) {
	switch {
	case strings.TrimSpace(email) == "":
		errs.Add("email", "this field is required")
	case len(email) > EmailMaxLength:
		errs.Add("email", "email is too long")
	case !emailRe.MatchString(email):
		errs.Add("email", "enter a valid email address")
	}
}

func checkSlug(errs apierrors.FieldErrors, slug string) {
	switch {
	case strings.TrimSpace(slug) == "":
		errs.Add("slug", MsgSlugBlank)
	case len(slug) > SlugMaxLength:
		errs.Add("slug", "slug is too long")
	case !slugRe.MatchString(slug):
		errs.Add("slug", MsgSlugInvalid)
	}
}

// errsOrNil lets validators return a plain nil error when nothing was
// recorded (a typed nil map would still compare non-nil as an error).
func errsOrNil(errs apierrors.FieldErrors) apierrors.FieldErrors {
	if len(errs) > 0 {
		return errs
	}
	return nil
}
