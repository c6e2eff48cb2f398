package dto

import (
	"strings"
	"time"

	"reviewhub/internal/httpapi/apierrors"
	"reviewhub/internal/httpapi/models"
)

type CommentWriteRequest struct {
	Text *string `json:"text"`
}

func (r CommentWriteRequest) Validate(partial bool) apierrors.FieldErrors {
	errs := apierrors.FieldErrors{}

	if r.Text == nil {
		if !partial {
			errs.Add("text", "this field is required")
		}
	} else if strings.TrimSpace(*r.Text) == "" {
		errs.Add("text", "text must not be blank")
	}

	return errsOrNil(errs)
}

type CommentResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:      c.ID,
		Text:    c.Text,
		Author:  c.Author.Username,
		PubDate: c.PubDate,
	}
}
