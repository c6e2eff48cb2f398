package dto

import (
	"strings"
	"time"

	"reviewhub/internal/httpapi/apierrors"
	"reviewhub/internal/httpapi/models"
)

type ReviewWriteRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

func (r ReviewWriteRequest) Validate(partial bool) apierrors.FieldErrors {
	errs := apierrors.FieldErrors{}

	if r.Text == nil {
		if !partial {
			errs.Add("text", "this field is required")
		}
	} else if strings.TrimSpace(*r.Text) == "" {
		errs.Add("text", "text must not be blank")
	}

	if r.Score == nil {
		if !partial {
			errs.Add("score", "this field is required")
		}
	} else if *r.Score < ReviewScoreMin || *r.Score > ReviewScoreMax {
		errs.Add("score", MsgScoreOutOfRange)
	}

	return errsOrNil(errs)
}

func (r ReviewWriteRequest) ApplyTo(review *models.Review) {
	if r.Text != nil {
		review.Text = *r.Text
	}
	if r.Score != nil {
		review.Score = *r.Score
	}
}

// ReviewResponse exposes the author by username; author and pub_date are
// server-assigned and never client-writable.
type ReviewResponse struct {
	ID      int64     `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func FromModelToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		Text:    r.Text,
		Author:  r.Author.Username,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}
