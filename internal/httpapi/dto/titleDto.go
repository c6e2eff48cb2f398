package dto

import (
	"strings"
	"time"

	"reviewhub/internal/httpapi/apierrors"
	"reviewhub/internal/httpapi/models"
)

// TitleWriteRequest is the write shape for POST and PATCH. Category and
// genres are referenced by slug. Pointer fields distinguish "absent" from
// "zero" so PATCH can stay partial.
type TitleWriteRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Genre       *[]string `json:"genre"`
	Category    *string   `json:"category"`
}

// Validate runs field-level checks first, then the cross-field ones.
// With partial set, absent fields are not required but an entirely empty
// payload is rejected.
func (r TitleWriteRequest) Validate(partial bool) apierrors.FieldErrors {
	errs := apierrors.FieldErrors{}

	if partial && r.Name == nil && r.Year == nil && r.Description == nil && r.Genre == nil && r.Category == nil {
		errs.Add(apierrors.NonFieldErrors, MsgEmptyPatch)
		return errs
	}

	if r.Name == nil {
		if !partial {
			errs.Add("name", "this field is required")
		}
	} else if strings.TrimSpace(*r.Name) == "" {
		errs.Add("name", MsgNameBlank)
	} else if len(*r.Name) > NameMaxLength {
		errs.Add("name", "name is too long")
	}

	if r.Year == nil {
		if !partial {
			errs.Add("year", MsgYearRequired)
		}
	} else if *r.Year > time.Now().Year() {
		errs.Add("year", MsgYearInFuture)
	}

	if r.Genre == nil {
		if !partial {
			errs.Add("genre", MsgGenreRequired)
		}
	} else if len(*r.Genre) == 0 {
		errs.Add("genre", MsgGenreRequired)
	}

	if r.Category == nil && !partial {
		errs.Add("category", "this field is required")
	}

	return errsOrNil(errs)
}

// TitleResponse is the read shape: write responses are re-shaped through
// it as well, with the derived rating and the full related objects.
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description string            `json:"description"`
	Genre       []GenreResponse   `json:"genre"`
	Category    *CategoryResponse `json:"category"`
}

func FromModelToTitleResponse(t *models.Title, rating *float64) TitleResponse {
	genres := make([]GenreResponse, 0, len(t.Genres))
	for i := range t.Genres {
		genres = append(genres, FromModelToGenreResponse(&t.Genres[i]))
	}

	var category *CategoryResponse
	if t.Category != nil {
		c := FromModelToCategoryResponse(t.Category)
		category = &c
	}

	return TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      rating,
		Description: t.Description,
		Genre:       genres,
		Category:    category,
	}
}
