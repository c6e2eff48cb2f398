package dto

import (
	"strings"

	"reviewhub/internal/httpapi/apierrors"
	"reviewhub/internal/httpapi/models"
)

type GenreRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (r GenreRequest) Validate() apierrors.FieldErrors {
	errs := apierrors.FieldErrors{}
	if strings.TrimSpace(r.Name) == "" {
		errs.Add("name", MsgNameBlank)
	} else if len(r.Name) > NameMaxLength {
		errs.Add("name", "name is too long")
	}
	checkSlug(errs, r.Slug)
	return errsOrNil(errs)
}

func (r GenreRequest) ToModel() models.Genre {
	return models.Genre{Name: r.Name, Slug: r.Slug}
}

type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromModelToGenreResponse(g *models.Genre) GenreResponse {
	return GenreResponse{Name: g.Name, Slug: g.Slug}
}
