package dto

import (
	"strings"

	"reviewhub/internal/httpapi/apierrors"
	"reviewhub/internal/httpapi/models"
)

type CategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (r CategoryRequest) Validate() apierrors.FieldErrors {
	errs := apierrors.FieldErrors{}
	if strings.TrimSpace(r.Name) == "" {
		errs.Add("name", MsgNameBlank)
	} else if len(r.Name) > NameMaxLength {
		errs.Add("name", "name is too long")
	}
	checkSlug(errs, r.Slug)
	return errsOrNil(errs)
}

func (r CategoryRequest) ToModel() models.Category {
	return models.Category{Name: r.Name, Slug: r.Slug}
}

type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func FromModelToCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{Name: c.Name, Slug: c.Slug}
}
