package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"publishing-backend/internal/shared/utils"
)

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Slug, validation.By(validateOptionalSlug)),
	)
}

type CreateTagRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (r CreateTagRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.Slug, validation.By(validateOptionalSlug)),
	)
}

func validateOptionalSlug(value interface{}) error {
	slug, _ := value.(string)
	if slug == "" {
		return nil
	}
	if !utils.IsValidSlug(slug) {
		return validation.NewError("validation_slug", "must contain only lowercase letters, digits and hyphens")
	}
	return nil
}
