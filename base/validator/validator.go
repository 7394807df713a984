package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/bidhaus/goapi/domain/auction"
)

func NewCustomValidator(v *validator.Validate) echo.Validator {
	v.RegisterValidation("category", isValidCategory)
	return &CustomValidator{v}
}

func isValidCategory(fl validator.FieldLevel) bool {
	return auction.Category(fl.Field().String()).IsValid()
}

type CustomValidator struct {
	validator *validator.Validate
}

func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return err
	}
	return nil
}
