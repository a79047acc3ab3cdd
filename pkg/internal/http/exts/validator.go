package exts

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validation = validator.New(validator.WithRequiredStructEnabled())

func init() {
	validation.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			} else if len(name) > 0 {
				return name
			}
		}
		return field.Name
	})
}

// FormError carries the failed rule of every invalid field.
type FormError struct {
	Errors map[string]string `json:"errors"`
}

func NewFormError(field, rule string) *FormError {
	return &FormError{Errors: map[string]string{field: rule}}
}

func (v *FormError) Error() string {
	var parts []string
	for field, rule := range v.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", field, rule))
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

func BindAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ValidateStruct(out)
}

func ValidateStruct(out any) error {
	if err := validation.Struct(out); err != nil {
		var fields validator.ValidationErrors
		if errors.As(err, &fields) {
			result := &FormError{Errors: make(map[string]string, len(fields))}
			for _, field := range fields {
				result.Errors[field.Field()] = field.Tag()
			}
			return result
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
