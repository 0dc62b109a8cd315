package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func validationMessage(err error) string {
	if invalid, ok := err.(*validator.InvalidValidationError); ok {
		return invalid.Error()
	}
	for _, fieldErr := range err.(validator.ValidationErrors) {
		switch fieldErr.Tag() {
		case "required":
			return fieldErr.Field() + " is required"
		case "email":
			return fieldErr.Field() + " must be a valid email address"
		case "gt":
			return fieldErr.Field() + " must be greater than " + fieldErr.Param()
		case "min":
			return fieldErr.Field() + " must contain at least " + fieldErr.Param() + " item(s)"
		default:
			return fieldErr.Field() + " is invalid"
		}
	}
	return "invalid request"
}

func parseAuthUserID(c *fiber.Ctx) (int64, error) {
	userIDValue := c.Locals("user_id")
	userIDStr, ok := userIDValue.(string)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(userIDStr, 10, 64)
}
