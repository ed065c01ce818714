package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "soukly/pkg/errors"
)

// Body is the envelope every endpoint returns: {message, data?} on success,
// {message, error} on failure.
type Body struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type Paginated struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, Body{Message: message, Data: data})
}

func Created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, Body{Message: message, Data: data})
}

// Rejected reports a business-rule rejection. These are not errors: the
// request was understood and evaluated, the operation just was not performed.
func Rejected(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, Body{Message: message})
}

func SuccessPaginated(c echo.Context, message string, items interface{}, total int64, page, limit int) error {
	return c.JSON(http.StatusOK, Body{
		Message: message,
		Data: Paginated{
			Items: items,
			Total: total,
			Page:  page,
			Limit: limit,
		},
	})
}

func Error(c echo.Context, err error) error {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return handleValidationError(c, validationErr)
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == "REJECTED" {
			return Rejected(c, appErr.Message)
		}
		return c.JSON(appErr.Status, Body{
			Message: appErr.Message,
			Error:   appErr.Code,
		})
	}

	return c.JSON(http.StatusInternalServerError, Body{
		Message: "An unexpected error occurred",
		Error:   "INTERNAL_ERROR",
	})
}

func handleValidationError(c echo.Context, validationErr validator.ValidationErrors) error {
	for _, err := range validationErr {
		field := strings.ToLower(err.Field())
		tag := err.Tag()
		param := err.Param()

		var message string
		switch tag {
		case "required":
			message = field + " is required"
		case "min":
			message = field + " must be at least " + param
		case "max":
			message = field + " must be at most " + param
		case "oneof":
			message = field + " must be one of: " + param
		case "email":
			message = field + " must be a valid email address"
		case "e164":
			message = field + " must be a valid phone number"
		case "alphanum":
			message = field + " must be alphanumeric"
		case "len":
			message = field + " must be exactly " + param + " characters"
		default:
			message = field + " is invalid"
		}

		return c.JSON(http.StatusBadRequest, Body{
			Message: message,
			Error:   "VALIDATION_ERROR",
		})
	}

	return c.JSON(http.StatusBadRequest, Body{
		Message: "Invalid input data",
		Error:   "VALIDATION_ERROR",
	})
}
