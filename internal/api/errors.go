package api

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"

	"github.com/manav03panchal/daybook/internal/errors"
	"github.com/manav03panchal/daybook/internal/logging"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// statusFor maps an error category to an HTTP status.
func statusFor(err error) int {
	switch errors.Classify(err) {
	case errors.CategoryUser:
		return fiber.StatusBadRequest
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		return c.Status(fe.Code).JSON(errorBody{Error: fe.Message})
	}

	status := statusFor(err)
	body := errorBody{Error: err.Error(), Detail: errors.GetSuggestion(err)}
	if status == fiber.StatusInternalServerError {
		logging.FromContext(c.UserContext()).Error("request failed",
			logging.KeyStatus, status,
			"path", c.Path(),
			logging.KeyError, err)
		body.Error = "internal error"
		body.Detail = err.Error()
	}
	return c.Status(status).JSON(body)
}
