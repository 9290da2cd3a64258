package httpapi

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-intelligence/internal/store"
	"github.com/i474232898/weather-intelligence/internal/weather"
)

// errorBody is the error payload every failed request carries.
type errorBody struct {
	Kind       string `json:"kind"`
	HTTPStatus int    `json:"httpStatus"`
	Message    string `json:"message"`
}

// ErrorHandler maps errors onto {"error": {kind, httpStatus, message}} with a matching status.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *fiber.Ctx, err error) error {
		body := toErrorBody(err)
		if body.HTTPStatus >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Method(), "path", c.Path(), "kind", body.Kind, "err", err)
		}
		return c.Status(body.HTTPStatus).JSON(fiber.Map{"error": body})
	}
}

func toErrorBody(err error) errorBody {
	if e, ok := weather.AsError(err); ok {
		status := e.HTTPStatus
		if status < 400 || status > 599 {
			status = fiber.StatusBadGateway
		}
		return errorBody{Kind: string(e.Kind), HTTPStatus: status, Message: e.Message}
	}

	if errors.Is(err, store.ErrNotFound) {
		return errorBody{Kind: "not_found", HTTPStatus: fiber.StatusNotFound, Message: err.Error()}
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		kind := "internal_error"
		switch {
		case fe.Code == fiber.StatusNotFound:
			kind = "not_found"
		case fe.Code < fiber.StatusInternalServerError:
			kind = string(weather.KindValidation)
		}
		return errorBody{Kind: kind, HTTPStatus: fe.Code, Message: fe.Message}
	}

	return errorBody{
		Kind:       "internal_error",
		HTTPStatus: fiber.StatusInternalServerError,
		Message:    "internal server error",
	}
}
