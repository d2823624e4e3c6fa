package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/ankleshchaudhari/store-rating-app/internal/service"
)

func writeServiceError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": verr.Message,
			"errors":  verr.Violations,
		})
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid email or password"})
	case errors.Is(err, service.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Email already exists"})
	case errors.Is(err, service.ErrStoreEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Store email already exists"})
	case errors.Is(err, service.ErrOwnerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Store owner not found"})
	case errors.Is(err, service.ErrStoreNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Store not found"})
	case errors.Is(err, service.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	}

	slog.ErrorContext(c.UserContext(), "Request failed",
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": message})
}

// ErrorHandler keeps the {message} body for errors that escape handlers,
// such as unknown routes and recovered panics.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	if code >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "Unhandled error", slog.String("path", c.Path()), slog.String("error", err.Error()))
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{"message": message})
}
