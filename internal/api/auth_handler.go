package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
	"github.com/ankleshchaudhari/store-rating-app/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    model.Identity `json:"user"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var request service.RegisterInput

	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}

	userID, err := h.authService.Register(c.UserContext(), request)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"userId":  userID,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request LoginRequest

	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}

	result, err := h.authService.Login(c.UserContext(), request.Email, request.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			authLogins.WithLabelValues("failure").Inc()
		}
		return writeServiceError(c, err)
	}

	authLogins.WithLabelValues("success").Inc()

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    result.User,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, ok := CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized: No token provided"})
	}

	return c.Status(fiber.StatusOK).JSON(identity)
}
