package api

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
	"github.com/ankleshchaudhari/store-rating-app/internal/service"
)

const identityKey = "identity"

var (
	httpRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of http request",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)
	ratingsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratings_submitted_total",
			Help: "Rating submissions by outcome",
		},
		[]string{"outcome"},
	)
	authLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)
)

// Authenticate resolves the bearer token to a live user and stores the
// identity in the request locals.
func Authenticate(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized: No token provided"})
		}

		identity, err := authService.Authenticate(c.UserContext(), token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidToken):
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden: Invalid token"})
			case errors.Is(err, service.ErrUserNotFound):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized: User not found"})
			default:
				slog.ErrorContext(c.UserContext(), "Failed to authenticate request", slog.String("error", err.Error()))
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
			}
		}

		c.Locals(identityKey, identity)

		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// CurrentUser returns the identity set by Authenticate.
func CurrentUser(c *fiber.Ctx) (*model.Identity, bool) {
	identity, ok := c.Locals(identityKey).(*model.Identity)
	return identity, ok && identity != nil
}

// RequireRoles must run after Authenticate.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentUser(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized: No token provided"})
		}

		if !slices.Contains(roles, identity.Role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden: Insufficient permissions"})
		}

		return c.Next()
	}
}

// RequestTimeout bounds the user context handed to services.
func RequestTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()

		c.SetUserContext(ctx)

		return c.Next()
	}
}

func PrometheusMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start).Seconds()
		statusCode := c.Response().StatusCode()

		if err != nil {
			var e *fiber.Error

			if errors.As(err, &e) {
				statusCode = e.Code
			} else {
				statusCode = fiber.StatusInternalServerError
			}
		}

		// route pattern keeps /ratings/:storeId to a single series
		path := c.Route().Path
		statusStr := strconv.Itoa(statusCode)

		httpRequestTotal.WithLabelValues(c.Method(), path, statusStr).Inc()
		httpRequestDuration.WithLabelValues(c.Method(), path, statusStr).Observe(duration)

		return err
	}
}
