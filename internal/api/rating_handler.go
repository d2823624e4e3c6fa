package api

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ankleshchaudhari/store-rating-app/internal/service"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// StoreRef accepts the store id as a JSON number or a numeric string.
type StoreRef int64

func (r *StoreRef) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return err
	}
	*r = StoreRef(id)
	return nil
}

type SubmitRatingRequest struct {
	StoreID StoreRef `json:"storeId"`
	Rating  *float64 `json:"rating"`
}

func (h *RatingHandler) Submit(c *fiber.Ctx) error {
	identity, ok := CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized: No token provided"})
	}

	var req SubmitRatingRequest
	if err := c.BodyParser(&req); err != nil || req.StoreID == 0 || req.Rating == nil {
		return badRequest(c, "Store ID and rating are required")
	}

	outcome, err := h.ratingService.SubmitRating(c.UserContext(), identity.ID, int64(req.StoreID), *req.Rating)
	if err != nil {
		return writeServiceError(c, err)
	}

	ratingsSubmitted.WithLabelValues(string(outcome)).Inc()

	if outcome == service.RatingCreated {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Rating submitted successfully"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Rating updated successfully"})
}
