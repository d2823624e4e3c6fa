package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ankleshchaudhari/store-rating-app/internal/service"
)

type StoreHandler struct {
	storeService  service.StoreService
	ratingService service.RatingService
}

func NewStoreHandler(storeService service.StoreService, ratingService service.RatingService) *StoreHandler {
	return &StoreHandler{storeService: storeService, ratingService: ratingService}
}

// List shows every store with the caller's own rating, if any.
func (h *StoreHandler) List(c *fiber.Ctx) error {
	identity, ok := CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized: No token provided"})
	}

	stores, err := h.storeService.ListForUser(c.UserContext(), identity.ID, listQuery(c))
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(stores)
}

func (h *StoreHandler) OwnStore(c *fiber.Ctx) error {
	identity, ok := CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized: No token provided"})
	}

	store, err := h.storeService.OwnerStore(c.UserContext(), identity.ID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(store)
}

func (h *StoreHandler) OwnStores(c *fiber.Ctx) error {
	identity, ok := CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized: No token provided"})
	}

	stores, err := h.storeService.OwnerStores(c.UserContext(), identity.ID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(stores)
}

func (h *StoreHandler) Raters(c *fiber.Ctx) error {
	identity, ok := CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized: No token provided"})
	}

	storeID, err := c.ParamsInt("storeId")
	if err != nil || storeID <= 0 {
		return badRequest(c, "Invalid store ID")
	}

	raters, err := h.ratingService.RatersOf(c.UserContext(), int64(storeID), identity.ID, listQuery(c))
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(raters)
}
