package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
	"github.com/ankleshchaudhari/store-rating-app/internal/service"
)

type AdminHandler struct {
	adminService service.AdminService
	authService  service.AuthService
	storeService service.StoreService
}

func NewAdminHandler(adminService service.AdminService, authService service.AuthService, storeService service.StoreService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		authService:  authService,
		storeService: storeService,
	}
}

// listQuery reads the optional ?q=&sort=&order= parameters.
func listQuery(c *fiber.Ctx) model.ListQuery {
	return model.ListQuery{
		Search: c.Query("q"),
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
	}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats(c.UserContext())
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(stats)
}

func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.adminService.ListUsers(c.UserContext(), listQuery(c))
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(users)
}

func (h *AdminHandler) Stores(c *fiber.Ctx) error {
	stores, err := h.storeService.ListForAdmin(c.UserContext(), listQuery(c))
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(stores)
}

func (h *AdminHandler) StoreOwners(c *fiber.Ctx) error {
	owners, err := h.adminService.ListStoreOwners(c.UserContext())
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(owners)
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var request service.RegisterInput

	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}

	userID, err := h.authService.CreateUser(c.UserContext(), request)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"userId":  userID,
	})
}

func (h *AdminHandler) CreateStore(c *fiber.Ctx) error {
	var request service.CreateStoreInput

	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}

	storeID, err := h.storeService.CreateStore(c.UserContext(), request)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Store created successfully",
		"storeId": storeID,
	})
}
