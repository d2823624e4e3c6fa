package api

import (
	"time"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ankleshchaudhari/store-rating-app/internal/model"
	"github.com/ankleshchaudhari/store-rating-app/internal/service"
)

type Services struct {
	Auth    service.AuthService
	Admin   service.AdminService
	Stores  service.StoreService
	Ratings service.RatingService
}

type AppConfig struct {
	ServiceName    string
	CORSOrigins    string
	RequestTimeout time.Duration
}

// NewApp builds the Fiber app with the middleware stack, the health
// endpoints and the /api routes.
func NewApp(cfg AppConfig, svc Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.ServiceName,
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(otelfiber.Middleware())
	app.Use(PrometheusMiddleware())
	app.Use(RequestLogger())
	app.Use(RequestTimeout(cfg.RequestTimeout))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.ServiceName})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	SetupRoutes(app, svc)

	return app
}

func SetupRoutes(app *fiber.App, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	adminHandler := NewAdminHandler(svc.Admin, svc.Auth, svc.Stores)
	storeHandler := NewStoreHandler(svc.Stores, svc.Ratings)
	ratingHandler := NewRatingHandler(svc.Ratings)

	authenticated := Authenticate(svc.Auth)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", authenticated, authHandler.Me)

	admin := api.Group("/admin", authenticated, RequireRoles(model.RoleAdmin))
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/users", adminHandler.Users)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Get("/stores", adminHandler.Stores)
	admin.Post("/stores", adminHandler.CreateStore)
	admin.Get("/store-owners", adminHandler.StoreOwners)

	api.Get("/stores", authenticated, storeHandler.List)
	api.Post("/ratings", authenticated, RequireRoles(model.RoleUser), ratingHandler.Submit)

	owner := api.Group("/store-owner", authenticated, RequireRoles(model.RoleStoreOwner))
	owner.Get("/store", storeHandler.OwnStore)
	owner.Get("/stores", storeHandler.OwnStores)
	owner.Get("/ratings/:storeId", storeHandler.Raters)
}
