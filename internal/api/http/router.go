package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dealer-service/internal/api/http/handlers"
	"github.com/spec-kit/dealer-service/internal/auth"
	"github.com/spec-kit/dealer-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Vehicles       *handlers.VehiclesHandler
	Purchases      *handlers.PurchasesHandler
	Sales          *handlers.SalesHandler
	Customers      *handlers.CustomersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/otp/verify", cfg.Auth.VerifyOTP)

	vehicles := app.Group("/vehicles")
	vehicles.Get("/", cfg.Vehicles.List)
	vehicles.Get("/:id", cfg.Vehicles.Get)

	adminVehicles := vehicles.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	adminVehicles.Post("/", cfg.Vehicles.Create)
	adminVehicles.Put("/:id", cfg.Vehicles.Update)

	purchases := app.Group("/purchases", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleCustomer))
	purchases.Post("/request", cfg.Purchases.CreateRequest)
	purchases.Get("/history", cfg.Purchases.History)

	sales := app.Group("/sales", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	sales.Post("/:requestId/process", cfg.Sales.Process)

	customers := app.Group("/customers", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	customers.Get("/", cfg.Customers.List)
}
