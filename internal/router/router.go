package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/jterrell/freightplan/internal/config"
	"github.com/jterrell/freightplan/internal/handler"
	"github.com/jterrell/freightplan/internal/middleware"
)

// Deps collects everything the HTTP surface needs.
type Deps struct {
	Auth       *handler.AuthHandler
	Planning   *handler.PlanningHandler
	Gatekeeper *middleware.Gatekeeper
	RateLimit  config.RateLimitConfig
	Redis      *redis.Client
}

// New builds the echo engine with all routes registered. The gatekeeper
// runs globally; it filters itself to the protected prefix, so /auth and
// /healthz pass straight through while every /api route gets the spoof
// ban and token verification.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(d.Gatekeeper.Middleware())

	e.GET("/healthz", handler.Health)

	a := e.Group("/auth")
	a.POST("/login", d.Auth.Login, middleware.LoginRateLimit(d.RateLimit, d.Redis))
	a.POST("/register", d.Auth.Register)

	api := e.Group("/api")
	api.GET("/me", d.Auth.Me)
	api.DELETE("/users/:id", d.Auth.DeleteUser)

	p := d.Planning
	api.GET("/locations", p.ListLocations)
	api.POST("/locations", p.CreateLocation)
	api.DELETE("/locations/:id", p.DeleteLocation)

	api.GET("/products", p.ListProducts)
	api.POST("/products", p.CreateProduct)
	api.DELETE("/products/:code", p.DeleteProduct)

	api.GET("/drivers", p.ListDrivers)
	api.POST("/drivers", p.CreateDriver)
	api.DELETE("/drivers/:id", p.DeleteDriver)

	api.GET("/vehicles", p.ListVehicles)
	api.POST("/vehicles", p.CreateVehicle)
	api.DELETE("/vehicles/:id", p.DeleteVehicle)

	api.GET("/entities", p.ListEntities)
	api.POST("/entities", p.CreateEntity)
	api.DELETE("/entities/:id", p.DeleteEntity)

	api.GET("/supply", p.ListSupply)
	api.POST("/supply", p.CreateSupply)
	api.DELETE("/supply/:id", p.DeleteSupply)

	api.GET("/demand", p.ListDemand)
	api.POST("/demand", p.CreateDemand)
	api.DELETE("/demand/:id", p.DeleteDemand)

	api.GET("/routes", p.ListRoutes)
	api.POST("/routes", p.CreateRoute)
	api.DELETE("/routes/:id", p.DeleteRoute)

	api.GET("/scenarios", p.ListScenarios)
	api.POST("/scenarios", p.CreateScenario)
	api.PATCH("/scenarios/:id", p.UpdateScenario)
	api.DELETE("/scenarios/:id", p.DeleteScenario)

	api.GET("/manifest-items", p.ListManifestItems)
	api.POST("/scenarios/:id/manifest-items", p.CreateManifestItem)
	api.DELETE("/manifest-items/:id", p.DeleteManifestItem)

	api.DELETE("/plans/:id", p.DeletePlan)

	return e
}
