package routes

import (
	"time"

	"petfind/internal/adapters/http/handlers"
	"petfind/internal/adapters/http/middleware"
	"petfind/internal/config"
	"petfind/internal/core/services"
	"petfind/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// catalogMaxAge is how long clients may cache species and breeds
const catalogMaxAge = 10 * time.Minute

// Setup configures all routes for the application
func Setup(app *fiber.App, cfg *config.Config, svc *services.Container, tokens *jwt.Issuer, ping handlers.Pinger) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, cfg.Store, ping)
	authHandler := handlers.NewAuthHandler(svc.Auth, cfg)
	shelterHandler := handlers.NewShelterHandler(svc.Shelters)
	membershipHandler := handlers.NewMembershipHandler(svc.Memberships)
	catalogHandler := handlers.NewCatalogHandler(svc.Catalog)
	animalHandler := handlers.NewAnimalHandler(svc.Animals)
	adoptionHandler := handlers.NewAdoptionHandler(svc.Adoptions)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	auth := middleware.AuthMiddleware(tokens)
	optional := middleware.OptionalAuth(tokens)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, auth)
	setupShelterRoutes(apiV1.Group("/shelters"), shelterHandler, membershipHandler, auth, optional)
	setupCatalogRoutes(apiV1.Group("/species"), catalogHandler, auth)
	setupAnimalRoutes(apiV1.Group("/animals"), animalHandler, auth, optional)

	adoptionRoutes := apiV1.Group("/adoption-requests")
	adoptionRoutes.Use(auth)
	setupAdoptionRoutes(adoptionRoutes, adoptionHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, auth fiber.Handler) {
	router.Use(middleware.NoCacheHeaders())

	// Public routes
	router.Post("/signup", middleware.AuthRateLimiter(), handler.SignUp)
	router.Post("/signin", middleware.AuthRateLimiter(), handler.SignIn)
	router.Post("/validate-otp", middleware.AuthRateLimiter(), handler.ValidateCode)
	router.Post("/resend-otp", middleware.AuthRateLimiter(), handler.ResendCode)

	// Protected routes
	router.Get("/me", auth, handler.Me)
}

// setupShelterRoutes configures shelter and membership routes
func setupShelterRoutes(router fiber.Router, handler *handlers.ShelterHandler,
	members *handlers.MembershipHandler, auth, optional fiber.Handler) {
	// Staff management
	router.Patch("/members/:membershipId", auth, members.UpdateRole)
	router.Delete("/members/:membershipId", auth, members.Remove)
	router.Get("/:id/members", auth, members.List)
	router.Post("/:id/members", auth, members.Add)

	router.Get("/", optional, handler.List)
	router.Get("/:id", handler.Get)
	router.Post("/", auth, handler.Submit)
	router.Patch("/:id", auth, handler.Update)

	// Review (admin only; the service re-checks)
	router.Post("/:id/approve", auth, middleware.AdminOnly(), handler.Approve)
	router.Post("/:id/reject", auth, middleware.AdminOnly(), handler.Reject)
}

// setupCatalogRoutes configures species and breed routes
func setupCatalogRoutes(router fiber.Router, handler *handlers.CatalogHandler, auth fiber.Handler) {
	cache := middleware.CacheControl(catalogMaxAge)

	router.Get("/", cache, handler.ListSpecies)
	router.Get("/:id/breeds", cache, handler.ListBreeds)

	router.Post("/", auth, middleware.AdminOnly(), handler.CreateSpecies)
	router.Patch("/:id", auth, middleware.AdminOnly(), handler.UpdateSpecies)
	router.Delete("/:id", auth, middleware.AdminOnly(), handler.DeleteSpecies)
	router.Post("/:id/breeds", auth, middleware.AdminOnly(), handler.CreateBreed)
	router.Patch("/:id/breeds/:breedId", auth, middleware.AdminOnly(), handler.UpdateBreed)
	router.Delete("/:id/breeds/:breedId", auth, middleware.AdminOnly(), handler.DeleteBreed)
}

// setupAnimalRoutes configures animal routes
func setupAnimalRoutes(router fiber.Router, handler *handlers.AnimalHandler, auth, optional fiber.Handler) {
	router.Get("/", optional, handler.List)
	router.Get("/:id", optional, handler.Get)

	router.Post("/", auth, handler.Register)
	router.Patch("/:id", auth, handler.Update)
	router.Post("/:id/publish", auth, handler.Publish)
}

// setupAdoptionRoutes configures adoption request routes (authenticated)
func setupAdoptionRoutes(router fiber.Router, handler *handlers.AdoptionHandler) {
	router.Post("/", handler.Create)
	router.Get("/mine", handler.Mine)
	router.Get("/shelter/:shelterId", handler.ForShelter)
	router.Get("/:id", handler.Get)
	router.Post("/:id/approve", handler.Approve)
	router.Post("/:id/reject", handler.Reject)
	router.Post("/:id/cancel", handler.Cancel)
}
