package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	controller "charhub/controllers"
	"charhub/middleware"
	"charhub/repositories"
	"charhub/services"
)

// SetupRoutes wires repositories, services and controllers and mounts
// every route group on the app.
func SetupRoutes(app *fiber.App, db *gorm.DB, log *logrus.Logger) {
	userRepo := repositories.NewUserRepository(db)
	characterRepo := repositories.NewCharacterRepository(db)
	flagRepo := repositories.NewFeatureFlagRepository(db)

	permissions := services.NewPermissionService(characterRepo, log.WithField("component", "permissions"))

	authController := controller.NewAuthController(userRepo, log.WithField("component", "auth"))
	userController := controller.NewUserController(userRepo, permissions, log.WithField("component", "users"))
	characterController := controller.NewCharacterController(characterRepo, log.WithField("component", "characters"))
	flagController := controller.NewFeatureFlagController(flagRepo, log.WithField("component", "featureflags"))

	requestLogger := logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	})

	// Status endpoints
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "charhub server is running",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/hello", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Hello World",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"data": fiber.Map{
				"id":     1,
				"name":   "Dummy User",
				"status": "active",
			},
		})
	})

	// Public auth endpoints
	auth := app.Group("/auth", requestLogger)
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)

	// User endpoints. Listing requires a token; direct creation does
	// not. Block, unblock and delete pass the character permission gate
	// instead of token auth.
	users := app.Group("/users", requestLogger)
	users.Get("/", middleware.Protected(), userController.GetUsers)
	users.Post("/", userController.CreateUser)
	users.Put("/:id/block", userController.BlockUser)
	users.Put("/:id/unblock", userController.UnblockUser)
	users.Delete("/:id", userController.DeleteUser)

	// Character endpoints; list and create are token-protected, the
	// flag assignment sub-resource is public.
	characters := app.Group("/characters", requestLogger)
	characters.Get("/", middleware.Protected(), characterController.GetCharacters)
	characters.Post("/", middleware.Protected(), characterController.CreateCharacter)
	characters.Get("/:id/featureflags", characterController.GetCharacterFlags)
	characters.Post("/:id/featureflags", characterController.AttachFlag)
	characters.Delete("/:id/featureflags/:flagId", characterController.DetachFlag)

	// Feature flag endpoints
	featureFlags := app.Group("/featureflags", requestLogger)
	featureFlags.Get("/", flagController.GetFeatureFlags)
	featureFlags.Post("/", flagController.CreateFeatureFlag)

	// 404 fallback
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})

	log.Info("Routes initialized successfully")
}
