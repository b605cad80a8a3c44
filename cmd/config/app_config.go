package config

import (
	"os"
	"time"

	"pashameshi-backend/internal/api/handlers"
	"pashameshi-backend/internal/api/routes"
	"pashameshi-backend/internal/middleware"
	"pashameshi-backend/internal/utils"
	"pashameshi-backend/internal/utils/storage"
	"pashameshi-backend/pkg/group"
	"pashameshi-backend/pkg/groq"
	"pashameshi-backend/pkg/inventory"
	"pashameshi-backend/pkg/jwt"
	"pashameshi-backend/pkg/recipe"
	"pashameshi-backend/pkg/shopping"
	"pashameshi-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Tokyo",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	groupRepository := group.NewGroupRepository(db)
	stockRepository := inventory.NewStockRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	groqService := groq.NewGroqService()
	userService := user.NewUserService(userRepository, jwtService)
	groupService := group.NewGroupService(groupRepository, userRepository)
	inventoryService := inventory.NewInventoryService(stockRepository, groqService, s3)
	shoppingService := shopping.NewShoppingService(shoppingRepository, inventoryService)
	recipeService := recipe.NewRecipeService(groqService, inventoryService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	groupHandler := handlers.NewGroupHandler(groupService, validator)
	stockHandler := handlers.NewStockHandler(inventoryService, userService, validator)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService, userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, userService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		GroupHandler:    groupHandler,
		StockHandler:    stockHandler,
		ShoppingHandler: shoppingHandler,
		RecipeHandler:   recipeHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
