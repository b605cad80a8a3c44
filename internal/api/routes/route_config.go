package routes

import (
	"pashameshi-backend/internal/api/handlers"
	"pashameshi-backend/internal/middleware"
	"pashameshi-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	GroupHandler    handlers.GroupHandler
	StockHandler    handlers.StockHandler
	ShoppingHandler handlers.ShoppingHandler
	RecipeHandler   handlers.RecipeHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Groups()
	c.Stock()
	c.Shopping()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Groups() {
	groups := c.App.Group("/api/v1/groups", c.Middleware.AuthMiddleware(c.JWTService))
	{
		groups.Post("/", c.GroupHandler.CreateGroup)
		groups.Post("/join", c.GroupHandler.JoinGroup)
		groups.Post("/leave", c.GroupHandler.LeaveGroup)
		groups.Post("/invite", c.GroupHandler.SendInvite)
	}
}

func (c *Config) Stock() {
	stock := c.App.Group("/api/v1/stock", c.Middleware.AuthMiddleware(c.JWTService))
	{
		stock.Post("/analyze", c.StockHandler.AnalyzeIngredient)
		stock.Post("/", c.StockHandler.MergeIngredient)
		stock.Get("/", c.StockHandler.GetStockItems)
		stock.Delete("/:id", c.StockHandler.DeleteStockItem)
		stock.Post("/image", c.StockHandler.UploadStockImage)
	}
}

func (c *Config) Shopping() {
	shopping := c.App.Group("/api/v1/shopping-list", c.Middleware.AuthMiddleware(c.JWTService))
	{
		shopping.Post("/", c.ShoppingHandler.AddShoppingItem)
		shopping.Get("/", c.ShoppingHandler.GetShoppingList)
		shopping.Delete("/:id", c.ShoppingHandler.DeleteShoppingItem)
		shopping.Post("/promote", c.ShoppingHandler.PromoteToStock)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	{
		recipes.Post("/suggest", c.RecipeHandler.SuggestRecipe)
		recipes.Post("/finish", c.RecipeHandler.FinishCooking)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
