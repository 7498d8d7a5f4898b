package routes

import (
	"github.com/gofiber/fiber/v2"

	"bitescan-api/internal/api/handlers"
	"bitescan-api/internal/middleware"
	"bitescan-api/pkg/jwt"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	ReceiptHandler   handlers.ReceiptHandler
	OcrHandler       handlers.OcrHandler
	NutritionHandler handlers.NutritionHandler
	SystemHandler    handlers.SystemHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.System()
	c.User()
	c.Ocr()
	c.Nutrition()
	c.Receipts()
}

func (c *Config) System() {
	c.App.Get("/api/sys/health", c.SystemHandler.Health)
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Delete("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.DeactivateUser)
	}
}

func (c *Config) Ocr() {
	c.App.Post("/api/v1/ocr", c.Middleware.AuthMiddleware(c.JWTService), c.OcrHandler.ScanReceipt)
}

func (c *Config) Nutrition() {
	nutrition := c.App.Group("/api/v1/nutrition", c.Middleware.AuthMiddleware(c.JWTService))
	{
		nutrition.Post("/items", c.NutritionHandler.EnrichItems)
		nutrition.Get("/search", c.NutritionHandler.Search)
	}
}

func (c *Config) Receipts() {
	receipts := c.App.Group("/api/v1/receipts", c.Middleware.AuthMiddleware(c.JWTService))
	{
		receipts.Post("", c.ReceiptHandler.SubmitReceipt)
		receipts.Get("", c.ReceiptHandler.GetReceipts)
		receipts.Delete("/:id", c.ReceiptHandler.DeleteReceipt)
		receipts.Post("/scan", c.ReceiptHandler.ScanToDraft)
	}
}
