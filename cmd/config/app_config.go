package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"bitescan-api/internal/api/handlers"
	"bitescan-api/internal/api/routes"
	appconfig "bitescan-api/internal/config"
	"bitescan-api/internal/middleware"
	"bitescan-api/internal/utils"
	"bitescan-api/internal/utils/mailing"
	"bitescan-api/internal/utils/storage"
	"bitescan-api/pkg/jwt"
	"bitescan-api/pkg/nutrition"
	"bitescan-api/pkg/ocr"
	"bitescan-api/pkg/receipt"
	"bitescan-api/pkg/user"
)

func NewApp(db *gorm.DB, cfg *appconfig.Config) (*fiber.App, error) {
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
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// optional collaborators
	var s3 storage.AwsS3
	if cfg.S3Enabled() {
		s3, err = storage.NewAwsS3(cfg)
		if err != nil {
			return nil, err
		}
	}

	var nutritionCache nutrition.Cache
	if cfg.RedisEnabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
			Password: cfg.RedisPassword,
		})
		nutritionCache = nutrition.NewRedisCache(redisClient, 24*time.Hour)
	}

	var mailer user.WelcomeMailer
	if cfg.MailEnabled() {
		mailer = mailing.NewMailer(cfg)
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	receiptRepository := receipt.NewReceiptRepository(db)

	// Service
	jwtService := jwt.NewJWTService(cfg.JWTSecret)
	userService := user.NewUserService(userRepository, jwtService, mailer)
	scanner := ocr.NewCLIScanner(cfg)
	ocrService := ocr.NewOcrService(scanner)
	provider := nutrition.NewNutritionixClient(cfg)
	nutritionService := nutrition.NewNutritionService(provider, nutritionCache, cfg)
	receiptService := receipt.NewReceiptService(receiptRepository, scanner, nutritionService, s3)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	receiptHandler := handlers.NewReceiptHandler(receiptService, validator)
	ocrHandler := handlers.NewOcrHandler(ocrService, validator)
	nutritionHandler := handlers.NewNutritionHandler(nutritionService, validator)
	systemHandler := handlers.NewSystemHandler()

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		ReceiptHandler:   receiptHandler,
		OcrHandler:       ocrHandler,
		NutritionHandler: nutritionHandler,
		SystemHandler:    systemHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
