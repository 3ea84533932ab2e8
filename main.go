package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kroklik/digitalstore-api/config"
	orderControllers "github.com/kroklik/digitalstore-api/controllers/order"
	"github.com/kroklik/digitalstore-api/logger"
	"github.com/kroklik/digitalstore-api/models"
	"github.com/kroklik/digitalstore-api/routes"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	stripe.Key = cfg.Stripe.SecretKey

	db := initDatabase(cfg, log)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Customer{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.Gallery{},
		&models.ProductDescription{},
		&models.FavoriteProduct{},
		&models.Order{},
		&models.OrderProduct{},
		&models.City{},
		&models.ShippingAddress{},
	); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	if cfg.Server.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// serve category and product images
	r.Static("/uploads", "./uploads")

	hub := orderControllers.NewHub(log)
	routes.SetupRoutes(r, db, cfg, log, hub)

	log.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

func initDatabase(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	return db
}
