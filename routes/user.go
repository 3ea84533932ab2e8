package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kroklik/digitalstore-api/config"
	accountControllers "github.com/kroklik/digitalstore-api/controllers/account"
	cartControllers "github.com/kroklik/digitalstore-api/controllers/cart"
	favoriteControllers "github.com/kroklik/digitalstore-api/controllers/favorite"
	orderControllers "github.com/kroklik/digitalstore-api/controllers/order"
	"github.com/kroklik/digitalstore-api/middleware"
)

// SetupUserRoutes registers every "/user/*" endpoint behind the JWT check.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(cfg.JWT.Secret))
	{
		userGroup.GET("", accountControllers.GetAccount(db))
		userGroup.PUT("/profile", accountControllers.UpdateProfile(db))
		userGroup.PUT("/account", accountControllers.UpdateAccount(db))
		userGroup.PUT("/password", accountControllers.ChangePassword(db))

		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCart(db))
			cartGroup.POST("/:product_id/add", cartControllers.AddCartItem(db))
			cartGroup.POST("/:product_id/del", cartControllers.RemoveCartItem(db))
			cartGroup.POST("/clear", cartControllers.ClearCartHandler(db))
		}

		userGroup.POST("/favorites/:slug", favoriteControllers.ToggleFavorite(db))
		userGroup.GET("/favorites", favoriteControllers.GetFavorites(db))

		userGroup.GET("/orders", orderControllers.GetUserOrders(db))
	}
}
