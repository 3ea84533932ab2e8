package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kroklik/digitalstore-api/config"
	checkoutControllers "github.com/kroklik/digitalstore-api/controllers/checkout"
	orderControllers "github.com/kroklik/digitalstore-api/controllers/order"
	"github.com/kroklik/digitalstore-api/middleware"
)

func SetupCheckoutRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger, hub *orderControllers.Hub) {
	checkout := r.Group("/checkout")
	{
		checkout.POST("", middleware.ValidateToken(cfg.JWT.Secret),
			checkoutControllers.CreateCheckoutSession(db, cfg.Stripe, log))

		// gateway redirects arrive without our auth header
		checkout.GET("/success", checkoutControllers.PaymentSuccess(db, checkoutControllers.StripeSessionGetter, hub, log))
		checkout.GET("/cancel", checkoutControllers.PaymentCancel())
	}

	// live feed of completed orders
	r.GET("/orders/ws", hub.Handler())
}
