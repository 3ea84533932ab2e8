package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kroklik/digitalstore-api/config"
	orderControllers "github.com/kroklik/digitalstore-api/controllers/order"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger, hub *orderControllers.Hub) {
	// public auth routes, no middleware
	SetupAuthRoutes(r, db, cfg)

	// catalog browsing, public
	SetupCatalogRoutes(r, db)

	// JWT-protected account, cart, favorites and order history
	SetupUserRoutes(r, db, cfg)

	// checkout plus the gateway redirect endpoints
	SetupCheckoutRoutes(r, db, cfg, log, hub)
}
