package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/kroklik/digitalstore-api/controllers/cart"
	"github.com/kroklik/digitalstore-api/middleware"
	"github.com/kroklik/digitalstore-api/models"
)

// GET /user/orders
//
// Completed orders only; the open order is the cart and lives under /user/cart.
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		customer, err := cartControllers.CustomerForUser(db, userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}

		var orders []models.Order
		err = db.Preload("Items").Preload("Items.Product").
			Where("customer_id = ? AND is_completed = ?", customer.ID, true).
			Order("created_at DESC").
			Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}
