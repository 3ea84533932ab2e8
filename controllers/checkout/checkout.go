package checkoutControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kroklik/digitalstore-api/config"
	cartControllers "github.com/kroklik/digitalstore-api/controllers/cart"
	orderControllers "github.com/kroklik/digitalstore-api/controllers/order"
	"github.com/kroklik/digitalstore-api/forms"
	"github.com/kroklik/digitalstore-api/middleware"
	"github.com/kroklik/digitalstore-api/models"
)

type CheckoutInput struct {
	FirstName string `json:"first_name" binding:"required,max=255"`
	LastName  string `json:"last_name" binding:"required,max=255"`
	Email     string `json:"email" binding:"required,email"`
	Address   string `json:"address" binding:"required,max=255"`
	CityID    uint   `json:"city_id" binding:"required"`
	Region    string `json:"region" binding:"required,max=100"`
	Phone     string `json:"phone" binding:"required,max=100"`
	Comment   string `json:"comment" binding:"max=255"`
}

// POST /checkout
//
// Validates the contact and shipping forms, binds a shipping address to the
// active order and asks Stripe for a hosted session. Nothing is created when
// validation fails, and the cart is untouched either way.
func CreateCheckoutSession(db *gorm.DB, cfg config.StripeConfig, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CheckoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": forms.FieldErrors(err)})
			return
		}

		customer, err := cartControllers.CustomerForUser(db, userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
			return
		}

		snapshot, err := cartControllers.GetCartSnapshot(db, customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		if snapshot.Order == nil || snapshot.TotalQuantity == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var city models.City
			if err := tx.First(&city, input.CityID).Error; err != nil {
				return err
			}

			customer.FirstName = input.FirstName
			customer.LastName = input.LastName
			customer.Email = input.Email
			if err := tx.Save(customer).Error; err != nil {
				return err
			}

			address := models.ShippingAddress{
				CustomerID: &customer.ID,
				OrderID:    &snapshot.Order.ID,
				Address:    input.Address,
				CityID:     city.ID,
				Region:     input.Region,
				Phone:      input.Phone,
				Comment:    input.Comment,
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"city_id": "unknown city"}})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save shipping address"})
			return
		}

		sess, err := createSession(cfg, snapshot.Order.ID, snapshot.TotalPrice)
		if err != nil {
			log.Error("stripe session create failed",
				zap.Uint("order_id", snapshot.Order.ID),
				zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"payment_url": sess.URL,
			"session_id":  sess.ID,
		})
	}
}

// GET /checkout/success?session_id=...
//
// The redirect back from the gateway is untrusted; the session is fetched
// from Stripe and must be paid before the order is completed and stock
// decremented. Replays of a settled session are idempotent.
func PaymentSuccess(db *gorm.DB, getSession SessionGetter, hub *orderControllers.Hub, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Query("session_id")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}

		sess, err := getSession(sessionID)
		if err != nil {
			log.Error("stripe session lookup failed", zap.String("session_id", sessionID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable"})
			return
		}

		if sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
			c.JSON(http.StatusConflict, gin.H{"error": "Payment not settled, cart unchanged"})
			return
		}

		orderID, err := strconv.ParseUint(sess.ClientReferenceID, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order reference"})
			return
		}

		order, err := cartControllers.CompleteOrder(db, uint(orderID), sess.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			if errors.Is(err, cartControllers.ErrInsufficientStock) {
				c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock to complete order"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete order"})
			return
		}

		hub.BroadcastOrder(order)
		log.Info("order completed",
			zap.Uint("order_id", order.ID),
			zap.String("reference", order.Reference))

		c.JSON(http.StatusOK, gin.H{
			"message":   "Payment confirmed, order completed",
			"reference": order.Reference,
		})
	}
}

// GET /checkout/cancel
func PaymentCancel() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Payment cancelled, cart unchanged"})
	}
}
