package cartControllers

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kroklik/digitalstore-api/models"
)

// ErrInsufficientStock is returned when order completion would take a
// product's stock below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// CartSnapshot is a pure read of the active order: line items with products
// preloaded plus the computed totals.
type CartSnapshot struct {
	Order         *models.Order         `json:"order"`
	Items         []models.OrderProduct `json:"items"`
	TotalPrice    decimal.Decimal       `json:"total_price"`
	TotalQuantity int                   `json:"total_quantity"`
}

// CustomerForUser resolves the billing identity behind an authenticated user.
func CustomerForUser(db *gorm.DB, userID uint) (*models.Customer, error) {
	var customer models.Customer
	if err := db.Where("user_id = ?", userID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// ActiveOrder returns the customer's open order, creating it on first use.
// The partial unique index on (customer_id) WHERE NOT is_completed rejects a
// concurrent second create, in which case the loser re-reads the winner.
func ActiveOrder(tx *gorm.DB, customerID uint) (*models.Order, error) {
	var order models.Order
	err := tx.Where("customer_id = ? AND is_completed = ?", customerID, false).First(&order).Error
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// DO NOTHING instead of a bare insert: a lost race must not abort the
	// surrounding transaction, just fall through to the winner's row.
	order = models.Order{CustomerID: &customerID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&order).Error; err != nil {
		return nil, err
	}
	if order.ID == 0 {
		if err := tx.Where("customer_id = ? AND is_completed = ?", customerID, false).First(&order).Error; err != nil {
			return nil, err
		}
	}
	return &order, nil
}

// AddToCart increments the line item for (active order, product) by one,
// creating order and line item as needed. Cart quantity is deliberately not
// bounded by stock; stock is enforced at order completion.
func AddToCart(db *gorm.DB, customerID, productID uint) (*models.OrderProduct, error) {
	var item models.OrderProduct

	err := db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			return err
		}

		order, err := ActiveOrder(tx, customerID)
		if err != nil {
			return err
		}

		err = tx.Where("order_id = ? AND product_id = ?", order.ID, product.ID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.OrderProduct{
				OrderID:   order.ID,
				ProductID: &product.ID,
				Quantity:  0,
				AddedAt:   time.Now(),
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error; err != nil {
				return err
			}
			// a concurrent create may have won; read whichever row exists
			if err := tx.Where("order_id = ? AND product_id = ?", order.ID, product.ID).First(&item).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if err := tx.Model(&item).UpdateColumn("quantity", gorm.Expr("quantity + ?", 1)).Error; err != nil {
			return err
		}
		return tx.First(&item, item.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveFromCart decrements the line item by one, deleting the row when the
// last unit goes. It returns the line's prior state for messaging. Missing
// order or line surfaces as gorm.ErrRecordNotFound.
func RemoveFromCart(db *gorm.DB, customerID, productID uint) (*models.OrderProduct, error) {
	var prior models.OrderProduct

	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("customer_id = ? AND is_completed = ?", customerID, false).First(&order).Error; err != nil {
			return err
		}

		var item models.OrderProduct
		if err := tx.Where("order_id = ? AND product_id = ?", order.ID, productID).First(&item).Error; err != nil {
			return err
		}
		prior = item

		if item.Quantity <= 1 {
			return tx.Delete(&item).Error
		}
		return tx.Model(&item).UpdateColumn("quantity", gorm.Expr("quantity - ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}
	return &prior, nil
}

// GetCartSnapshot computes totals for the active order without side effects.
// A customer without an open order gets an empty snapshot, not a new order.
func GetCartSnapshot(db *gorm.DB, customerID uint) (*CartSnapshot, error) {
	snapshot := &CartSnapshot{TotalPrice: decimal.Zero}

	var order models.Order
	err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("added_at") }).
		Preload("Items.Product").
		Where("customer_id = ? AND is_completed = ?", customerID, false).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return snapshot, nil
	}
	if err != nil {
		return nil, err
	}

	snapshot.Order = &order
	snapshot.Items = order.Items
	for _, item := range order.Items {
		snapshot.TotalPrice = snapshot.TotalPrice.Add(item.TotalPrice())
		snapshot.TotalQuantity += item.Quantity
	}
	return snapshot, nil
}

// ClearCart returns every line item's quantity to product stock and deletes
// the lines. The now-empty open order stays around as the empty cart.
func ClearCart(db *gorm.DB, customerID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Where("customer_id = ? AND is_completed = ?", customerID, false).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var items []models.OrderProduct
		if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
			return err
		}

		for _, item := range items {
			if item.ProductID != nil {
				err := tx.Model(&models.Product{}).
					Where("id = ?", *item.ProductID).
					UpdateColumn("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error
				if err != nil {
					return err
				}
			}
			if err := tx.Delete(&models.OrderProduct{}, item.ID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CompleteOrder finalizes an order after payment was verified: stock is
// decremented atomically per line, the order is flagged completed and gets
// its reference. Replays on an already-completed order are no-ops.
func CompleteOrder(db *gorm.DB, orderID uint, sessionID string) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			return err
		}
		if order.IsCompleted {
			return nil
		}

		for _, item := range order.Items {
			if item.ProductID == nil || item.Quantity == 0 {
				continue
			}
			res := tx.Model(&models.Product{}).
				Where("id = ? AND quantity >= ?", *item.ProductID, item.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}

		order.IsCompleted = true
		order.Reference = generateOrderRef()
		order.StripeSessionID = sessionID
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"is_completed":      true,
			"reference":         order.Reference,
			"stripe_session_id": order.StripeSessionID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
