package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order doubles as the shopping cart while IsCompleted is false. The partial
// unique index keeps at most one open order per customer, so concurrent
// first adds cannot race two carts into existence.
type Order struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID      *uint          `gorm:"uniqueIndex:idx_customer_open_order,where:is_completed = false" json:"customer_id,omitempty"`
	Customer        *Customer      `json:"customer,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	IsCompleted     bool           `gorm:"not null;default:false" json:"is_completed"`
	Shipping        bool           `gorm:"not null;default:true" json:"shipping"`
	Reference       string         `gorm:"size:100" json:"reference,omitempty"`
	StripeSessionID string         `gorm:"size:255" json:"-"`
	Items           []OrderProduct `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderProduct is one cart line item: a product reference and a quantity.
type OrderProduct struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint      `gorm:"uniqueIndex:idx_order_line_product;not null" json:"order_id"`
	ProductID *uint     `gorm:"uniqueIndex:idx_order_line_product" json:"product_id,omitempty"`
	Product   *Product  `gorm:"constraint:OnDelete:SET NULL" json:"product,omitempty"`
	Quantity  int       `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
}

// TotalPrice is price times quantity; zero when the product row is gone.
func (op OrderProduct) TotalPrice() decimal.Decimal {
	if op.Product == nil {
		return decimal.Zero
	}
	return op.Product.Price.Mul(decimal.NewFromInt(int64(op.Quantity)))
}
