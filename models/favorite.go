package models

import "time"

// FavoriteProduct is the user/product favorites join. The composite unique
// index lets the toggle run as delete-or-insert without a read first.
type FavoriteProduct struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_favorite_user_product;not null" json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_favorite_user_product;not null" json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
